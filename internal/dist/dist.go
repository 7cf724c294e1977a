// Package dist emits the distributable artifact of a wrapper package: a
// tarball holding metadata entries only, never code.
package dist

import (
	"archive/tar"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/utils/logger"
)

// Format selects the artifact compression.
type Format string

const (
	FormatGzip Format = "gz"
	FormatXZ   Format = "xz"
	FormatZstd Format = "zst"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "gz", "gzip":
		return FormatGzip, nil
	case "xz":
		return FormatXZ, nil
	case "zst", "zstd":
		return FormatZstd, nil
	default:
		return "", fmt.Errorf("unknown artifact format: %s", name)
	}
}

// Options controls a build.
type Options struct {
	OutDir string
	Format Format
}

// Artifact describes one build result.
type Artifact struct {
	Path    string
	SHA256  string
	BuildID string
}

// Entries are written with zeroed timestamps and a fixed owner so that
// identical records produce identical archives.
var entryTime = time.Unix(0, 0)

// Build verifies the record and writes <name>-<version>.tar.<format> plus a
// SHA256SUMS file into OutDir. The archive carries PKG-INFO and the
// canonical record JSON and nothing else.
func Build(rec *descriptor.Record, opts Options) (*Artifact, error) {
	log := logger.Logger()

	if err := rec.Verify(); err != nil {
		return nil, fmt.Errorf("refusing to build: %w", err)
	}
	format := opts.Format
	if format == "" {
		format = FormatGzip
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	buildID := uuid.NewString()
	log.Infof("building %s-%s (build %s)", rec.Name, rec.Version, buildID)

	var buf bytes.Buffer
	if err := writeArchive(&buf, rec, format); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s-%s.tar.%s", rec.Name, rec.Version, format)
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing artifact: %w", err)
	}

	digest := sha256.Sum256(buf.Bytes())
	sum := hex.EncodeToString(digest[:])
	sumsPath := filepath.Join(outDir, "SHA256SUMS")
	sumLine := fmt.Sprintf("%s  %s\n", sum, name)
	if err := appendLine(sumsPath, sumLine); err != nil {
		return nil, fmt.Errorf("writing checksum file: %w", err)
	}

	log.Infof("wrote %s (sha256 %s)", path, sum)
	return &Artifact{Path: path, SHA256: sum, BuildID: buildID}, nil
}

func writeArchive(w io.Writer, rec *descriptor.Record, format Format) error {
	compressed, closeCompressor, err := newCompressor(w, format)
	if err != nil {
		return err
	}

	tw := tar.NewWriter(compressed)
	prefix := fmt.Sprintf("%s-%s", rec.Name, rec.Version)

	entries := []struct {
		name string
		data []byte
	}{
		{name: prefix + "/PKG-INFO", data: renderPkgInfo(rec)},
		{name: prefix + "/metadata.json", data: rec.Describe()},
	}
	for _, e := range entries {
		hdr := &tar.Header{
			Name:    e.name,
			Mode:    0644,
			Size:    int64(len(e.data)),
			ModTime: entryTime,
			Format:  tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing archive header for %s: %w", e.name, err)
		}
		if _, err := tw.Write(e.data); err != nil {
			return fmt.Errorf("writing archive entry %s: %w", e.name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return closeCompressor()
}

func newCompressor(w io.Writer, format Format) (io.Writer, func() error, error) {
	switch format {
	case FormatGzip:
		gw := gzip.NewWriter(w)
		return gw, gw.Close, nil
	case FormatXZ:
		xw, err := xz.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("creating xz writer: %w", err)
		}
		return xw, xw.Close, nil
	case FormatZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("creating zstd writer: %w", err)
		}
		return zw, zw.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown artifact format: %s", format)
	}
}

// renderPkgInfo emits the metadata stanza the consuming build tool reads.
func renderPkgInfo(rec *descriptor.Record) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Metadata-Version: 2.1\n")
	fmt.Fprintf(&b, "Name: %s\n", rec.Name)
	fmt.Fprintf(&b, "Version: %s\n", rec.Version)
	for _, dep := range rec.Requires {
		fmt.Fprintf(&b, "Requires-Dist: %s\n", dep)
	}
	return []byte(b.String())
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line)
	return err
}
