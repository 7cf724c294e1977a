package dist

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
)

func wrapperRecord() *descriptor.Record {
	return &descriptor.Record{
		Name:    "semgrep_pre_commit_package",
		Version: "1.12.0",
		Requires: []descriptor.Dependency{
			{Name: "semgrep", Version: "1.12.0"},
		},
	}
}

func readEntries(t *testing.T, path string, format Format) map[string]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening artifact: %v", err)
	}
	defer f.Close()

	var decompressed io.Reader
	switch format {
	case FormatGzip:
		gr, err := gzip.NewReader(f)
		if err != nil {
			t.Fatalf("opening gzip stream: %v", err)
		}
		defer gr.Close()
		decompressed = gr
	case FormatXZ:
		xr, err := xz.NewReader(f)
		if err != nil {
			t.Fatalf("opening xz stream: %v", err)
		}
		decompressed = xr
	case FormatZstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			t.Fatalf("opening zstd stream: %v", err)
		}
		defer zr.Close()
		decompressed = zr
	}

	entries := make(map[string]string)
	tr := tar.NewReader(decompressed)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading archive: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("reading entry %s: %v", hdr.Name, err)
		}
		entries[hdr.Name] = string(data)
	}
	return entries
}

func TestBuildGzipArtifact(t *testing.T) {
	outDir := t.TempDir()
	art, err := Build(wrapperRecord(), Options{OutDir: outDir, Format: FormatGzip})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if filepath.Base(art.Path) != "semgrep_pre_commit_package-1.12.0.tar.gz" {
		t.Errorf("unexpected artifact name: %s", art.Path)
	}
	if art.BuildID == "" {
		t.Error("expected a build ID")
	}
	if len(art.SHA256) != 64 {
		t.Errorf("expected a sha256 hex digest, got %q", art.SHA256)
	}

	entries := readEntries(t, art.Path, FormatGzip)
	if len(entries) != 2 {
		t.Fatalf("expected exactly 2 metadata entries, got %d: %v", len(entries), entries)
	}

	pkgInfo := entries["semgrep_pre_commit_package-1.12.0/PKG-INFO"]
	for _, want := range []string{
		"Name: semgrep_pre_commit_package",
		"Version: 1.12.0",
		"Requires-Dist: semgrep==1.12.0",
	} {
		if !strings.Contains(pkgInfo, want) {
			t.Errorf("PKG-INFO missing %q:\n%s", want, pkgInfo)
		}
	}

	meta := entries["semgrep_pre_commit_package-1.12.0/metadata.json"]
	if meta != string(wrapperRecord().Describe()) {
		t.Error("metadata.json does not match the canonical record encoding")
	}

	sums, err := os.ReadFile(filepath.Join(outDir, "SHA256SUMS"))
	if err != nil {
		t.Fatalf("reading SHA256SUMS: %v", err)
	}
	if !strings.Contains(string(sums), art.SHA256) {
		t.Error("SHA256SUMS does not list the artifact digest")
	}
}

func TestBuildOtherFormats(t *testing.T) {
	for _, format := range []Format{FormatXZ, FormatZstd} {
		t.Run(string(format), func(t *testing.T) {
			art, err := Build(wrapperRecord(), Options{OutDir: t.TempDir(), Format: format})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			entries := readEntries(t, art.Path, format)
			if len(entries) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(entries))
			}
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	dir1, dir2 := t.TempDir(), t.TempDir()
	art1, err := Build(wrapperRecord(), Options{OutDir: dir1, Format: FormatGzip})
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	art2, err := Build(wrapperRecord(), Options{OutDir: dir2, Format: FormatGzip})
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}

	data1, _ := os.ReadFile(art1.Path)
	data2, _ := os.ReadFile(art2.Path)
	if !bytes.Equal(data1, data2) {
		t.Error("identical records produced different artifacts")
	}
	if art1.SHA256 != art2.SHA256 {
		t.Error("identical records produced different digests")
	}
	if art1.BuildID == art2.BuildID {
		t.Error("expected distinct build IDs per build")
	}
}

func TestBuildRefusesDriftedRecord(t *testing.T) {
	rec := wrapperRecord()
	rec.Requires[0].Version = "1.13.0"

	_, err := Build(rec, Options{OutDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected build to refuse a drifted record")
	}
	if !strings.Contains(err.Error(), "refusing to build") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input       string
		expected    Format
		expectError bool
	}{
		{input: "", expected: FormatGzip},
		{input: "gz", expected: FormatGzip},
		{input: "gzip", expected: FormatGzip},
		{input: "xz", expected: FormatXZ},
		{input: "zst", expected: FormatZstd},
		{input: "ZSTD", expected: FormatZstd},
		{input: "rar", expectError: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.expectError {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}
