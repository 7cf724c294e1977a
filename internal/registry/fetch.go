package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/open-edge-platform/pinwrap/internal/utils/logger"
)

// Fetch downloads the given release files into destDir using a pool of
// workers. It shows a single progress bar tracking files completed vs total
// and verifies each file's sha256 digest when the index provided one.
func (c *Client) Fetch(files []ReleaseFile, destDir string, workers int) error {
	log := logger.Logger()

	if workers < 1 {
		workers = 1
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	total := len(files)
	jobs := make(chan ReleaseFile, total)
	errs := make(chan error, total)
	var wg sync.WaitGroup

	bar := progressbar.NewOptions(total,
		progressbar.OptionFullWidth(),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				bar.Describe(fmt.Sprintf("downloading %s", file.Filename))
				if err := c.fetchOne(file, destDir); err != nil {
					log.Errorf("downloading %s failed: %v", file.Filename, err)
					errs <- err
				}
				bar.Add(1)
			}
		}()
	}

	for _, f := range files {
		jobs <- f
	}
	close(jobs)

	wg.Wait()
	bar.Finish()
	close(errs)

	var failed int
	for range errs {
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, total)
	}
	return nil
}

func (c *Client) fetchOne(file ReleaseFile, destDir string) error {
	resp, err := c.HTTP.Get(file.URL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	destPath := filepath.Join(destDir, filepath.Base(file.Filename))
	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, hasher), resp.Body); err != nil {
		return err
	}

	if file.SHA256 != "" {
		got := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(got, file.SHA256) {
			os.Remove(destPath)
			return fmt.Errorf("sha256 mismatch for %s: expected %s, got %s",
				file.Filename, file.SHA256, got)
		}
	}
	return nil
}
