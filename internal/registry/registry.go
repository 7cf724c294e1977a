// Package registry resolves an exact dependency pin against a PyPI-style
// JSON index and downloads release files.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/utils/network"
)

// DefaultIndexURL is the public index queried when no other index is
// configured.
const DefaultIndexURL = "https://pypi.org"

// ReleaseFile is one downloadable file of a resolved release.
type ReleaseFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	SHA256   string `json:"sha256"`
}

// Client talks to one index.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a Client for the given index URL, falling back to
// DefaultIndexURL when it is empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultIndexURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    network.NewSecureHTTPClient(),
	}
}

// releaseResponse is the subset of the index's release document we read.
type releaseResponse struct {
	URLs []struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
		Digests  struct {
			SHA256 string `json:"sha256"`
		} `json:"digests"`
	} `json:"urls"`
}

// Resolve looks up the exact release pinned by dep and returns its files.
// A missing project or version is the index's failure: its response is
// surfaced verbatim, not wrapped in a retry or a fallback.
func (c *Client) Resolve(ctx context.Context, dep descriptor.Dependency) ([]ReleaseFile, error) {
	url := fmt.Sprintf("%s/pypi/%s/%s/json", c.BaseURL, dep.Name, dep.Version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building index request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, errors.New(msg)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decoding index response: %w", err)
	}
	if len(release.URLs) == 0 {
		return nil, fmt.Errorf("index lists no files for %s", dep)
	}

	files := make([]ReleaseFile, 0, len(release.URLs))
	for _, u := range release.URLs {
		files = append(files, ReleaseFile{
			Filename: u.Filename,
			URL:      u.URL,
			SHA256:   u.Digests.SHA256,
		})
	}
	return files, nil
}
