// Package download fetches remote texture images into a local cache directory.
package download

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const defaultUserAgent = "stadium/1.0 (+texture fetch)"

// IsRemote reports whether ref is an http(s) URL rather than a file path.
func IsRemote(ref string) bool {
	r := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(r, "http://") || strings.HasPrefix(r, "https://")
}

// Fetcher downloads URLs into Dir. A URL that was fetched before is served from Dir without a
// request; the cached name is derived from the URL so it is stable across runs.
type Fetcher struct {
	Dir       string
	Client    *http.Client
	UserAgent string
}

// New returns a Fetcher for dir with a 60 second client timeout.
func New(dir string) *Fetcher {
	return &Fetcher{Dir: dir, Client: &http.Client{Timeout: 60 * time.Second}, UserAgent: defaultUserAgent}
}

// Fetch returns the local path of url, downloading it first if it is not cached.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	name := cacheName(url)
	// Any extension may have been chosen from Content-Type on the first fetch.
	if matches, _ := filepath.Glob(filepath.Join(f.Dir, name+".*")); len(matches) > 0 {
		return matches[0], nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	ua := f.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: %s: HTTP %d", url, resp.StatusCode)
	}

	ext := extensionFromContentType(resp.Header.Get("Content-Type"))
	if ext == "" {
		ext = extensionFromURL(url)
	}
	if ext == "" {
		return "", fmt.Errorf("download: %s: not an image (Content-Type %q)", url, resp.Header.Get("Content-Type"))
	}

	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	tmp, err := os.CreateTemp(f.Dir, name+"-*.part")
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	savedPath := filepath.Join(f.Dir, name+ext)
	if err := os.Rename(tmp.Name(), savedPath); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	return savedPath, nil
}

// cacheName is the readable base of the URL path plus a short hash of the whole URL.
func cacheName(url string) string {
	sum := sha1.Sum([]byte(url))
	base := sanitizeFilename(filenameFromURL(url))
	return base + "-" + hex.EncodeToString(sum[:4])
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch {
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "webp"):
		return ".webp"
	case strings.Contains(ct, "bmp"):
		return ".bmp"
	}
	return ""
}

func extensionFromURL(url string) string {
	ext := strings.ToLower(filepath.Ext(stripQuery(url)))
	switch ext {
	case ".png", ".jpg", ".webp", ".bmp":
		return ext
	case ".jpeg":
		return ".jpg"
	}
	return ""
}

func filenameFromURL(url string) string {
	base := filepath.Base(stripQuery(url))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func stripQuery(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		return url[:idx]
	}
	return url
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	name = strings.Trim(safeNameRe.ReplaceAllString(name, "_"), "._")
	if name == "" {
		return "texture"
	}
	if len(name) > 64 {
		name = name[:64]
	}
	return name
}
