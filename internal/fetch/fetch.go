// Asset downloads: game runner binary and opening book
package fetch

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// Fetcher downloads run assets into a local directory, skipping anything
// already present.
type Fetcher struct {
	Dir    string
	Client *http.Client
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

// EnsureExecutable downloads url to name under the asset directory unless it
// already exists, and marks it executable. The final path is returned.
func (f *Fetcher) EnsureExecutable(ctx context.Context, url, name string) (string, error) {
	path := filepath.Join(f.Dir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := f.download(ctx, url, path); err != nil {
		return "", err
	}
	if err := os.Chmod(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// EnsureFromZip makes sure member exists under the asset directory,
// downloading the zip archive at url and extracting it if not. The archive
// is removed after extraction.
func (f *Fetcher) EnsureFromZip(ctx context.Context, url, member string) (string, error) {
	path := filepath.Join(f.Dir, member)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	archive := filepath.Join(f.Dir, member+".zip")
	if err := f.download(ctx, url, archive); err != nil {
		return "", err
	}
	defer os.Remove(archive)
	if err := extract(archive, member, path); err != nil {
		return "", err
	}
	return path, nil
}

// download fetches url into path via a temp file so a failed transfer never
// leaves a truncated asset behind.
func (f *Fetcher) download(ctx context.Context, url, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	log.Printf("[Fetch] downloading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func extract(archive, member, dest string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open %s: %w", archive, err)
	}
	defer zr.Close()

	for _, zf := range zr.File {
		if zf.Name != member {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		out, err := os.Create(dest)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	}
	return fmt.Errorf("archive %s has no member %s", archive, member)
}
