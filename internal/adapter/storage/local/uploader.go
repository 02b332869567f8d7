// Package local writes export archives to a directory on disk.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Uploader writes each archive to <dir>/<name>. Files appear atomically: the
// data goes to a temporary file in the destination directory that is renamed
// once complete.
type Uploader struct {
	dir string
}

// New creates an uploader rooted at dir.
func New(dir string) *Uploader {
	return &Uploader{dir: dir}
}

// Upload stores r under name and returns a file:// URL to it.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	dst, err := filepath.Abs(filepath.Join(u.dir, filepath.FromSlash(name)))
	if err != nil {
		return "", fmt.Errorf("resolve archive path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: r}); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write archive %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close archive %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("move archive into place: %w", err)
	}

	return "file://" + filepath.ToSlash(dst), nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
