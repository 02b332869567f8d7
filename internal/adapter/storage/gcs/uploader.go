// Package gcs uploads export archives to a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/heartmarshall/taxonomy-loader/internal/config"
)

const contentType = "application/zip"

// objectWriterFunc opens a writer for one object. The object is committed
// when the writer closes without error; cancelling ctx aborts it.
type objectWriterFunc func(ctx context.Context, object string) io.WriteCloser

// Uploader streams archives into objects under a bucket prefix.
type Uploader struct {
	bucket string
	prefix string
	open   objectWriterFunc
	client *storage.Client
}

// New creates a storage client for cfg. A credentials file is used when
// configured, otherwise application default credentials apply.
func New(ctx context.Context, cfg config.GCSConfig, prefix string) (*Uploader, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		if _, err := os.Stat(cfg.CredentialsFile); err != nil {
			return nil, fmt.Errorf("gcs credentials file: %w", err)
		}
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS storage client: %w", err)
	}

	bucket := client.Bucket(cfg.Bucket)
	u := newUploader(cfg.Bucket, prefix, func(ctx context.Context, object string) io.WriteCloser {
		w := bucket.Object(object).NewWriter(ctx)
		w.ContentType = contentType
		return w
	})
	u.client = client
	return u, nil
}

func newUploader(bucket, prefix string, open objectWriterFunc) *Uploader {
	return &Uploader{bucket: bucket, prefix: prefix, open: open}
}

// Upload copies r into the object <prefix>/<name> and returns its gs:// URL.
// On a read or write failure the object is abandoned, never committed.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	object := path.Join(u.prefix, name)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := u.open(ctx, object)
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()
		return "", fmt.Errorf("copy archive to gs://%s/%s: %w", u.bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close GCS writer for gs://%s/%s: %w", u.bucket, object, err)
	}

	return fmt.Sprintf("gs://%s/%s", u.bucket, object), nil
}

// Close releases the storage client.
func (u *Uploader) Close() error {
	if u.client == nil {
		return nil
	}
	return u.client.Close()
}
