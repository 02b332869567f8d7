package exporter

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"time"
)

// WriteArchive copies every stream into its own entry of a ZIP archive
// written to w. Streams are consumed one after another. On any failure all
// streams, including those not yet reached, are closed before returning.
func WriteArchive(ctx context.Context, w io.Writer, streams []*Stream) error {
	defer func() {
		for _, s := range streams {
			_ = s.Close()
		}
	}()

	zw := zip.NewWriter(w)
	for _, s := range streams {
		if err := ctx.Err(); err != nil {
			return err
		}
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:     s.Name(),
			Method:   zip.Deflate,
			Modified: time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("create archive entry %s: %w", s.Name(), err)
		}
		if _, err := io.Copy(entry, s); err != nil {
			return fmt.Errorf("archive %s: %w", s.Name(), err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return nil
}
