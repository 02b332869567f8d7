package exporter

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// Collection describes one exported collection: where its documents come
// from and how each document becomes a CSV record.
type Collection[T any] struct {
	Name   string
	Header []string
	Open   func(ctx context.Context) (domain.Cursor[T], error)
	Record func(T) ([]string, error)
}

// Stream is the CSV byte stream of one collection.
//
// The producer starts on the first Read, so a Stream that is never read
// holds no cursor. Every exit path of the producer closes the cursor and
// the pipe; a failure is logged once and surfaces as the error of the
// consumer's next Read.
type Stream struct {
	name  string
	log   *slog.Logger
	start func(w *io.PipeWriter) error
	rows  atomic.Int64

	pr   *io.PipeReader
	pw   *io.PipeWriter
	once sync.Once
	done chan struct{}

	closed atomic.Bool
	err    error
}

// NewStream creates the lazy stream of c.
func NewStream[T any](ctx context.Context, log *slog.Logger, c Collection[T]) *Stream {
	pr, pw := io.Pipe()
	s := &Stream{
		name: c.Name,
		log:  log,
		pr:   pr,
		pw:   pw,
		done: make(chan struct{}),
	}
	s.start = func(w *io.PipeWriter) error {
		return produce(ctx, w, c, &s.rows)
	}
	return s
}

// Name returns the file name of the collection inside the archive.
func (s *Stream) Name() string { return s.name }

func (s *Stream) Read(p []byte) (int, error) {
	s.once.Do(func() { go s.run() })
	return s.pr.Read(p)
}

func (s *Stream) run() {
	err := s.start(s.pw)
	switch {
	case err == nil:
	case errors.Is(err, io.ErrClosedPipe):
		s.log.Debug("export stream abandoned by reader", slog.String("collection", s.name))
	default:
		s.log.Error("export stream failed", slog.String("collection", s.name), slog.Any("error", err))
	}
	s.err = err
	s.closed.Store(true)
	_ = s.pw.CloseWithError(err)
	close(s.done)
}

// Close tears the stream down. If the producer is running it is stopped and
// Close waits for its cursor to be released.
func (s *Stream) Close() error {
	_ = s.pr.Close()
	started := true
	s.once.Do(func() {
		started = false
		_ = s.pw.Close()
		s.closed.Store(true)
		close(s.done)
	})
	if started {
		<-s.done
	}
	return nil
}

// Closed reports whether the producer has finished and released its cursor.
func (s *Stream) Closed() bool { return s.closed.Load() }

// Rows returns the number of records written so far.
func (s *Stream) Rows() int { return int(s.rows.Load()) }

// Err returns the producer error once Closed reports true.
func (s *Stream) Err() error {
	if !s.Closed() {
		return nil
	}
	return s.err
}

func produce[T any](ctx context.Context, w io.Writer, c Collection[T], rows *atomic.Int64) error {
	cur, err := c.Open(ctx)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.Name, err)
	}
	defer cur.Close()

	cw := csv.NewWriter(w)
	if err := cw.Write(c.Header); err != nil {
		return fmt.Errorf("write %s header: %w", c.Name, err)
	}

	for cur.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := c.Record(cur.Value())
		if err != nil {
			return fmt.Errorf("transform %s: %w", c.Name, err)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", c.Name, err)
		}
		rows.Add(1)
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("read %s: %w", c.Name, err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", c.Name, err)
	}
	return nil
}
