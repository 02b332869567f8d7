package postgres

import (
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// Cursor adapts pgx.Rows into a domain.Cursor. Each row is scanned into R by
// scany and converted to T.
type Cursor[R, T any] struct {
	rows    pgx.Rows
	scanner *pgxscan.RowScanner
	convert func(R) T

	current T
	err     error
	done    bool
}

// NewCursor wraps rows. The cursor owns rows and closes them once the stream
// ends or Close is called.
func NewCursor[R, T any](rows pgx.Rows, convert func(R) T) *Cursor[R, T] {
	return &Cursor[R, T]{
		rows:    rows,
		scanner: pgxscan.NewRowScanner(rows),
		convert: convert,
	}
}

// Next advances to the next row.
func (c *Cursor[R, T]) Next() bool {
	if c.done {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		c.Close()
		return false
	}

	var row R
	if err := c.scanner.Scan(&row); err != nil {
		c.err = err
		c.Close()
		return false
	}
	c.current = c.convert(row)
	return true
}

// Value returns the row read by the last successful Next.
func (c *Cursor[R, T]) Value() T { return c.current }

// Err returns the error that ended the stream, if any.
func (c *Cursor[R, T]) Err() error { return c.err }

// Close releases the rows. Safe to call repeatedly.
func (c *Cursor[R, T]) Close() {
	if c.done {
		return
	}
	c.done = true
	c.rows.Close()
}
