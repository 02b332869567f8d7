package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SkipBOM drops a leading UTF-8 byte order mark. Spreadsheet exports add one
// and it would otherwise end up in the first header name.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf8Sanitizer replaces invalid UTF-8 bytes with '?' while streaming.
// Multi-byte sequences split across reads are carried to the next Read.
// Reads into buffers too small to hold the carry plus a whole rune go
// through scratch, and what does not fit in p is served by later Reads.
type utf8Sanitizer struct {
	r       io.Reader
	carry   []byte
	scratch [4 * utf8.UTFMax]byte
	pending []byte
	err     error
}

// NewUTF8Sanitizer wraps r so that everything read from it is valid UTF-8.
func NewUTF8Sanitizer(r io.Reader) io.Reader {
	return &utf8Sanitizer{r: r, carry: make([]byte, 0, utf8.UTFMax)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(s.pending) > 0 {
		n := copy(p, s.pending)
		s.pending = s.pending[n:]
		if len(s.pending) == 0 && s.err != nil {
			return n, s.err
		}
		return n, nil
	}
	if s.err != nil {
		return 0, s.err
	}

	if len(p) < 2*utf8.UTFMax {
		m, err := s.fill(s.scratch[:])
		n := copy(p, s.scratch[:m])
		if n < m {
			s.pending = s.scratch[n:m]
			s.err = err
			return n, nil
		}
		return n, err
	}
	return s.fill(p)
}

// fill reads into p, which must hold at least 2*utf8.UTFMax bytes, and
// returns the number of sanitized bytes placed at its start. A truncated
// rune at the end of the data is held back unless the source is done.
func (s *utf8Sanitizer) fill(p []byte) (int, error) {
	for {
		n := copy(p, s.carry)
		s.carry = s.carry[:0]

		m, err := s.r.Read(p[n:])
		n += m
		data := p[:n]

		if err == nil {
			if k := incompleteSuffix(data); k > 0 {
				s.carry = append(s.carry, data[len(data)-k:]...)
				data = data[:len(data)-k]
			}
			if len(data) == 0 && m > 0 {
				continue
			}
		}
		return sanitize(data), err
	}
}

// incompleteSuffix returns the length of a truncated multi-byte sequence at
// the end of b, or 0.
func incompleteSuffix(b []byte) int {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		c := b[len(b)-i]
		if !utf8.RuneStart(c) {
			continue
		}
		if c >= 0xC0 && !utf8.FullRune(b[len(b)-i:]) {
			return i
		}
		return 0
	}
	return 0
}

// sanitize rewrites b in place and returns the new length.
func sanitize(b []byte) int {
	if utf8.Valid(b) {
		return len(b)
	}
	w := 0
	for r := 0; r < len(b); {
		c, size := utf8.DecodeRune(b[r:])
		if c == utf8.RuneError && size == 1 {
			b[w] = '?'
			w++
			r++
			continue
		}
		w += copy(b[w:], b[r:r+size])
		r += size
	}
	return w
}

// Record is one data row keyed by upper-cased column name.
type Record map[string]string

// Get returns the trimmed value of col, or "" when the column is absent.
func (r Record) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// RecordReader reads CSV records with a header row.
type RecordReader struct {
	csv    *csv.Reader
	header []string
}

// NewRecordReader wraps r with BOM skipping and UTF-8 sanitizing and reads
// the header row. Header names are trimmed and upper-cased.
func NewRecordReader(r io.Reader) (*RecordReader, error) {
	cr := csv.NewReader(NewUTF8Sanitizer(SkipBOM(r)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	raw, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", domain.ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header := make([]string, len(raw))
	for i, h := range raw {
		header[i] = strings.ToUpper(strings.TrimSpace(h))
	}
	return &RecordReader{csv: cr, header: header}, nil
}

// Header returns the normalized header names.
func (r *RecordReader) Header() []string { return r.header }

// Next returns the next record, or io.EOF when the input is exhausted.
// Cells beyond the header are ignored; missing trailing cells read as "".
func (r *RecordReader) Next() (Record, error) {
	row, err := r.csv.Read()
	if err != nil {
		return nil, err
	}
	rec := make(Record, len(r.header))
	for i, col := range r.header {
		if i < len(row) {
			rec[col] = row[i]
		}
	}
	return rec, nil
}

// ValidateHeaders checks that every required column is present in actual.
// Comparison is case-insensitive.
func ValidateHeaders(actual, required []string) error {
	have := make(map[string]bool, len(actual))
	for _, h := range actual {
		have[strings.ToUpper(strings.TrimSpace(h))] = true
	}

	var missing []string
	for _, col := range required {
		if !have[strings.ToUpper(col)] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}
