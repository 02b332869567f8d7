package importer

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

func TestSkipBOM(t *testing.T) {
	t.Parallel()

	got, err := io.ReadAll(SkipBOM(strings.NewReader("\xEF\xBB\xBFID,CODE")))
	require.NoError(t, err)
	assert.Equal(t, "ID,CODE", string(got))

	got, err = io.ReadAll(SkipBOM(strings.NewReader("ID")))
	require.NoError(t, err)
	assert.Equal(t, "ID", string(got))
}

func TestUTF8Sanitizer_ReplacesInvalidBytes(t *testing.T) {
	t.Parallel()

	got, err := io.ReadAll(NewUTF8Sanitizer(strings.NewReader("caf\xff ok")))
	require.NoError(t, err)
	assert.Equal(t, "caf? ok", string(got))
}

func TestUTF8Sanitizer_KeepsSplitRunes(t *testing.T) {
	t.Parallel()

	in := "Köchin, Bäcker, 料理人"
	// OneByteReader forces every multi-byte rune to straddle reads.
	got, err := io.ReadAll(NewUTF8Sanitizer(iotest.OneByteReader(strings.NewReader(in))))
	require.NoError(t, err)
	assert.Equal(t, in, string(got))
}

// chunkReader returns one chunk per Read, split further when p is short.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

func TestUTF8Sanitizer_ShortBufferKeepsCarry(t *testing.T) {
	t.Parallel()

	s := NewUTF8Sanitizer(&chunkReader{chunks: []string{"aaa\xC3", "\xA9b"}})

	var got []byte
	buf := make([]byte, 8)
	n, err := s.Read(buf)
	require.NoError(t, err)
	got = append(got, buf[:n]...)

	buf = make([]byte, 2)
	for {
		n, err := s.Read(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, "aaaéb", string(got))
}

func TestUTF8Sanitizer_OneByteBuffer(t *testing.T) {
	t.Parallel()

	in := "Köchin, 料理人, \xff"
	s := NewUTF8Sanitizer(strings.NewReader(in))

	var got []byte
	buf := make([]byte, 1)
	for {
		n, err := s.Read(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, "Köchin, 料理人, ?", string(got))
}

func TestRecordReader_LongMultibyteCell(t *testing.T) {
	t.Parallel()

	// Cells longer than the csv reader's buffer make it refill its tail with
	// reads of a few bytes, which split runes at every possible offset.
	for pad := 3400; pad < 4200; pad++ {
		cell := strings.Repeat("a", pad) + strings.Repeat("é", 300)
		rr, err := NewRecordReader(strings.NewReader("ID,DESCRIPTION\n1," + cell + "\n"))
		require.NoError(t, err)

		rec, err := rr.Next()
		require.NoError(t, err)
		if rec.Get("DESCRIPTION") != cell {
			t.Fatalf("pad %d: description corrupted", pad)
		}
	}
}

func TestRecordReader(t *testing.T) {
	t.Parallel()

	in := "\xEF\xBB\xBFid, Code ,PreferredLabel\n1,C1,\"chef\ncook\"\n2,C2\n"
	rr, err := NewRecordReader(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "CODE", "PREFERREDLABEL"}, rr.Header())

	rec, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", rec.Get("ID"))
	assert.Equal(t, "chef\ncook", rec.Get("PREFERREDLABEL"))

	rec, err = rr.Next()
	require.NoError(t, err)
	assert.Equal(t, "C2", rec.Get("CODE"))
	assert.Equal(t, "", rec.Get("PREFERREDLABEL"))

	_, err = rr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRecordReader_Empty(t *testing.T) {
	t.Parallel()

	_, err := NewRecordReader(strings.NewReader(""))
	assert.True(t, errors.Is(err, domain.ErrMissingColumns))
}

func TestValidateHeaders(t *testing.T) {
	t.Parallel()

	required := []string{"OCCUPATIONTYPE", "OCCUPATIONID", "SKILLID", "RELATIONTYPE"}

	assert.NoError(t, ValidateHeaders([]string{"occupationType", "OCCUPATIONID", "SKILLID", "RELATIONTYPE", "EXTRA"}, required))

	err := ValidateHeaders([]string{"OCCUPATIONID", "SKILLID"}, required)
	require.ErrorIs(t, err, domain.ErrMissingColumns)
	assert.Contains(t, err.Error(), "OCCUPATIONTYPE, RELATIONTYPE")
}
