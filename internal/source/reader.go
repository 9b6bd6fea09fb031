// Package source provides random-access, position-addressable views over
// Lattice source text.
//
// A Reader is created once per parse and moved with Advance and Seek. A
// Cursor is an immutable snapshot of a Reader position that can put the
// Reader back at that position later, no matter what happened in between.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/risor-io/lattice/token"
)

// NoChar is returned when a character is requested past the end of input.
const NoChar rune = -1

// ErrNegativeOffset is returned by any offset-taking operation called with a
// negative offset or position.
var ErrNegativeOffset = errors.New("negative offset")

// Reader is a random-access view over a character sequence.
type Reader interface {
	// Name identifies the source in diagnostics (usually a file name).
	Name() string

	// Len returns the total number of characters.
	Len() int

	// Position returns the current 0-based character offset.
	Position() token.Pos

	// CharAt returns the character at the given offset from the current
	// position, or NoChar if that lies at or past the end of input.
	CharAt(offset int) (rune, error)

	// Current returns the character at the current position, or NoChar at
	// end of input.
	Current() rune

	// Advance moves forward by n characters. It returns false and does not
	// move if that would pass the end of input.
	Advance(n int) (bool, error)

	// AdvanceCapped moves forward by at most n characters, stopping at the
	// end of input, and returns how many characters were skipped.
	AdvanceCapped(n int) (int, error)

	// Seek moves to an absolute position. It returns false and does not move
	// if pos is past the end of input.
	Seek(pos token.Pos) (bool, error)

	// SeekCapped moves to pos or to the end of input, whichever comes first,
	// and returns the resulting position.
	SeekCapped(pos token.Pos) (token.Pos, error)

	// IsEnd returns true when the position equals the length.
	IsEnd() bool

	// Save captures the current position as a Cursor.
	Save() Cursor

	// Text returns the whole source text.
	Text() string

	// Slice returns the text in the half-open span.
	Slice(span token.Span) string
}

// runeReader is the Reader implementation shared by string and file sources.
type runeReader struct {
	name  string
	text  string
	chars []rune
	pos   int
}

// NewString returns a Reader over an in-memory string.
func NewString(name, text string) Reader {
	return &runeReader{name: name, text: text, chars: []rune(text)}
}

// Open returns a Reader over the contents of a file. UTF-8 and UTF-16 input
// with a byte order mark is decoded; input without a BOM is read as UTF-8.
func Open(path string) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return FromReader(path, f)
}

// FromReader drains r and returns a Reader over its decoded contents.
func FromReader(name string, r io.Reader) (Reader, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, decoder))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return NewString(name, string(data)), nil
}

func (r *runeReader) Name() string {
	return r.name
}

func (r *runeReader) Len() int {
	return len(r.chars)
}

func (r *runeReader) Position() token.Pos {
	return token.Pos(r.pos)
}

func (r *runeReader) CharAt(offset int) (rune, error) {
	if offset < 0 {
		return NoChar, fmt.Errorf("char at %d: %w", offset, ErrNegativeOffset)
	}
	i := r.pos + offset
	if i >= len(r.chars) {
		return NoChar, nil
	}
	return r.chars[i], nil
}

func (r *runeReader) Current() rune {
	if r.pos >= len(r.chars) {
		return NoChar
	}
	return r.chars[r.pos]
}

func (r *runeReader) Advance(n int) (bool, error) {
	if n < 0 {
		return false, fmt.Errorf("advance by %d: %w", n, ErrNegativeOffset)
	}
	if r.pos+n > len(r.chars) {
		return false, nil
	}
	r.pos += n
	return true, nil
}

func (r *runeReader) AdvanceCapped(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("advance by %d: %w", n, ErrNegativeOffset)
	}
	n = min(n, len(r.chars)-r.pos)
	r.pos += n
	return n, nil
}

func (r *runeReader) Seek(pos token.Pos) (bool, error) {
	if pos < 0 {
		return false, fmt.Errorf("seek to %d: %w", pos, ErrNegativeOffset)
	}
	if int(pos) > len(r.chars) {
		return false, nil
	}
	r.pos = int(pos)
	return true, nil
}

func (r *runeReader) SeekCapped(pos token.Pos) (token.Pos, error) {
	if pos < 0 {
		return r.Position(), fmt.Errorf("seek to %d: %w", pos, ErrNegativeOffset)
	}
	r.pos = min(int(pos), len(r.chars))
	return r.Position(), nil
}

func (r *runeReader) IsEnd() bool {
	return r.pos >= len(r.chars)
}

func (r *runeReader) Save() Cursor {
	return Cursor{r: r, pos: r.Position(), ch: r.Current()}
}

func (r *runeReader) Text() string {
	return r.text
}

func (r *runeReader) Slice(span token.Span) string {
	start := max(0, min(int(span.Start), len(r.chars)))
	end := max(start, min(int(span.End), len(r.chars)))
	return string(r.chars[start:end])
}
