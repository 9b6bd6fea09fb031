package source

import "github.com/risor-io/lattice/token"

// Cursor is an immutable snapshot of a Reader position and the character
// found there. Any number of cursors may be alive at once; restoring one
// does not consume or invalidate it or any other cursor.
type Cursor struct {
	r   Reader
	pos token.Pos
	ch  rune
}

// Position returns the captured position.
func (c Cursor) Position() token.Pos {
	return c.pos
}

// Char returns the character at the captured position, or NoChar if the
// cursor was taken at end of input.
func (c Cursor) Char() rune {
	return c.ch
}

// Restore moves the owning Reader back to the captured position.
func (c Cursor) Restore() {
	// A saved position was in range when captured and the text never
	// changes, so the seek cannot fail.
	_, _ = c.r.Seek(c.pos)
}

// SpanTo returns the span from the captured position to the Reader's
// current position.
func (c Cursor) SpanTo() token.Span {
	return token.NewSpan(c.pos, c.r.Position())
}
