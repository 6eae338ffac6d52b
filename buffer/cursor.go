package buffer

// Cursor is a Position constrained to remain inside a document: its line is
// always < the document's line count, and its offset is always <= the
// grapheme count of that line. Moves that would violate this return false
// and leave the Cursor unchanged.
type Cursor struct {
	doc *GapBuffer
	pos Position

	// stickyOffset is the column vertical motion tries to return to. It is
	// a separate field from pos so it survives moving across short lines;
	// any non-vertical motion resets it.
	stickyOffset    int
	stickyOffsetSet bool
}

// NewCursor returns a Cursor at the start of doc.
func NewCursor(doc *GapBuffer) *Cursor {
	return &Cursor{doc: doc}
}

// Position returns the current cursor position.
func (c *Cursor) Position() Position {
	return c.pos
}

func (c *Cursor) resetSticky() {
	c.stickyOffsetSet = false
}

func (c *Cursor) clampToLine(line int) Position {
	if line < 0 {
		line = 0
	}
	if line >= c.doc.LineCount() {
		line = c.doc.LineCount() - 1
	}
	offset := c.currentStickyOffset()
	lineLen := c.doc.graphemeCountOfLine(line)
	if offset > lineLen {
		offset = lineLen
	}
	return Position{Line: line, Offset: offset}
}

func (c *Cursor) currentStickyOffset() int {
	if c.stickyOffsetSet {
		return c.stickyOffset
	}
	return c.pos.Offset
}

// MoveTo moves the cursor to an arbitrary position, failing (and resetting
// nothing) if it is out of bounds. Resets the sticky offset.
func (c *Cursor) MoveTo(p Position) bool {
	if !c.doc.InBounds(p) {
		return false
	}
	c.pos = p
	c.resetSticky()
	return true
}

// MoveLeft moves one grapheme cluster left, wrapping to the end of the
// previous line. Resets the sticky offset.
func (c *Cursor) MoveLeft() bool {
	if c.pos.Offset > 0 {
		c.pos.Offset--
		c.resetSticky()
		return true
	}
	if c.pos.Line == 0 {
		return false
	}
	c.pos.Line--
	c.pos.Offset = c.doc.graphemeCountOfLine(c.pos.Line)
	c.resetSticky()
	return true
}

// MoveRight moves one grapheme cluster right, wrapping to the start of the
// next line. Resets the sticky offset.
func (c *Cursor) MoveRight() bool {
	lineLen := c.doc.graphemeCountOfLine(c.pos.Line)
	if c.pos.Offset < lineLen {
		c.pos.Offset++
		c.resetSticky()
		return true
	}
	if c.pos.Line >= c.doc.LineCount()-1 {
		return false
	}
	c.pos.Line++
	c.pos.Offset = 0
	c.resetSticky()
	return true
}

// MoveUp moves up one line, preserving the sticky offset.
func (c *Cursor) MoveUp() bool {
	if c.pos.Line == 0 {
		return false
	}
	target := c.currentStickyOffset()
	c.stickyOffset = target
	c.stickyOffsetSet = true
	c.pos = c.clampToLine(c.pos.Line - 1)
	return true
}

// MoveDown moves down one line, preserving the sticky offset.
func (c *Cursor) MoveDown() bool {
	if c.pos.Line >= c.doc.LineCount()-1 {
		return false
	}
	target := c.currentStickyOffset()
	c.stickyOffset = target
	c.stickyOffsetSet = true
	c.pos = c.clampToLine(c.pos.Line + 1)
	return true
}

// MoveToStartOfLine moves to column 0 of the current line.
func (c *Cursor) MoveToStartOfLine() bool {
	c.pos.Offset = 0
	c.resetSticky()
	return true
}

// MoveToEndOfLine moves to the last column of the current line.
func (c *Cursor) MoveToEndOfLine() bool {
	c.pos.Offset = c.doc.graphemeCountOfLine(c.pos.Line)
	c.resetSticky()
	return true
}

// MoveToFirstWordOfLine moves to the first non-whitespace grapheme cluster
// of the current line, or its end if the line is all whitespace.
func (c *Cursor) MoveToFirstWordOfLine() bool {
	lineStart := Position{Line: c.pos.Line, Offset: 0}
	lineEnd := Position{Line: c.pos.Line, Offset: c.doc.graphemeCountOfLine(c.pos.Line)}
	text, ok := c.doc.Read(Range{Start: lineStart, End: lineEnd})
	if !ok {
		return false
	}
	offset := 0
	for _, r := range []rune(text) {
		if r != ' ' && r != '\t' {
			break
		}
		offset++
	}
	c.pos.Offset = offset
	c.resetSticky()
	return true
}

// MoveToStartOfDocument moves to (0, 0).
func (c *Cursor) MoveToStartOfDocument() bool {
	c.pos = Position{Line: 0, Offset: 0}
	c.resetSticky()
	return true
}

// MoveToEndOfDocument moves to the end of the last line.
func (c *Cursor) MoveToEndOfDocument() bool {
	last := c.doc.LineCount() - 1
	c.pos = Position{Line: last, Offset: c.doc.graphemeCountOfLine(last)}
	c.resetSticky()
	return true
}

// sync clamps the cursor back into bounds after a mutation that may have
// shortened the document out from under it (e.g. undo/reload). It prefers
// keeping the same line+offset and only clamps what no longer fits.
func (c *Cursor) sync() {
	if c.doc.LineCount() == 0 {
		c.pos = Position{}
		return
	}
	if c.pos.Line >= c.doc.LineCount() {
		c.pos.Line = c.doc.LineCount() - 1
	}
	if c.pos.Line < 0 {
		c.pos.Line = 0
	}
	lineLen := c.doc.graphemeCountOfLine(c.pos.Line)
	if c.pos.Offset > lineLen {
		c.pos.Offset = lineLen
	}
	if c.pos.Offset < 0 {
		c.pos.Offset = 0
	}
}
