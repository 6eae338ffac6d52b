package buffer

import "strings"

// GapBuffer is a mutable byte store for a document's text: conceptually
// prefix ∥ gap ∥ suffix, where prefix and suffix together hold the
// document's UTF-8 bytes and the gap is unused capacity sitting at the
// current edit site. Near-cursor edits are O(1) amortized because they
// only ever touch the gap boundary.
//
// gapStart and the byte-offset arguments to its unexported helpers are
// offsets into the LOGICAL document, i.e. with the gap already excluded —
// the same convention the prefix/suffix split implies. gapEnd is the one
// physical index: the position in data where the suffix begins. The only
// externally visible coordinate is
// Position, addressed in grapheme clusters; conversion between the two is
// centralized here so no other package ever reasons about bytes.
type GapBuffer struct {
	data     []byte
	gapStart int
	gapEnd   int
}

const initialGapSize = 1024

// NewGapBuffer returns an empty GapBuffer.
func NewGapBuffer() *GapBuffer {
	return &GapBuffer{
		data:     make([]byte, initialGapSize),
		gapStart: 0,
		gapEnd:   initialGapSize,
	}
}

// NewGapBufferFromString returns a GapBuffer pre-loaded with s.
func NewGapBufferFromString(s string) *GapBuffer {
	g := NewGapBuffer()
	g.insertBytes(0, s)
	return g
}

// Len returns the number of logical bytes stored (excluding the gap).
func (g *GapBuffer) Len() int {
	return len(g.data) - g.gapSize()
}

func (g *GapBuffer) gapSize() int {
	return g.gapEnd - g.gapStart
}

// moveGapToByteOffset relocates the gap so that gapStart equals the given
// logical byte offset, clamped to [0, Len()]. Gap movement is a plain byte
// copy; callers are responsible for only ever requesting offsets that fall
// on a grapheme-cluster boundary, so the copy never splits one.
func (g *GapBuffer) moveGapToByteOffset(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > g.Len() {
		pos = g.Len()
	}
	if pos == g.gapStart {
		return
	}
	if pos < g.gapStart {
		moveCount := g.gapStart - pos
		copy(g.data[g.gapEnd-moveCount:g.gapEnd], g.data[pos:g.gapStart])
		g.gapStart = pos
		g.gapEnd -= moveCount
	} else {
		moveCount := pos - g.gapStart
		copy(g.data[g.gapStart:g.gapStart+moveCount], g.data[g.gapEnd:g.gapEnd+moveCount])
		g.gapStart = pos
		g.gapEnd += moveCount
	}
}

// growCapacity ensures the gap can hold at least n more bytes, preserving
// "at most one contiguous gap region" (§3 GapBuffer invariant iii/iv, §8
// "Reallocation invariant"). Per the reallocation policy, it first moves
// the gap to the logical end of the document — so growth never leaves a
// split, two-segment gap — then grows storage by at least n bytes beyond
// what's already free, then relocates the (now larger) gap back to
// keepAt so the caller's in-flight edit can proceed at its original site.
func (g *GapBuffer) growCapacity(n, keepAt int) {
	if g.gapSize() >= n {
		return
	}
	g.moveGapToByteOffset(g.Len())

	needed := n - g.gapSize()
	newGapSize := max(initialGapSize, needed*2, n)

	newData := make([]byte, len(g.data)+newGapSize)
	copy(newData[:g.gapStart], g.data[:g.gapStart])
	newGapEnd := g.gapEnd + newGapSize
	copy(newData[newGapEnd:], g.data[g.gapEnd:])
	g.data = newData
	g.gapEnd = newGapEnd

	g.moveGapToByteOffset(keepAt)
}

// insertBytes writes text at logical byte offset pos.
func (g *GapBuffer) insertBytes(pos int, text string) {
	if len(text) == 0 {
		return
	}
	if len(text) > g.gapSize() {
		g.growCapacity(len(text), pos)
	} else {
		g.moveGapToByteOffset(pos)
	}
	copy(g.data[g.gapStart:], text)
	g.gapStart += len(text)
}

// deleteBytes removes the logical byte range [start, end), clamped to the
// document's bounds, and returns the removed text.
func (g *GapBuffer) deleteBytes(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > g.Len() {
		end = g.Len()
	}
	if start >= end {
		return ""
	}
	removed := g.logicalSlice(start, end)
	g.moveGapToByteOffset(end)
	g.gapStart -= end - start
	return removed
}

// logicalSlice returns the logical bytes in [start, end), taking care to
// never read gap bytes even when the range starts immediately after the
// gap (a prior bug read them as content).
func (g *GapBuffer) logicalSlice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > g.Len() {
		end = g.Len()
	}
	if start >= end {
		return ""
	}

	var sb strings.Builder
	sb.Grow(end - start)

	if start < g.gapStart {
		beforeEnd := min(end, g.gapStart)
		sb.Write(g.data[start:beforeEnd])
	}
	if end > g.gapStart {
		afterStart := max(start, g.gapStart)
		physicalStart := afterStart - g.gapStart + g.gapEnd
		physicalEnd := end - g.gapStart + g.gapEnd
		sb.Write(g.data[physicalStart:physicalEnd])
	}
	return sb.String()
}

// String returns the full logical document.
func (g *GapBuffer) String() string {
	return g.logicalSlice(0, g.Len())
}

// lineStartByteOffset returns the logical byte offset of the start of the
// given zero-based line.
func (g *GapBuffer) lineStartByteOffset(line int) int {
	if line <= 0 {
		return 0
	}
	current := 0
	for i := 0; i < g.gapStart; i++ {
		if g.data[i] == '\n' {
			current++
			if current == line {
				return i + 1
			}
		}
	}
	for i := g.gapEnd; i < len(g.data); i++ {
		if g.data[i] == '\n' {
			current++
			if current == line {
				return i - g.gapEnd + g.gapStart + 1
			}
		}
	}
	return g.Len()
}

// lineEndByteOffset returns the logical byte offset just before the
// terminating newline of the given line, or the document end if the line
// has none.
func (g *GapBuffer) lineEndByteOffset(line int) int {
	current := 0
	for i := 0; i < g.gapStart; i++ {
		if g.data[i] == '\n' {
			if current == line {
				return i
			}
			current++
		}
	}
	for i := g.gapEnd; i < len(g.data); i++ {
		if g.data[i] == '\n' {
			if current == line {
				return i - g.gapEnd + g.gapStart
			}
			current++
		}
	}
	return g.Len()
}

// LineCount returns the number of lines in the document (always >= 1).
func (g *GapBuffer) LineCount() int {
	count := 1
	for i := 0; i < g.gapStart; i++ {
		if g.data[i] == '\n' {
			count++
		}
	}
	for i := g.gapEnd; i < len(g.data); i++ {
		if g.data[i] == '\n' {
			count++
		}
	}
	return count
}

// graphemeCountOfLine returns the number of grapheme clusters on the given
// line (excluding its terminator).
func (g *GapBuffer) graphemeCountOfLine(line int) int {
	start := g.lineStartByteOffset(line)
	end := g.lineEndByteOffset(line)
	return graphemeCount(g.logicalSlice(start, end))
}

// byteOffset converts a Position to a logical byte offset, walking the
// grapheme clusters of the target line from its start (never indexing into
// a code point, and never crossing a line terminator, which is always its
// own cluster boundary). Offsets past the line's length clamp to the line
// end; lines past the document clamp to the document end.
func (g *GapBuffer) byteOffset(p Position) int {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= g.LineCount() {
		return g.Len()
	}
	lineStart := g.lineStartByteOffset(p.Line)
	lineEnd := g.lineEndByteOffset(p.Line)
	if p.Offset <= 0 {
		return lineStart
	}
	line := g.logicalSlice(lineStart, lineEnd)
	return lineStart + graphemeByteOffset(line, p.Offset)
}

// position converts a logical byte offset to a Position, the inverse of
// byteOffset.
func (g *GapBuffer) position(byteOffset int) Position {
	if byteOffset < 0 {
		byteOffset = 0
	}
	if byteOffset > g.Len() {
		byteOffset = g.Len()
	}

	line := 0
	lineStart := 0
	limit := min(byteOffset, g.gapStart)
	for i := 0; i < limit; i++ {
		if g.data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	if byteOffset <= g.gapStart {
		return Position{Line: line, Offset: graphemeCount(g.logicalSlice(lineStart, byteOffset))}
	}
	physEnd := byteOffset - g.gapStart + g.gapEnd
	for i := g.gapEnd; i < physEnd; i++ {
		if g.data[i] == '\n' {
			line++
			lineStart = i - g.gapEnd + g.gapStart + 1
		}
	}
	return Position{Line: line, Offset: graphemeCount(g.logicalSlice(lineStart, byteOffset))}
}

// InBounds reports whether p addresses a valid location in the document
// (line < LineCount and offset <= the line's grapheme count).
func (g *GapBuffer) InBounds(p Position) bool {
	if p.Line < 0 || p.Line >= g.LineCount() {
		return false
	}
	return p.Offset >= 0 && p.Offset <= g.graphemeCountOfLine(p.Line)
}

// Read returns the text in range, or false if either endpoint lies outside
// the document.
func (g *GapBuffer) Read(r Range) (string, bool) {
	if !g.InBounds(r.Start) || !g.InBounds(r.End) {
		return "", false
	}
	start := g.byteOffset(r.Start)
	end := g.byteOffset(r.End)
	return g.logicalSlice(start, end), true
}

// nextPosition returns the position one grapheme cluster after p, clamped
// to the document's end (wrapping onto the following line's start column 0
// when p sits at the end of a non-final line).
func (g *GapBuffer) nextPosition(p Position) Position {
	lineLen := g.graphemeCountOfLine(p.Line)
	if p.Offset < lineLen {
		return Position{Line: p.Line, Offset: p.Offset + 1}
	}
	if p.Line >= g.LineCount()-1 {
		return p
	}
	return Position{Line: p.Line + 1, Offset: 0}
}

// Insert writes text at position, widening the gap if necessary.
func (g *GapBuffer) Insert(text string, position Position) {
	g.insertBytes(g.byteOffset(position), text)
}

// Delete removes range, clamping any endpoint past the document to the
// document's end, and returns the removed text. Never fails.
func (g *GapBuffer) Delete(r Range) string {
	start := g.byteOffset(r.Start)
	end := g.byteOffset(r.End)
	return g.deleteBytes(start, end)
}
