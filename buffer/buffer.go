package buffer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell-editor/inkwell/encoding"
)

// Buffer composes a GapBuffer with a Cursor, a reversible operation
// history, file persistence, modification tracking, and an optional
// change callback. It is the unit of editing the rest of the toolkit
// manipulates; a Workspace owns a collection of them.
type Buffer struct {
	doc    *GapBuffer
	cursor *Cursor
	hist   *history

	path    string
	hasPath bool

	modified bool

	id    int
	hasID bool

	syntax    SyntaxDescriptor
	hasSyntax bool

	onChange func()
}

// NewBuffer returns an empty, unmodified Buffer with no path.
func NewBuffer() *Buffer {
	doc := NewGapBuffer()
	return &Buffer{
		doc:    doc,
		cursor: NewCursor(doc),
		hist:   newHistory(),
	}
}

// NewBufferFromFile loads path's contents into a new Buffer. Loading
// rejects anything that is not valid UTF-8 text (see the encoding
// package), since binary files are out of scope.
func NewBufferFromFile(path string) (*Buffer, error) {
	canonical, err := filepath.Abs(path)
	if err != nil {
		return nil, &IoFailure{Op: "open", Err: err}
	}
	data, err := os.ReadFile(canonical)
	if err != nil {
		return nil, &IoFailure{Op: "open", Err: err}
	}
	if err := encoding.GuardUTF8(data); err != nil {
		return nil, &IoFailure{Op: "open", Err: err}
	}
	doc := NewGapBufferFromString(string(data))
	b := &Buffer{
		doc:     doc,
		cursor:  NewCursor(doc),
		hist:    newHistory(),
		path:    canonical,
		hasPath: true,
	}
	return b, nil
}

func (b *Buffer) notify() {
	if b.onChange != nil {
		b.onChange()
	}
}

// SetChangeCallback installs f to be invoked after every successful
// mutation. It must not re-enter this Buffer.
func (b *Buffer) SetChangeCallback(f func()) {
	b.onChange = f
}

// Cursor returns the Buffer's cursor.
func (b *Buffer) Cursor() *Cursor {
	return b.cursor
}

func (b *Buffer) apply(op Operation) {
	op.apply(b.doc)
	b.cursor.sync()
	b.modified = true
	b.hist.record(op)
	b.notify()
}

// Insert emits an Insert Operation at the cursor's current position and
// advances the cursor past the inserted text.
func (b *Buffer) Insert(text string) {
	b.InsertAt(text, b.cursor.Position())
}

// InsertAt emits an Insert Operation at an arbitrary position and moves
// the cursor to the end of the inserted text.
func (b *Buffer) InsertAt(text string, position Position) {
	op := Insert{Content: text, Position: position}
	b.apply(op)
	end := position.Add(DistanceOf(text))
	if !b.cursor.MoveTo(end) {
		b.cursor.sync()
	}
}

// Delete removes the grapheme cluster under the cursor, if any, and
// leaves the cursor at the deletion start.
func (b *Buffer) Delete() {
	start := b.cursor.Position()
	end := b.doc.nextPosition(start)
	if start == end {
		return
	}
	b.DeleteRange(Range{Start: start, End: end})
}

// DeleteRange emits a Delete Operation over range, clamped to the
// document's bounds, and leaves the cursor at range.Start.
func (b *Buffer) DeleteRange(r Range) {
	content, ok := b.doc.Read(r)
	if !ok {
		content = b.clampedRead(r)
	}
	if content == "" {
		return
	}
	op := Delete{Content: content, Range: r}
	b.apply(op)
	if !b.cursor.MoveTo(r.Start) {
		b.cursor.sync()
	}
}

// clampedRead reads whatever of r actually falls inside the document,
// used when a Delete's range reaches past the document end.
func (b *Buffer) clampedRead(r Range) string {
	end := Position{Line: b.doc.LineCount() - 1, Offset: b.doc.graphemeCountOfLine(b.doc.LineCount() - 1)}
	if end.Less(r.End) {
		r.End = end
	}
	if end.Less(r.Start) {
		r.Start = end
	}
	text, _ := b.doc.Read(r)
	return text
}

// Replace emits a single reversible Replace Operation swapping the entire
// document for newContent, and moves the cursor to the document start.
func (b *Buffer) Replace(newContent string) {
	before := b.doc.String()
	rangeBefore := b.fullRange()
	op := Replace{
		Before:      before,
		After:       newContent,
		RangeBefore: rangeBefore,
		RangeAfter:  Range{Start: Position{}, End: Position{}.Add(DistanceOf(newContent))},
	}
	b.apply(op)
	b.cursor.MoveTo(Position{})
}

func (b *Buffer) fullRange() Range {
	last := b.doc.LineCount() - 1
	return Range{Start: Position{}, End: Position{Line: last, Offset: b.doc.graphemeCountOfLine(last)}}
}

// Read returns the text in range, or false if either endpoint lies outside
// the document.
func (b *Buffer) Read(r Range) (string, bool) {
	return b.doc.Read(r)
}

// Data returns the full document text.
func (b *Buffer) Data() string {
	return b.doc.String()
}

// LineCount returns the document's line count.
func (b *Buffer) LineCount() int {
	return b.doc.LineCount()
}

// Path returns the Buffer's canonical path, if any.
func (b *Buffer) Path() (string, bool) {
	return b.path, b.hasPath
}

// SetPath canonicalizes and assigns p as the Buffer's path.
func (b *Buffer) SetPath(p string) error {
	canonical, err := filepath.Abs(p)
	if err != nil {
		return &IoFailure{Op: "set_path", Err: err}
	}
	b.path = canonical
	b.hasPath = true
	return nil
}

// FileExtension returns the lowercased extension of the Buffer's path, if
// it has one.
func (b *Buffer) FileExtension() (string, bool) {
	if !b.hasPath {
		return "", false
	}
	ext := filepath.Ext(b.path)
	if ext == "" {
		return "", false
	}
	return strings.ToLower(strings.TrimPrefix(ext, ".")), true
}

// Modified reports whether any mutation has been applied since the last
// save, load, or reload. This is deliberately conservative: undoing back
// to the original content still reports modified, matching the
// predictable, no-surprise behavior favored when this was left a policy
// choice.
func (b *Buffer) Modified() bool {
	return b.modified
}

// Save writes the document's logical text to path atomically and clears
// the modified flag.
func (b *Buffer) Save() error {
	if !b.hasPath {
		return &PathMissing{}
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.doc.String()), 0o644); err != nil {
		return &IoFailure{Op: "save", Err: err}
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return &IoFailure{Op: "save", Err: err}
	}
	b.modified = false
	return nil
}

// Reload reads the Buffer's file from disk and replaces its content as a
// single Replace operation, preserving the cursor's line and offset when
// the new document is still large enough, otherwise clamping it. Clears
// the modified flag on success.
func (b *Buffer) Reload() error {
	if !b.hasPath {
		return &PathMissing{}
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		return &IoFailure{Op: "reload", Err: err}
	}
	if err := encoding.GuardUTF8(data); err != nil {
		return &IoFailure{Op: "reload", Err: err}
	}

	before := b.doc.String()
	rangeBefore := b.fullRange()
	newContent := string(data)
	op := Replace{
		Before:      before,
		After:       newContent,
		RangeBefore: rangeBefore,
		RangeAfter:  Range{Start: Position{}, End: Position{}.Add(DistanceOf(newContent))},
	}
	savedCursor := b.cursor.Position()
	op.apply(b.doc)
	b.hist.record(op)
	if !b.cursor.MoveTo(savedCursor) {
		b.cursor.sync()
	}
	b.modified = false
	b.notify()
	return nil
}

// StartOperationGroup opens a Group collecting subsequent Operations into
// one atomic undo unit.
func (b *Buffer) StartOperationGroup() {
	b.hist.startGroup()
}

// EndOperationGroup closes the open Group, dropping it if it collected no
// Operations.
func (b *Buffer) EndOperationGroup() {
	b.hist.endGroup()
}

// Undo reverses the most recent Operation (or Group), moves the cursor to
// its canonical anchor, and returns false if there was nothing to undo.
func (b *Buffer) Undo() bool {
	op, ok := b.hist.popUndo()
	if !ok {
		return false
	}
	op.reverse().apply(b.doc)
	if !b.cursor.MoveTo(op.anchor()) {
		b.cursor.sync()
	}
	b.modified = true
	b.notify()
	return true
}

// Redo reapplies the most recently undone Operation and returns false if
// there was nothing to redo.
func (b *Buffer) Redo() bool {
	op, ok := b.hist.popRedo()
	if !ok {
		return false
	}
	op.apply(b.doc)
	if !b.cursor.MoveTo(op.reverse().anchor()) {
		b.cursor.sync()
	}
	b.modified = true
	b.notify()
	return true
}

// SyntaxDescriptor returns the Buffer's configured syntax descriptor, if
// any.
func (b *Buffer) SyntaxDescriptor() (SyntaxDescriptor, bool) {
	return b.syntax, b.hasSyntax
}

// SetSyntaxDescriptor configures the descriptor used by Tokens.
func (b *Buffer) SetSyntaxDescriptor(d SyntaxDescriptor) {
	b.syntax = d
	b.hasSyntax = true
}

// ClearSyntaxDescriptor removes any configured syntax descriptor.
func (b *Buffer) ClearSyntaxDescriptor() {
	b.syntax = SyntaxDescriptor{}
	b.hasSyntax = false
}

// Tokens hands the current document text and the Buffer's syntax
// descriptor to lexer, returning MissingSyntaxDefinition if no descriptor
// is configured, or LexerFailure if the lexer itself fails.
func (b *Buffer) Tokens(lexer Lexer, set SyntaxSet) (TokenStream, error) {
	if !b.hasSyntax {
		return nil, &MissingSyntaxDefinition{}
	}
	stream, err := lexer.Tokenize(b.doc.String(), b.syntax, set)
	if err != nil {
		return nil, &LexerFailure{Err: err}
	}
	return stream, nil
}

// ID returns the id assigned to this Buffer by a Workspace, if any.
func (b *Buffer) ID() (int, bool) {
	return b.id, b.hasID
}

// AssignID is called by a Workspace when adding the Buffer. It is not
// meant for use outside a Workspace's own bookkeeping.
func (b *Buffer) AssignID(id int) {
	b.id = id
	b.hasID = true
}
