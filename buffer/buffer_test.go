package buffer

import (
	"os"
	"path/filepath"
	"testing"
)

// Scenario 1: empty buffer, insert, undo.
func TestScenarioInsertAndUndo(t *testing.T) {
	b := NewBuffer()
	b.InsertAt("hello\nworld", Position{0, 0})

	if got := b.LineCount(); got != 2 {
		t.Errorf("LineCount() = %d, want 2", got)
	}
	text, ok := b.Read(Range{Start: Position{0, 0}, End: Position{1, 5}})
	if !ok || text != "hello\nworld" {
		t.Errorf("Read() = (%q, %v), want (%q, true)", text, ok, "hello\nworld")
	}

	b.Undo()
	if got := b.Data(); got != "" {
		t.Errorf("after Undo(), Data() = %q, want empty", got)
	}
	if !b.Modified() {
		t.Errorf("Modified() should remain true after insert-then-undo (conservative policy)")
	}
}

// Scenario 2: grapheme-aware search and delete.
func TestScenarioSearchAndDeleteGrapheme(t *testing.T) {
	b := NewBuffer()
	b.InsertAt("café", Position{0, 0})

	matches := Search(b.doc, "é")
	want := []Position{{0, 3}}
	if len(matches) != 1 || matches[0] != want[0] {
		t.Fatalf("Search('é') = %v, want %v", matches, want)
	}

	b.DeleteRange(Range{Start: Position{0, 3}, End: Position{0, 4}})
	if got := b.Data(); got != "caf" {
		t.Errorf("Data() after delete = %q, want %q", got, "caf")
	}
}

// Scenario 3: grouped undo/redo.
func TestScenarioGroupedUndoRedo(t *testing.T) {
	b := NewBuffer()
	b.InsertAt("x", Position{0, 0})
	original := b.Data()
	b.StartOperationGroup()
	b.InsertAt("a", Position{0, 1})
	b.InsertAt("b", Position{0, 2})
	b.EndOperationGroup()

	if got := b.Data(); got != "xab" {
		t.Fatalf("after grouped inserts, Data() = %q, want %q", got, "xab")
	}

	b.Undo()
	if got := b.Data(); got != original {
		t.Errorf("after one Undo() of a group, Data() = %q, want %q", got, original)
	}

	b.Redo()
	if got := b.Data(); got != original+"ab" {
		t.Errorf("after Redo(), Data() = %q, want %q", got, original+"ab")
	}
}

// Scenario 4: reallocation under a large insert.
func TestScenarioReallocationLargeInsert(t *testing.T) {
	base := make([]byte, 10000)
	for i := range base {
		base[i] = 'x'
	}
	b := NewBuffer()
	b.InsertAt(string(base), Position{0, 0})

	insertText := make([]byte, 20000)
	for i := range insertText {
		insertText[i] = 'y'
	}
	b.InsertAt(string(insertText), Position{0, 0})

	want := string(insertText) + string(base)
	if got := b.Data(); got != want {
		t.Fatalf("Data() length = %d, want %d", len(got), len(want))
	}
}

// Scenario 5: reload with a shorter file clamps the cursor.
func TestScenarioReloadClampsCursor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\nline three\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	b, err := NewBufferFromFile(path)
	if err != nil {
		t.Fatalf("NewBufferFromFile: %v", err)
	}
	b.Cursor().MoveTo(Position{2, 3})

	if err := os.WriteFile(path, []byte("short\n"), 0o644); err != nil {
		t.Fatalf("WriteFile (shorter): %v", err)
	}
	if err := b.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	pos := b.Cursor().Position()
	if !b.doc.InBounds(pos) {
		t.Errorf("cursor %v not in bounds after reload", pos)
	}
	if b.Modified() {
		t.Errorf("Modified() should be false after a successful reload")
	}
}

func TestBufferSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")

	b := NewBuffer()
	if err := b.SetPath(path); err != nil {
		t.Fatalf("SetPath: %v", err)
	}
	b.InsertAt("hello\nworld", Position{0, 0})
	if err := b.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if b.Modified() {
		t.Errorf("Modified() should be false immediately after Save()")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello\nworld" {
		t.Errorf("saved file contents = %q, want %q", string(data), "hello\nworld")
	}
}

func TestBufferSaveWithoutPathFails(t *testing.T) {
	b := NewBuffer()
	err := b.Save()
	if _, ok := err.(*PathMissing); !ok {
		t.Errorf("Save() without a path = %v, want *PathMissing", err)
	}
}

func TestBufferReloadWithoutPathFails(t *testing.T) {
	b := NewBuffer()
	err := b.Reload()
	if _, ok := err.(*PathMissing); !ok {
		t.Errorf("Reload() without a path = %v, want *PathMissing", err)
	}
}

func TestBufferLoadRejectsNonUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binary.dat")
	if err := os.WriteFile(path, []byte{0xFF, 0xFE, 0x00, 0x68}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := NewBufferFromFile(path)
	if _, ok := err.(*IoFailure); !ok {
		t.Errorf("NewBufferFromFile(non-UTF-8) = %v, want *IoFailure", err)
	}
}

func TestBufferReplaceIsSingleUndoStep(t *testing.T) {
	b := NewBuffer()
	b.InsertAt("original content", Position{0, 0})
	b.Replace("brand new content")
	if got := b.Data(); got != "brand new content" {
		t.Fatalf("Data() after Replace = %q", got)
	}
	b.Undo()
	if got := b.Data(); got != "original content" {
		t.Errorf("one Undo() after Replace should restore prior content, got %q", got)
	}
}

func TestBufferChangeCallbackInvoked(t *testing.T) {
	b := NewBuffer()
	calls := 0
	b.SetChangeCallback(func() { calls++ })

	b.InsertAt("a", Position{0, 0})
	b.DeleteRange(Range{Start: Position{0, 0}, End: Position{0, 1}})
	b.Undo()
	b.Redo()

	if calls != 4 {
		t.Errorf("change callback invoked %d times, want 4", calls)
	}
}

func TestBufferFileExtension(t *testing.T) {
	b := NewBuffer()
	if _, ok := b.FileExtension(); ok {
		t.Errorf("FileExtension() on a pathless buffer should fail")
	}
	b.SetPath("/tmp/example/Main.GO")
	ext, ok := b.FileExtension()
	if !ok || ext != "go" {
		t.Errorf("FileExtension() = (%q, %v), want (%q, true)", ext, ok, "go")
	}
}

func TestBufferTokensFailsWithoutSyntax(t *testing.T) {
	b := NewBuffer()
	_, err := b.Tokens(nil, nil)
	if _, ok := err.(*MissingSyntaxDefinition); !ok {
		t.Errorf("Tokens() without a syntax descriptor = %v, want *MissingSyntaxDefinition", err)
	}
}

func TestBufferDeleteAtDocumentEndIsNoop(t *testing.T) {
	b := NewBuffer()
	b.InsertAt("ab", Position{0, 0})
	b.Cursor().MoveTo(Position{0, 2})
	b.Delete()
	if got := b.Data(); got != "ab" {
		t.Errorf("Delete() at document end changed content: %q", got)
	}
}
