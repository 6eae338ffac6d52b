package buffer

// Operation is a reversible edit unit. Every Operation knows how to apply
// itself to a Buffer's GapBuffer and how to produce the Operation that
// undoes it, without needing to re-read the document.
type Operation interface {
	apply(doc *GapBuffer)
	reverse() Operation
	// anchor is the position the cursor moves to when this Operation is
	// undone or redone: for Insert, the insert site; for Delete/Replace,
	// the start of the affected range.
	anchor() Position
}

// Insert records text inserted at position.
type Insert struct {
	Content  string
	Position Position
}

func (op Insert) apply(doc *GapBuffer) {
	doc.Insert(op.Content, op.Position)
}

// reverse undoes an Insert with a Delete spanning exactly the inserted
// text's grapheme extent. If Content ends in a line terminator, the
// computed end position correctly lands on the following line at column 0
// rather than past the end of the (now nonexistent) trailing column.
func (op Insert) reverse() Operation {
	end := op.Position.Add(DistanceOf(op.Content))
	return Delete{Content: op.Content, Range: Range{Start: op.Position, End: end}}
}

func (op Insert) anchor() Position { return op.Position }

// Delete records text removed from range. Content is captured at delete
// time so reversal can restore it verbatim.
type Delete struct {
	Content string
	Range   Range
}

func (op Delete) apply(doc *GapBuffer) {
	doc.Delete(op.Range)
}

func (op Delete) reverse() Operation {
	return Insert{Content: op.Content, Position: op.Range.Start}
}

func (op Delete) anchor() Position { return op.Range.Start }

// Replace records a whole-span content replacement as a single reversible
// unit, so one undo restores the prior text instead of requiring a
// delete-then-insert pair to be undone separately.
type Replace struct {
	Before, After           string
	RangeBefore, RangeAfter Range
}

func (op Replace) apply(doc *GapBuffer) {
	doc.Delete(op.RangeBefore)
	doc.Insert(op.After, op.RangeBefore.Start)
}

func (op Replace) reverse() Operation {
	return Replace{
		Before:      op.After,
		After:       op.Before,
		RangeBefore: op.RangeAfter,
		RangeAfter:  op.RangeBefore,
	}
}

func (op Replace) anchor() Position { return op.RangeBefore.Start }

// Group bundles an ordered sequence of Operations into one atomic undo
// unit.
type Group struct {
	Children []Operation
}

func (g Group) apply(doc *GapBuffer) {
	for _, child := range g.Children {
		child.apply(doc)
	}
}

// reverse reverses each child and replays them in reverse order, so a
// group of [a, b, c] undoes as [reverse(c), reverse(b), reverse(a)].
func (g Group) reverse() Operation {
	reversed := make([]Operation, len(g.Children))
	for i, child := range g.Children {
		reversed[len(g.Children)-1-i] = child.reverse()
	}
	return Group{Children: reversed}
}

func (g Group) anchor() Position {
	if len(g.Children) == 0 {
		return Position{}
	}
	return g.Children[0].anchor()
}
