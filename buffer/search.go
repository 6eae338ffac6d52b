package buffer

import "strings"

// Search returns the start Position of every non-overlapping, case-sensitive
// occurrence of query in doc, in document order. An empty query matches
// nothing.
func Search(doc *GapBuffer, query string) []Position {
	if query == "" {
		return nil
	}
	text := doc.String()
	var matches []Position
	searchFrom := 0
	for {
		idx := strings.Index(text[searchFrom:], query)
		if idx < 0 {
			break
		}
		byteOffset := searchFrom + idx
		matches = append(matches, doc.position(byteOffset))
		searchFrom = byteOffset + len(query)
	}
	return matches
}
