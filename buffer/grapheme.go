package buffer

import "github.com/rivo/uniseg"

// graphemeCount returns the number of user-perceived characters (grapheme
// clusters) in s. A multi-codepoint cluster such as "e" + combining acute
// counts as one.
func graphemeCount(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	state := -1
	for len(s) > 0 {
		_, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		n++
	}
	return n
}

// graphemeByteOffset returns the byte offset within s of the start of the
// n-th grapheme cluster (0-based), clamped to len(s) if s has fewer than n
// clusters. It never returns an offset that splits a cluster.
func graphemeByteOffset(s string, n int) int {
	if n <= 0 {
		return 0
	}
	pos := 0
	state := -1
	for i := 0; i < n && pos < len(s); i++ {
		cluster, _, _, newState := uniseg.FirstGraphemeClusterInString(s[pos:], state)
		pos += len(cluster)
		state = newState
	}
	return pos
}
