// Package diff reports line-position disagreements between two texts.
package diff

import "strings"

// Change records one line position where two texts differ. Line is
// 1-based; a side that has no line at that position reports an empty
// string.
type Change struct {
	Line     int    `json:"line"`
	Original string `json:"original"`
	Revised  string `json:"revised"`
}

// Lines compares two texts position by position and returns every line
// index where they disagree. This is intentionally not a
// minimal-edit-distance diff: inserting or deleting a single line
// shifts every following line and marks each of them as changed.
// Callers that need move detection need a different tool; the shift
// sensitivity here is part of the contract.
func Lines(original, revised string) []Change {
	origLines := strings.Split(original, "\n")
	revLines := strings.Split(revised, "\n")

	n := len(origLines)
	if len(revLines) > n {
		n = len(revLines)
	}

	var changes []Change
	for i := 0; i < n; i++ {
		var o, r string
		if i < len(origLines) {
			o = origLines[i]
		}
		if i < len(revLines) {
			r = revLines[i]
		}
		if o != r {
			changes = append(changes, Change{Line: i + 1, Original: o, Revised: r})
		}
	}
	return changes
}
