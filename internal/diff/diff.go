// Package diff computes line-level diffs between two text blobs for
// transcript rendering. It is a fixed-granularity diff: lines only, no
// word or character refinement.
package diff

import "strings"

type Kind string

const (
	Added     Kind = "added"
	Removed   Kind = "removed"
	Unchanged Kind = "unchanged"
)

// Line is one row of an aligned diff. OldNumber is zero for added lines,
// NewNumber is zero for removed lines; both are 1-based otherwise.
type Line struct {
	Kind      Kind
	Content   string
	OldNumber int
	NewNumber int
}

type Stats struct {
	Added   int
	Removed int
}

// Lines aligns oldText and newText line by line using a longest-common-
// subsequence match. Concatenating the result filtered to non-added lines
// reproduces oldText's lines; filtered to non-removed, newText's lines.
// A trailing newline does not produce a spurious empty entry.
func Lines(oldText, newText string) []Line {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)

	lcs := lcsTable(oldLines, newLines)

	out := make([]Line, 0, len(oldLines)+len(newLines))
	oldNum, newNum := 1, 1
	i, j := 0, 0
	for i < len(oldLines) && j < len(newLines) {
		switch {
		case oldLines[i] == newLines[j]:
			out = append(out, Line{Kind: Unchanged, Content: oldLines[i], OldNumber: oldNum, NewNumber: newNum})
			oldNum++
			newNum++
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			out = append(out, Line{Kind: Removed, Content: oldLines[i], OldNumber: oldNum})
			oldNum++
			i++
		default:
			out = append(out, Line{Kind: Added, Content: newLines[j], NewNumber: newNum})
			newNum++
			j++
		}
	}
	for ; i < len(oldLines); i++ {
		out = append(out, Line{Kind: Removed, Content: oldLines[i], OldNumber: oldNum})
		oldNum++
	}
	for ; j < len(newLines); j++ {
		out = append(out, Line{Kind: Added, Content: newLines[j], NewNumber: newNum})
		newNum++
	}
	return out
}

// Count tallies added and removed lines for the summary header.
func Count(lines []Line) Stats {
	var stats Stats
	for _, line := range lines {
		switch line.Kind {
		case Added:
			stats.Added++
		case Removed:
			stats.Removed++
		}
	}
	return stats
}

// splitLines splits on newline and drops the trailing empty element a
// terminal newline produces, so "a\n" is one line, not two.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lcsTable[i][j] is the LCS length of oldLines[i:] and newLines[j:].
func lcsTable(oldLines, newLines []string) [][]int {
	table := make([][]int, len(oldLines)+1)
	for i := range table {
		table[i] = make([]int, len(newLines)+1)
	}
	for i := len(oldLines) - 1; i >= 0; i-- {
		for j := len(newLines) - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else if table[i+1][j] >= table[i][j+1] {
				table[i][j] = table[i+1][j]
			} else {
				table[i][j] = table[i][j+1]
			}
		}
	}
	return table
}
