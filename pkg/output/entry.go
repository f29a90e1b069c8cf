// Package output renders comparison reports for terminals, JSON
// consumers, HTML review and the append-only diff log.
package output

import (
	"github.com/shortdoom/audit-compare/pkg/align"
	"github.com/shortdoom/audit-compare/pkg/models"
)

// DiffEntry is one differing pair rendered for display
type DiffEntry struct {
	Pair models.PathPair

	// Labels prefix the tree name to the relative path
	LeftLabel  string
	RightLabel string

	// Undecodable pairs carry no rows; they are shown as a
	// placeholder instead of line content
	Undecodable bool

	Rows    []align.Row
	Unified []string
}

// NewDiffEntry renders a decoded pair into its display forms.
// Undecodable content produces a placeholder entry with no rows.
func NewDiffEntry(pair models.PathPair, content models.DiffPair, contextLines int) DiffEntry {
	entry := DiffEntry{
		Pair:        pair,
		LeftLabel:   content.LeftLabel,
		RightLabel:  content.RightLabel,
		Undecodable: content.Undecodable,
	}
	if content.Undecodable {
		return entry
	}

	blocks := align.Align(content.LeftLines, content.RightLines)
	entry.Rows = align.SideBySide(content.LeftLines, content.RightLines, blocks, contextLines)
	entry.Unified = align.Unified(content.LeftLabel, content.RightLabel,
		content.LeftLines, content.RightLines, blocks, contextLines)
	return entry
}

// FuzzyMatched reports whether the entry came from the fuzzy pass.
// Structural pairs always share one relative path.
func (e DiffEntry) FuzzyMatched() bool {
	return e.Pair.Left != e.Pair.Right
}
