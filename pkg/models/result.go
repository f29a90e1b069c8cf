package models

import (
	"sort"
)

// PathPair links a file in the left tree with a file in the right tree.
// Paths are relative to their tree roots, POSIX-style, case-sensitive.
type PathPair struct {
	// Left is the path relative to the left tree root
	Left string `json:"left"`

	// Right is the path relative to the right tree root
	Right string `json:"right"`
}

// ComparisonFailure records a single file pair that could not be read.
// Failed pairs are excluded from all four classification sets and
// surfaced separately so no result is silently wrong.
type ComparisonFailure struct {
	// Left is the path in the left tree ("" if the pair has no left side)
	Left string

	// Right is the path in the right tree ("" if the pair has no right side)
	Right string

	// Err describes why the comparison failed
	Err error
}

// Describe names the failed pair for display
func (f ComparisonFailure) Describe() string {
	switch {
	case f.Left != "" && f.Right != "" && f.Left != f.Right:
		return f.Left + " <-> " + f.Right
	case f.Left != "":
		return f.Left
	default:
		return f.Right
	}
}

// Result classifies every file discovered across two trees.
// A relative path present in both trees lands in exactly one of
// Identical or Differing; a path present in one tree only lands in
// OnlyLeft or OnlyRight. Fuzzy pairs (same basename, different
// location) with unequal content are unioned into Differing in
// addition to the structural classification, so a file may appear in
// Differing more than once under different pairings.
type Result struct {
	// Identical holds pairs with byte-for-byte equal content
	Identical []PathPair

	// Differing holds pairs that both exist but whose content differs
	Differing []PathPair

	// OnlyLeft holds paths present in the left tree only
	OnlyLeft []string

	// OnlyRight holds paths present in the right tree only
	OnlyRight []string

	// Failures holds pairs that could not be compared
	Failures []ComparisonFailure
}

// Sort orders every classification set lexicographically.
// Reconciliation itself only guarantees walk-order stability within a
// single run; callers that need a stable display order sort explicitly.
func (r *Result) Sort() {
	sort.Slice(r.Identical, func(i, j int) bool {
		return lessPair(r.Identical[i], r.Identical[j])
	})
	sort.Slice(r.Differing, func(i, j int) bool {
		return lessPair(r.Differing[i], r.Differing[j])
	})
	sort.Strings(r.OnlyLeft)
	sort.Strings(r.OnlyRight)
	sort.Slice(r.Failures, func(i, j int) bool {
		if r.Failures[i].Left != r.Failures[j].Left {
			return r.Failures[i].Left < r.Failures[j].Left
		}
		return r.Failures[i].Right < r.Failures[j].Right
	})
}

func lessPair(a, b PathPair) bool {
	if a.Left != b.Left {
		return a.Left < b.Left
	}
	return a.Right < b.Right
}
