// Package align computes line-level alignments between two ordered
// line sequences and renders them as side-by-side rows or unified
// edit scripts. Alignment is by longest matching blocks at line
// granularity; ties are broken toward the start of the remaining
// unmatched region so output is deterministic.
package align

import (
	"sort"
)

// Tag classifies a contiguous alignment block
type Tag string

const (
	// TagEqual marks lines present on both sides
	TagEqual Tag = "equal"
	// TagInsert marks lines present on the right side only
	TagInsert Tag = "insert"
	// TagDelete marks lines present on the left side only
	TagDelete Tag = "delete"
	// TagReplace marks a run where both sides changed
	TagReplace Tag = "replace"
)

// Block is one contiguous run of the alignment. It covers the
// half-open ranges [LeftStart,LeftEnd) and [RightStart,RightEnd) of
// the two input sequences. Concatenating the left extents of an
// alignment reconstructs the left input exactly; same for the right.
type Block struct {
	Tag        Tag
	LeftStart  int
	LeftEnd    int
	RightStart int
	RightEnd   int
}

// Align produces the ordered block sequence aligning left with right.
// Identical inputs yield a single equal block spanning everything;
// two empty inputs yield no blocks.
func Align(left, right []string) []Block {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}
	if equalSeq(left, right) {
		// Reconciliation only hands us pairs known to differ, so the
		// matching algorithm is skipped for identical input.
		return []Block{{Tag: TagEqual, LeftEnd: len(left), RightEnd: len(right)}}
	}
	if len(left) == 0 {
		return []Block{{Tag: TagInsert, RightEnd: len(right)}}
	}
	if len(right) == 0 {
		return []Block{{Tag: TagDelete, LeftEnd: len(left)}}
	}

	m := newMatcher(left, right)
	return m.blocks()
}

func equalSeq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type matcher struct {
	a, b []string
	b2j  map[string][]int
}

func newMatcher(a, b []string) *matcher {
	b2j := make(map[string][]int)
	for j, line := range b {
		b2j[line] = append(b2j[line], j)
	}
	return &matcher{a: a, b: b, b2j: b2j}
}

type span struct {
	a, b, size int
}

// findLongestMatch returns the longest matching run within
// a[alo:ahi] x b[blo:bhi]. Among equally long runs it prefers the one
// starting earliest in a, then earliest in b (leftmost-longest).
func (m *matcher) findLongestMatch(alo, ahi, blo, bhi int) span {
	besti, bestj, bestsize := alo, blo, 0
	j2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}

	return span{a: besti, b: bestj, size: bestsize}
}

// matchingSpans returns all maximal matching runs in order, with a
// zero-size sentinel at the end.
func (m *matcher) matchingSpans() []span {
	type region struct {
		alo, ahi, blo, bhi int
	}

	queue := []region{{0, len(m.a), 0, len(m.b)}}
	var matched []span

	for len(queue) > 0 {
		r := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		s := m.findLongestMatch(r.alo, r.ahi, r.blo, r.bhi)
		if s.size == 0 {
			continue
		}
		matched = append(matched, s)
		if r.alo < s.a && r.blo < s.b {
			queue = append(queue, region{r.alo, s.a, r.blo, s.b})
		}
		if s.a+s.size < r.ahi && s.b+s.size < r.bhi {
			queue = append(queue, region{s.a + s.size, r.ahi, s.b + s.size, r.bhi})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].a != matched[j].a {
			return matched[i].a < matched[j].a
		}
		return matched[i].b < matched[j].b
	})

	// Merge adjacent runs into maximal ones
	var merged []span
	for _, s := range matched {
		if n := len(merged); n > 0 &&
			merged[n-1].a+merged[n-1].size == s.a &&
			merged[n-1].b+merged[n-1].size == s.b {
			merged[n-1].size += s.size
			continue
		}
		merged = append(merged, s)
	}

	return append(merged, span{a: len(m.a), b: len(m.b)})
}

// blocks converts the matching runs into tagged change blocks
func (m *matcher) blocks() []Block {
	var out []Block
	i, j := 0, 0

	for _, s := range m.matchingSpans() {
		switch {
		case i < s.a && j < s.b:
			out = append(out, Block{Tag: TagReplace, LeftStart: i, LeftEnd: s.a, RightStart: j, RightEnd: s.b})
		case i < s.a:
			out = append(out, Block{Tag: TagDelete, LeftStart: i, LeftEnd: s.a, RightStart: j, RightEnd: j})
		case j < s.b:
			out = append(out, Block{Tag: TagInsert, LeftStart: i, LeftEnd: i, RightStart: j, RightEnd: s.b})
		}
		if s.size > 0 {
			out = append(out, Block{Tag: TagEqual, LeftStart: s.a, LeftEnd: s.a + s.size, RightStart: s.b, RightEnd: s.b + s.size})
		}
		i, j = s.a+s.size, s.b+s.size
	}

	return out
}
