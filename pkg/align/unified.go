package align

import (
	"fmt"
)

// Unified renders an alignment as a unified edit script: file
// headers, then one hunk per group of nearby changes with context
// lines of unchanged text around them. context < 0 disables
// windowing and emits a single hunk covering the whole alignment.
// The form is independent of the side-by-side model but derived
// from the same alignment.
func Unified(leftLabel, rightLabel string, left, right []string, blocks []Block, context int) []string {
	groups := groupBlocks(blocks, context)
	if len(groups) == 0 {
		return nil
	}

	out := []string{
		"--- " + leftLabel,
		"+++ " + rightLabel,
	}

	for _, group := range groups {
		first, last := group[0], group[len(group)-1]
		out = append(out, fmt.Sprintf("@@ -%s +%s @@",
			formatRange(first.LeftStart, last.LeftEnd),
			formatRange(first.RightStart, last.RightEnd)))

		for _, b := range group {
			switch b.Tag {
			case TagEqual:
				for i := b.LeftStart; i < b.LeftEnd; i++ {
					out = append(out, " "+left[i])
				}
			case TagReplace, TagDelete:
				for i := b.LeftStart; i < b.LeftEnd; i++ {
					out = append(out, "-"+left[i])
				}
				if b.Tag == TagReplace {
					for j := b.RightStart; j < b.RightEnd; j++ {
						out = append(out, "+"+right[j])
					}
				}
			case TagInsert:
				for j := b.RightStart; j < b.RightEnd; j++ {
					out = append(out, "+"+right[j])
				}
			}
		}
	}

	return out
}

// groupBlocks clamps leading/trailing equal runs to the context size
// and splits the block sequence into hunk groups wherever an equal
// run is longer than twice the context. A negative context skips
// both steps: one group spanning every block, unless the alignment
// is a single equal run with nothing to show.
func groupBlocks(blocks []Block, context int) [][]Block {
	if len(blocks) == 0 {
		return nil
	}

	codes := make([]Block, len(blocks))
	copy(codes, blocks)

	if context < 0 {
		if len(codes) == 1 && codes[0].Tag == TagEqual {
			return nil
		}
		return [][]Block{codes}
	}

	if b := codes[0]; b.Tag == TagEqual {
		if start := b.LeftEnd - context; start > b.LeftStart {
			codes[0].LeftStart = start
			codes[0].RightStart = b.RightEnd - context
		}
	}
	if b := codes[len(codes)-1]; b.Tag == TagEqual {
		if end := b.LeftStart + context; end < b.LeftEnd {
			codes[len(codes)-1].LeftEnd = end
			codes[len(codes)-1].RightEnd = b.RightStart + context
		}
	}

	var groups [][]Block
	var group []Block

	for _, b := range codes {
		if b.Tag == TagEqual && b.LeftEnd-b.LeftStart > 2*context {
			head := b
			head.LeftEnd = b.LeftStart + context
			head.RightEnd = b.RightStart + context
			group = append(group, head)
			groups = append(groups, group)

			group = nil
			b.LeftStart = b.LeftEnd - context
			b.RightStart = b.RightEnd - context
		}
		group = append(group, b)
	}

	if len(group) > 0 && !(len(group) == 1 && group[0].Tag == TagEqual) {
		groups = append(groups, group)
	}

	return groups
}

// formatRange renders a hunk range in unified-diff convention:
// 1-based start, length omitted when it is 1.
func formatRange(start, end int) string {
	length := end - start
	if length == 1 {
		return fmt.Sprintf("%d", start+1)
	}
	if length == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	return fmt.Sprintf("%d,%d", start+1, length)
}
