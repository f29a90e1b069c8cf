package align

import (
	"reflect"
	"strings"
	"testing"
)

func TestAlignSimpleReplace(t *testing.T) {
	left := []string{"a", "b", "c"}
	right := []string{"a", "x", "c"}

	blocks := Align(left, right)

	expected := []Block{
		{Tag: TagEqual, LeftStart: 0, LeftEnd: 1, RightStart: 0, RightEnd: 1},
		{Tag: TagReplace, LeftStart: 1, LeftEnd: 2, RightStart: 1, RightEnd: 2},
		{Tag: TagEqual, LeftStart: 2, LeftEnd: 3, RightStart: 2, RightEnd: 3},
	}
	if !reflect.DeepEqual(blocks, expected) {
		t.Errorf("Align() = %+v, want %+v", blocks, expected)
	}
}

func TestAlignIdentical(t *testing.T) {
	lines := []string{"package main", "", "func main() {}"}

	blocks := Align(lines, lines)

	expected := []Block{{Tag: TagEqual, LeftEnd: 3, RightEnd: 3}}
	if !reflect.DeepEqual(blocks, expected) {
		t.Errorf("Align() = %+v, want single equal block %+v", blocks, expected)
	}
}

func TestAlignEmptyInputs(t *testing.T) {
	t.Run("both empty", func(t *testing.T) {
		if blocks := Align(nil, nil); len(blocks) != 0 {
			t.Errorf("Align(nil, nil) = %+v, want no blocks", blocks)
		}
	})

	t.Run("empty left", func(t *testing.T) {
		blocks := Align(nil, []string{"a", "b"})
		expected := []Block{{Tag: TagInsert, RightEnd: 2}}
		if !reflect.DeepEqual(blocks, expected) {
			t.Errorf("Align() = %+v, want %+v", blocks, expected)
		}
	})

	t.Run("empty right", func(t *testing.T) {
		blocks := Align([]string{"a", "b"}, nil)
		expected := []Block{{Tag: TagDelete, LeftEnd: 2}}
		if !reflect.DeepEqual(blocks, expected) {
			t.Errorf("Align() = %+v, want %+v", blocks, expected)
		}
	})
}

func TestAlignInsertDelete(t *testing.T) {
	left := []string{"a", "b", "c", "d"}
	right := []string{"a", "c", "d", "e"}

	blocks := Align(left, right)

	expected := []Block{
		{Tag: TagEqual, LeftStart: 0, LeftEnd: 1, RightStart: 0, RightEnd: 1},
		{Tag: TagDelete, LeftStart: 1, LeftEnd: 2, RightStart: 1, RightEnd: 1},
		{Tag: TagEqual, LeftStart: 2, LeftEnd: 4, RightStart: 1, RightEnd: 3},
		{Tag: TagInsert, LeftStart: 4, LeftEnd: 4, RightStart: 3, RightEnd: 4},
	}
	if !reflect.DeepEqual(blocks, expected) {
		t.Errorf("Align() = %+v, want %+v", blocks, expected)
	}
}

func TestAlignLeftmostTieBreak(t *testing.T) {
	// "x" matches at right index 0 and 2; the earliest must win
	left := []string{"x"}
	right := []string{"x", "y", "x"}

	blocks := Align(left, right)
	if len(blocks) == 0 || blocks[0].Tag != TagEqual || blocks[0].RightStart != 0 {
		t.Errorf("Align() = %+v, want first block equal at right index 0", blocks)
	}
}

// Concatenating block extents must reconstruct both inputs exactly.
func TestAlignRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		left  string
		right string
	}{
		{"replace", "a\nb\nc", "a\nx\nc"},
		{"disjoint", "one\ntwo\nthree", "four\nfive"},
		{"shared tail", "x\ny\nz\nend", "p\nq\nz\nend"},
		{"repeated lines", "a\na\nb\na", "a\nb\na\na"},
		{"interleaved", "h1\nbody\nh2\nbody\nh3", "h1\nh2\nbody\nh3\nbody"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			left := strings.Split(tc.left, "\n")
			right := strings.Split(tc.right, "\n")
			blocks := Align(left, right)

			var rebuiltLeft, rebuiltRight []string
			nextLeft, nextRight := 0, 0
			for _, b := range blocks {
				if b.LeftStart != nextLeft || b.RightStart != nextRight {
					t.Fatalf("block %+v does not continue from (%d,%d)", b, nextLeft, nextRight)
				}
				rebuiltLeft = append(rebuiltLeft, left[b.LeftStart:b.LeftEnd]...)
				rebuiltRight = append(rebuiltRight, right[b.RightStart:b.RightEnd]...)
				nextLeft, nextRight = b.LeftEnd, b.RightEnd
			}
			if nextLeft != len(left) || nextRight != len(right) {
				t.Fatalf("blocks cover (%d,%d) lines, want (%d,%d)", nextLeft, nextRight, len(left), len(right))
			}

			if !reflect.DeepEqual(rebuiltLeft, left) {
				t.Errorf("left reconstruction = %v, want %v", rebuiltLeft, left)
			}
			if !reflect.DeepEqual(rebuiltRight, right) {
				t.Errorf("right reconstruction = %v, want %v", rebuiltRight, right)
			}
		})
	}
}

func TestDecodeLines(t *testing.T) {
	t.Run("text with trailing newline", func(t *testing.T) {
		lines, ok := DecodeLines([]byte("a\nb\nc\n"))
		if !ok {
			t.Fatal("DecodeLines() ok = false, want true")
		}
		if !reflect.DeepEqual(lines, []string{"a", "b", "c"}) {
			t.Errorf("DecodeLines() = %v, want [a b c]", lines)
		}
	})

	t.Run("no trailing newline", func(t *testing.T) {
		lines, ok := DecodeLines([]byte("a\nb"))
		if !ok || !reflect.DeepEqual(lines, []string{"a", "b"}) {
			t.Errorf("DecodeLines() = %v, %v", lines, ok)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		lines, ok := DecodeLines(nil)
		if !ok || len(lines) != 0 {
			t.Errorf("DecodeLines(nil) = %v, %v, want empty and ok", lines, ok)
		}
	})

	t.Run("invalid utf8", func(t *testing.T) {
		if _, ok := DecodeLines([]byte{0xff, 0xfe, 'a'}); ok {
			t.Error("invalid UTF-8 should not decode")
		}
	})

	t.Run("embedded nul", func(t *testing.T) {
		if _, ok := DecodeLines([]byte("ELF\x00binary")); ok {
			t.Error("content with NUL bytes should not decode")
		}
	})
}
