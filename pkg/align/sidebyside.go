package align

// DefaultContextLines is the number of unchanged lines kept around
// each change block when rendering.
const DefaultContextLines = 3

// RowKind classifies one rendered row
type RowKind int

const (
	// RowContext shows an unchanged line on both sides
	RowContext RowKind = iota
	// RowDelete shows a left-only line, right side blank
	RowDelete
	// RowInsert shows a right-only line, left side blank
	RowInsert
	// RowChange shows a changed line on both sides
	RowChange
	// RowElision marks collapsed unchanged lines
	RowElision
)

// Row is one row of the two-column display model. Line numbers are
// 1-based and 0 when the corresponding side is blank.
type Row struct {
	Kind        RowKind
	LeftNumber  int
	RightNumber int
	LeftText    string
	RightText   string

	// HiddenLines is set on RowElision rows
	HiddenLines int
}

// SideBySide renders an alignment into the two-column display model.
// Equal runs longer than 2*context collapse into an elision row with
// context lines kept on either side of the surrounding changes; at
// file start only trailing context is kept and at file end only
// leading context. context < 0 disables elision. Windowing is purely
// presentational: the blocks passed in must cover the full alignment.
func SideBySide(left, right []string, blocks []Block, context int) []Row {
	var rows []Row

	for idx, b := range blocks {
		switch b.Tag {
		case TagEqual:
			rows = append(rows, equalRows(left, b, context, idx == 0, idx == len(blocks)-1)...)

		case TagDelete:
			for i := b.LeftStart; i < b.LeftEnd; i++ {
				rows = append(rows, Row{Kind: RowDelete, LeftNumber: i + 1, LeftText: left[i]})
			}

		case TagInsert:
			for j := b.RightStart; j < b.RightEnd; j++ {
				rows = append(rows, Row{Kind: RowInsert, RightNumber: j + 1, RightText: right[j]})
			}

		case TagReplace:
			nLeft := b.LeftEnd - b.LeftStart
			nRight := b.RightEnd - b.RightStart
			n := nLeft
			if nRight > n {
				n = nRight
			}
			for k := 0; k < n; k++ {
				switch {
				case k < nLeft && k < nRight:
					rows = append(rows, Row{
						Kind:        RowChange,
						LeftNumber:  b.LeftStart + k + 1,
						RightNumber: b.RightStart + k + 1,
						LeftText:    left[b.LeftStart+k],
						RightText:   right[b.RightStart+k],
					})
				case k < nLeft:
					rows = append(rows, Row{Kind: RowDelete, LeftNumber: b.LeftStart + k + 1, LeftText: left[b.LeftStart+k]})
				default:
					rows = append(rows, Row{Kind: RowInsert, RightNumber: b.RightStart + k + 1, RightText: right[b.RightStart+k]})
				}
			}
		}
	}

	return rows
}

// equalRows applies the context window to a single equal run
func equalRows(left []string, b Block, context int, first, last bool) []Row {
	size := b.LeftEnd - b.LeftStart

	full := func() []Row {
		rows := make([]Row, 0, size)
		for k := 0; k < size; k++ {
			rows = append(rows, contextRow(left, b, k))
		}
		return rows
	}

	if context < 0 || (first && last) {
		return full()
	}

	switch {
	case first:
		// Leading context before the first change only
		if size <= context {
			return full()
		}
		rows := []Row{{Kind: RowElision, HiddenLines: size - context}}
		for k := size - context; k < size; k++ {
			rows = append(rows, contextRow(left, b, k))
		}
		return rows

	case last:
		// Trailing context after the last change only
		if size <= context {
			return full()
		}
		rows := make([]Row, 0, context+1)
		for k := 0; k < context; k++ {
			rows = append(rows, contextRow(left, b, k))
		}
		return append(rows, Row{Kind: RowElision, HiddenLines: size - context})

	default:
		if size <= 2*context {
			return full()
		}
		rows := make([]Row, 0, 2*context+1)
		for k := 0; k < context; k++ {
			rows = append(rows, contextRow(left, b, k))
		}
		rows = append(rows, Row{Kind: RowElision, HiddenLines: size - 2*context})
		for k := size - context; k < size; k++ {
			rows = append(rows, contextRow(left, b, k))
		}
		return rows
	}
}

func contextRow(left []string, b Block, k int) Row {
	return Row{
		Kind:        RowContext,
		LeftNumber:  b.LeftStart + k + 1,
		RightNumber: b.RightStart + k + 1,
		LeftText:    left[b.LeftStart+k],
		RightText:   left[b.LeftStart+k],
	}
}
