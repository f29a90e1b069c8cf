package output

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/shortdoom/audit-compare/pkg/align"
	"github.com/shortdoom/audit-compare/pkg/models"
)

const sideWidth = 60

// WriteHuman renders the terminal report: run summary, the four
// classification sections, and a side-by-side diff per differing
// pair. Quiet mode keeps only the summary and the diffs.
func WriteHuman(w io.Writer, report *models.Report, entries []DiffEntry, quiet bool) error {
	fmt.Fprintf(w, "Comparison %s\n", report.RunID)
	fmt.Fprintf(w, "  left:  %s\n", report.LeftLocator)
	fmt.Fprintf(w, "  right: %s\n", report.RightLocator)
	fmt.Fprintf(w, "  duration: %s\n\n", report.Duration.Round(time.Millisecond))

	s := report.Stats
	fmt.Fprintf(w, "Scanned %d left / %d right files\n", s.LeftFilesScanned, s.RightFilesScanned)
	fmt.Fprintf(w, "  identical: %d   differing: %d   only left: %d   only right: %d\n",
		s.Identical, s.Differing, s.OnlyLeft, s.OnlyRight)
	if s.FuzzyPairs > 0 {
		fmt.Fprintf(w, "  fuzzy-matched pairs: %d\n", s.FuzzyPairs)
	}
	if s.Failed > 0 {
		fmt.Fprintf(w, "  failed: %d\n", s.Failed)
	}
	fmt.Fprintln(w)

	if !quiet {
		writeSection(w, "Identical files", pairLefts(report.Result.Identical))
		writeSection(w, "Only in left tree", report.Result.OnlyLeft)
		writeSection(w, "Only in right tree", report.Result.OnlyRight)
		writeFailures(w, report.Result.Failures)
	}

	for _, entry := range entries {
		writeEntry(w, entry)
	}

	return nil
}

func writeSection(w io.Writer, title string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", title, len(paths))
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", p)
	}
	fmt.Fprintln(w)
}

func writeFailures(w io.Writer, failures []models.ComparisonFailure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "Failures (%d):\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "  %s: %v\n", f.Describe(), f.Err)
	}
	fmt.Fprintln(w)
}

func writeEntry(w io.Writer, entry DiffEntry) {
	fmt.Fprintf(w, "=== %s | %s ===\n", entry.LeftLabel, entry.RightLabel)
	if entry.Undecodable {
		fmt.Fprintln(w, "  (binary or undecodable content, no line diff)")
		fmt.Fprintln(w)
		return
	}
	for _, row := range entry.Rows {
		fmt.Fprintln(w, formatRow(row))
	}
	fmt.Fprintln(w)
}

// formatRow lays out one side-by-side row with line number gutters
// and a change marker between the columns.
func formatRow(row align.Row) string {
	if row.Kind == align.RowElision {
		return fmt.Sprintf("     ... %d unchanged lines ...", row.HiddenLines)
	}

	marker := " "
	switch row.Kind {
	case align.RowChange:
		marker = "|"
	case align.RowDelete:
		marker = "<"
	case align.RowInsert:
		marker = ">"
	}

	return fmt.Sprintf("%s %s %s %s",
		gutter(row.LeftNumber), pad(row.LeftText),
		marker,
		gutter(row.RightNumber)+" "+row.RightText)
}

func gutter(n int) string {
	if n == 0 {
		return "    "
	}
	return fmt.Sprintf("%4d", n)
}

// pad fits the left column to sideWidth display cells, truncating on
// rune boundaries so multibyte text is never cut mid-sequence.
func pad(s string) string {
	return runewidth.FillRight(runewidth.Truncate(s, sideWidth, ""), sideWidth)
}

func pairLefts(pairs []models.PathPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Left
	}
	return out
}
