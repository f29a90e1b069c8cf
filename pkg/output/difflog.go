package output

import (
	"fmt"
	"os"
	"time"

	"github.com/shortdoom/audit-compare/pkg/models"
)

// DefaultDiffLogName names the diff log for a run started at t
func DefaultDiffLogName(t time.Time) string {
	return fmt.Sprintf("audit_compare_%s.log", t.Format("20060102_150405"))
}

// WriteDiffLog appends the run's classification listings and every
// unified edit script to a plain-text log. The file is append-only so
// repeated runs against the same log accumulate an audit trail.
func WriteDiffLog(path string, report *models.Report, entries []DiffEntry) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open diff log: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "==== run %s at %s ====\n", report.RunID, report.StartTime.UTC().Format(time.RFC3339))
	fmt.Fprintf(f, "left:  %s\nright: %s\nstatus: %s\n\n", report.LeftLocator, report.RightLocator, report.Status)

	writeLogSection(f, "identical", pairLefts(report.Result.Identical))
	writeLogSection(f, "only left", report.Result.OnlyLeft)
	writeLogSection(f, "only right", report.Result.OnlyRight)

	if len(report.Result.Failures) > 0 {
		fmt.Fprintf(f, "-- failures (%d) --\n", len(report.Result.Failures))
		for _, failure := range report.Result.Failures {
			fmt.Fprintf(f, "%s: %v\n", failure.Describe(), failure.Err)
		}
		fmt.Fprintln(f)
	}

	for _, e := range entries {
		if e.Undecodable {
			fmt.Fprintf(f, "-- %s | %s: undecodable content --\n\n", e.LeftLabel, e.RightLabel)
			continue
		}
		for _, line := range e.Unified {
			fmt.Fprintln(f, line)
		}
		fmt.Fprintln(f)
	}

	return nil
}

func writeLogSection(f *os.File, title string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(f, "-- %s (%d) --\n", title, len(paths))
	for _, p := range paths {
		fmt.Fprintln(f, p)
	}
	fmt.Fprintln(f)
}
