package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/shortdoom/audit-compare/pkg/models"
)

// jsonReport is the machine-readable view of a run. Failures carry
// the error text rather than the error value so the document stays
// self-contained.
type jsonReport struct {
	RunID        string            `json:"run_id"`
	LeftLocator  string            `json:"left_locator"`
	RightLocator string            `json:"right_locator"`
	Fuzzy        bool              `json:"fuzzy"`
	StartTime    time.Time         `json:"start_time"`
	Duration     string            `json:"duration"`
	Status       models.RunStatus  `json:"status"`
	Stats        models.Statistics `json:"stats"`

	Identical []models.PathPair `json:"identical"`
	Differing []jsonDiff        `json:"differing"`
	OnlyLeft  []string          `json:"only_left"`
	OnlyRight []string          `json:"only_right"`
	Failures  []jsonFailure     `json:"failures"`
}

type jsonDiff struct {
	Left         string   `json:"left"`
	Right        string   `json:"right"`
	FuzzyMatched bool     `json:"fuzzy_matched"`
	Undecodable  bool     `json:"undecodable"`
	Unified      []string `json:"unified,omitempty"`
}

type jsonFailure struct {
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
	Error string `json:"error"`
}

// WriteJSON renders the full report as an indented JSON document
func WriteJSON(w io.Writer, report *models.Report, entries []DiffEntry) error {
	doc := jsonReport{
		RunID:        report.RunID,
		LeftLocator:  report.LeftLocator,
		RightLocator: report.RightLocator,
		Fuzzy:        report.Fuzzy,
		StartTime:    report.StartTime,
		Duration:     report.Duration.String(),
		Status:       report.Status,
		Stats:        report.Stats,
		Identical:    report.Result.Identical,
		OnlyLeft:     report.Result.OnlyLeft,
		OnlyRight:    report.Result.OnlyRight,
	}
	if doc.Identical == nil {
		doc.Identical = []models.PathPair{}
	}
	if doc.OnlyLeft == nil {
		doc.OnlyLeft = []string{}
	}
	if doc.OnlyRight == nil {
		doc.OnlyRight = []string{}
	}

	doc.Differing = make([]jsonDiff, 0, len(entries))
	for _, e := range entries {
		doc.Differing = append(doc.Differing, jsonDiff{
			Left:         e.Pair.Left,
			Right:        e.Pair.Right,
			FuzzyMatched: e.FuzzyMatched(),
			Undecodable:  e.Undecodable,
			Unified:      e.Unified,
		})
	}

	doc.Failures = make([]jsonFailure, 0, len(report.Result.Failures))
	for _, f := range report.Result.Failures {
		doc.Failures = append(doc.Failures, jsonFailure{
			Left:  f.Left,
			Right: f.Right,
			Error: f.Err.Error(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
