package models

import (
	"time"
)

// Report represents the results of a comparison run
type Report struct {
	// Run details
	RunID        string
	LeftLocator  string
	RightLocator string
	LeftPath     string
	RightPath    string
	Fuzzy        bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Classification outcome
	Result *Result

	// Statistics
	Stats Statistics

	// Overall status
	Status RunStatus
}

// Statistics holds comparison run metrics
type Statistics struct {
	// Files enumerated per tree
	LeftFilesScanned  int `json:"left_files_scanned"`
	RightFilesScanned int `json:"right_files_scanned"`

	// Classification counts
	Identical int `json:"identical"`
	Differing int `json:"differing"`
	OnlyLeft  int `json:"only_left"`
	OnlyRight int `json:"only_right"`

	// Fuzzy pairs added to Differing on top of the structural pass
	FuzzyPairs int `json:"fuzzy_pairs"`

	// Differing pairs rendered as a placeholder (non-text content)
	Undecodable int `json:"undecodable"`

	// Pairs that could not be compared or rendered
	Failed int `json:"failed"`
}

// RunStatus represents the overall result of a run
type RunStatus string

const (
	// StatusSuccess indicates every pair was classified and rendered
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates some pairs failed but the run completed
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates the run aborted (e.g. tree unavailable)
	StatusFailed RunStatus = "failed"
)

// ExitCode returns the appropriate exit code for the run status
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}
