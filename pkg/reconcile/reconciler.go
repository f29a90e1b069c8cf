// Package reconcile classifies the files of two trees into identical,
// differing, only-left and only-right sets by relative path and
// byte-for-byte content.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/shortdoom/audit-compare/internal/platform"
	"github.com/shortdoom/audit-compare/pkg/logging"
	"github.com/shortdoom/audit-compare/pkg/models"
	"github.com/shortdoom/audit-compare/pkg/ratelimit"
	"github.com/shortdoom/audit-compare/pkg/storage"
)

// Options controls a reconciliation run
type Options struct {
	// Fuzzy enables the same-basename pairing pass across the full
	// file lists of both trees, regardless of directory
	Fuzzy bool

	// Exclude lists path patterns to skip on both sides
	Exclude []string

	// BufferSize is the read chunk size for content comparison
	BufferSize int

	// BandwidthLimit caps comparison read bandwidth in bytes per
	// second; 0 means unlimited
	BandwidthLimit int64
}

// Outcome bundles the classification with scan counters the caller
// folds into run statistics.
type Outcome struct {
	Result       *models.Result
	LeftScanned  int
	RightScanned int
	FuzzyPairs   int
}

// Reconciler compares two trees. It never mutates either side.
type Reconciler struct {
	left   storage.Tree
	right  storage.Tree
	cmp    *comparator
	logger logging.Logger
	opts   Options
}

// New creates a reconciler over the two trees. A nil logger is
// replaced with a null logger.
func New(left, right storage.Tree, logger logging.Logger, opts Options) *Reconciler {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Reconciler{
		left:   left,
		right:  right,
		cmp:    newComparator(opts.BufferSize, ratelimit.NewLimiter(opts.BandwidthLimit)),
		logger: logger,
		opts:   opts,
	}
}

// Reconcile classifies two trees in one call. Callers that need to
// reuse the comparator across runs construct a Reconciler instead.
func Reconcile(ctx context.Context, left, right storage.Tree, logger logging.Logger, opts Options) (*Outcome, error) {
	return New(left, right, logger, opts).Run(ctx)
}

// Run performs the structural pass, the reverse pass and, when
// enabled, the fuzzy pass. Per-pair read failures are collected on
// the result; only listing either tree is fatal.
func (r *Reconciler) Run(ctx context.Context) (*Outcome, error) {
	leftFiles, err := r.left.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list left tree: %w", err)
	}
	rightFiles, err := r.right.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list right tree: %w", err)
	}

	leftFiles = r.filterExcluded(leftFiles)
	rightFiles = r.filterExcluded(rightFiles)

	r.logger.Info(ctx, "trees listed", logging.Fields{
		"left_files":  len(leftFiles),
		"right_files": len(rightFiles),
	})

	rightIndex := make(map[string]bool, len(rightFiles))
	for _, f := range rightFiles {
		rightIndex[f.RelativePath] = true
	}
	leftIndex := make(map[string]bool, len(leftFiles))
	for _, f := range leftFiles {
		leftIndex[f.RelativePath] = true
	}

	result := &models.Result{}

	// Structural pass: same relative path on both sides
	for _, f := range leftFiles {
		if !rightIndex[f.RelativePath] {
			result.OnlyLeft = append(result.OnlyLeft, f.RelativePath)
			continue
		}
		if err := r.classify(ctx, f.RelativePath, result); err != nil {
			return nil, err
		}
	}

	// Reverse pass: paths only the right side has
	for _, f := range rightFiles {
		if !leftIndex[f.RelativePath] {
			result.OnlyRight = append(result.OnlyRight, f.RelativePath)
		}
	}

	outcome := &Outcome{
		Result:       result,
		LeftScanned:  len(leftFiles),
		RightScanned: len(rightFiles),
	}

	if r.opts.Fuzzy {
		outcome.FuzzyPairs = r.fuzzyPass(ctx, leftFiles, rightFiles, result)
	}

	return outcome, nil
}

// classify compares one same-path pair and appends it to the matching
// result set. A file vanishing mid-comparison leaves the surviving
// side as a one-sided entry instead of failing the pair.
func (r *Reconciler) classify(ctx context.Context, relPath string, result *models.Result) error {
	eq, err := r.cmp.equal(ctx, r.left, r.right, relPath, relPath)
	if err == nil {
		pair := models.PathPair{Left: relPath, Right: relPath}
		if eq {
			result.Identical = append(result.Identical, pair)
		} else {
			result.Differing = append(result.Differing, pair)
		}
		return nil
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if errors.Is(err, fs.ErrNotExist) {
		leftThere, _ := r.left.Exists(ctx, relPath)
		rightThere, _ := r.right.Exists(ctx, relPath)
		switch {
		case leftThere && !rightThere:
			r.logger.Warn(ctx, "file vanished from right tree", logging.Fields{"path": relPath})
			result.OnlyLeft = append(result.OnlyLeft, relPath)
			return nil
		case !leftThere && rightThere:
			r.logger.Warn(ctx, "file vanished from left tree", logging.Fields{"path": relPath})
			result.OnlyRight = append(result.OnlyRight, relPath)
			return nil
		case !leftThere && !rightThere:
			r.logger.Warn(ctx, "file vanished from both trees", logging.Fields{"path": relPath})
			return nil
		}
	}

	r.logger.Error(ctx, "pair comparison failed", err, logging.Fields{"path": relPath})
	result.Failures = append(result.Failures, models.ComparisonFailure{
		Left:  relPath,
		Right: relPath,
		Err:   err,
	})
	return nil
}

// fuzzyPass joins the full file lists on basename, compares every
// cross pair, and unions unequal pairs into Differing. Same-path
// pairs are skipped (the structural pass already classified them),
// equal pairs are dropped, and the one-sided sets are left untouched,
// so one file may be reported under several pairings. Returns the
// number of pairs promoted.
func (r *Reconciler) fuzzyPass(ctx context.Context, leftFiles, rightFiles []storage.FileInfo, result *models.Result) int {
	rightByBase := make(map[string][]string)
	for _, f := range rightFiles {
		base := platform.Basename(f.RelativePath)
		rightByBase[base] = append(rightByBase[base], f.RelativePath)
	}

	promoted := 0

	for _, f := range leftFiles {
		leftPath := f.RelativePath
		for _, rightPath := range rightByBase[platform.Basename(leftPath)] {
			if rightPath == leftPath {
				continue
			}
			eq, err := r.cmp.equal(ctx, r.left, r.right, leftPath, rightPath)
			if err != nil {
				if ctx.Err() != nil {
					return promoted
				}
				r.logger.Error(ctx, "fuzzy pair comparison failed", err, logging.Fields{
					"left":  leftPath,
					"right": rightPath,
				})
				result.Failures = append(result.Failures, models.ComparisonFailure{
					Left:  leftPath,
					Right: rightPath,
					Err:   err,
				})
				continue
			}

			if !eq {
				result.Differing = append(result.Differing, models.PathPair{
					Left:  leftPath,
					Right: rightPath,
				})
				promoted++
			}
		}
	}

	return promoted
}

func (r *Reconciler) filterExcluded(files []storage.FileInfo) []storage.FileInfo {
	if len(r.opts.Exclude) == 0 {
		return files
	}
	kept := files[:0]
	for _, f := range files {
		if excluded(f.RelativePath, r.opts.Exclude) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
