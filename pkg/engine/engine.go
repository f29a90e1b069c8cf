// Package engine runs a full comparison: materialize both trees,
// reconcile them, and render each differing pair as an aligned diff.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/shortdoom/audit-compare/internal/platform"
	"github.com/shortdoom/audit-compare/pkg/align"
	"github.com/shortdoom/audit-compare/pkg/config"
	"github.com/shortdoom/audit-compare/pkg/fetch"
	"github.com/shortdoom/audit-compare/pkg/logging"
	"github.com/shortdoom/audit-compare/pkg/models"
	"github.com/shortdoom/audit-compare/pkg/output"
	"github.com/shortdoom/audit-compare/pkg/reconcile"
	"github.com/shortdoom/audit-compare/pkg/storage"
)

// Engine executes comparison runs under one configuration
type Engine struct {
	cfg    *config.Config
	logger logging.Logger
}

// New creates an engine. A nil logger disables logging.
func New(cfg *config.Config, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Run compares the two locators and returns the report plus the
// rendered diff entries. The report is returned even on failure so
// callers can surface run identity and status.
func (e *Engine) Run(ctx context.Context, leftLocator, rightLocator string) (*models.Report, []output.DiffEntry, error) {
	report := &models.Report{
		RunID:        uuid.New().String(),
		LeftLocator:  leftLocator,
		RightLocator: rightLocator,
		Fuzzy:        e.cfg.Compare.Fuzzy,
		StartTime:    time.Now(),
		Status:       models.StatusFailed,
	}
	logger := e.logger.WithFields(logging.Fields{"run_id": report.RunID})

	logger.Info(ctx, "comparison started", logging.Fields{
		"left":  leftLocator,
		"right": rightLocator,
		"fuzzy": e.cfg.Compare.Fuzzy,
	})

	fetchOpts := fetch.Options{DataDir: e.cfg.Fetch.DataDir, Depth: e.cfg.Fetch.Depth}

	leftPath, err := fetch.NewProvider(leftLocator, fetchOpts, logger).Fetch(ctx, leftLocator)
	if err != nil {
		return e.finish(ctx, logger, report), nil, err
	}
	report.LeftPath = leftPath

	rightPath, err := fetch.NewProvider(rightLocator, fetchOpts, logger).Fetch(ctx, rightLocator)
	if err != nil {
		return e.finish(ctx, logger, report), nil, err
	}
	report.RightPath = rightPath

	left, err := storage.NewLocal(leftPath)
	if err != nil {
		return e.finish(ctx, logger, report), nil, fmt.Errorf("open left tree: %w", err)
	}
	defer left.Close()

	right, err := storage.NewLocal(rightPath)
	if err != nil {
		return e.finish(ctx, logger, report), nil, fmt.Errorf("open right tree: %w", err)
	}
	defer right.Close()

	outcome, err := reconcile.Reconcile(ctx, left, right, logger, reconcile.Options{
		Fuzzy:          e.cfg.Compare.Fuzzy,
		Exclude:        e.cfg.Compare.Exclude,
		BufferSize:     e.cfg.Compare.BufferSize,
		BandwidthLimit: e.cfg.Compare.BandwidthLimit,
	})
	if err != nil {
		return e.finish(ctx, logger, report), nil, err
	}

	result := outcome.Result
	result.Sort()
	report.Result = result

	entries := e.renderDiffs(ctx, logger, left, right, result)

	report.Stats = models.Statistics{
		LeftFilesScanned:  outcome.LeftScanned,
		RightFilesScanned: outcome.RightScanned,
		Identical:         len(result.Identical),
		Differing:         len(result.Differing),
		OnlyLeft:          len(result.OnlyLeft),
		OnlyRight:         len(result.OnlyRight),
		FuzzyPairs:        outcome.FuzzyPairs,
		Failed:            len(result.Failures),
	}
	for _, entry := range entries {
		if entry.Undecodable {
			report.Stats.Undecodable++
		}
	}

	if len(result.Failures) > 0 {
		report.Status = models.StatusPartial
	} else {
		report.Status = models.StatusSuccess
	}

	return e.finish(ctx, logger, report), entries, nil
}

// renderDiffs aligns every differing pair. Pairs whose content cannot
// be read anymore move to Failures; non-text pairs stay Differing but
// carry no rows.
func (e *Engine) renderDiffs(ctx context.Context, logger logging.Logger, left, right storage.Tree, result *models.Result) []output.DiffEntry {
	leftName := platform.RepoName(left.Root())
	rightName := platform.RepoName(right.Root())
	contextLines := e.cfg.Compare.ContextLines

	progress := output.NewProgress(len(result.Differing), e.cfg.Output.Progress)
	defer progress.Finish()

	var entries []output.DiffEntry
	kept := result.Differing[:0]

	for _, pair := range result.Differing {
		entry, err := renderPair(ctx, left, right, pair, leftName, rightName, contextLines)
		progress.Increment()
		if err != nil {
			logger.Error(ctx, "diff rendering failed", err, logging.Fields{
				"left":  pair.Left,
				"right": pair.Right,
			})
			result.Failures = append(result.Failures, models.ComparisonFailure{
				Left:  pair.Left,
				Right: pair.Right,
				Err:   err,
			})
			continue
		}
		kept = append(kept, pair)
		entries = append(entries, entry)
	}
	result.Differing = kept

	return entries
}

func renderPair(ctx context.Context, left, right storage.Tree, pair models.PathPair, leftName, rightName string, contextLines int) (output.DiffEntry, error) {
	content := models.DiffPair{
		LeftLabel:  leftName + "/" + pair.Left,
		RightLabel: rightName + "/" + pair.Right,
	}

	leftData, err := readAll(ctx, left, pair.Left)
	if err != nil {
		return output.DiffEntry{}, fmt.Errorf("read %s: %w", pair.Left, err)
	}
	rightData, err := readAll(ctx, right, pair.Right)
	if err != nil {
		return output.DiffEntry{}, fmt.Errorf("read %s: %w", pair.Right, err)
	}

	leftLines, leftOK := align.DecodeLines(leftData)
	rightLines, rightOK := align.DecodeLines(rightData)
	if !leftOK || !rightOK {
		content.Undecodable = true
	} else {
		content.LeftLines = leftLines
		content.RightLines = rightLines
	}

	return output.NewDiffEntry(pair, content, contextLines), nil
}

func readAll(ctx context.Context, tree storage.Tree, relPath string) ([]byte, error) {
	rc, err := tree.Read(ctx, relPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (e *Engine) finish(ctx context.Context, logger logging.Logger, report *models.Report) *models.Report {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	if report.Result == nil {
		report.Result = &models.Result{}
	}

	logger.Info(ctx, "comparison finished", logging.Fields{
		"status":    string(report.Status),
		"duration":  report.Duration.String(),
		"identical": report.Stats.Identical,
		"differing": report.Stats.Differing,
	})
	return report
}
