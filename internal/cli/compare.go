package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shortdoom/audit-compare/pkg/config"
	"github.com/shortdoom/audit-compare/pkg/engine"
	"github.com/shortdoom/audit-compare/pkg/output"
)

// compareFlags holds the compare command's flag values
type compareFlags struct {
	Fuzzy      bool
	Context    int
	Depth      int
	DataDir    string
	Exclude    []string
	Output     string
	Report     string
	DiffLog    string
	NoProgress bool

	LogFile   string
	LogFormat string
	LogLevel  string
}

var cmpFlags compareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <left> <right>",
		Short: "Compare two repositories or directory trees",
		Long: `Compare two trees file by file and show every difference as a
side-by-side line diff. Each locator is either a local directory or a
remote git URL, which is cloned into the data directory first.

Exit codes: 0 every pair classified, 1 some pairs failed, 2 run aborted.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().BoolVar(&cmpFlags.Fuzzy, "fuzzy", false, "pair one-sided files by basename across directories")
	cmd.Flags().IntVar(&cmpFlags.Context, "context", 3, "unchanged lines shown around changes; negative shows everything")
	cmd.Flags().IntVar(&cmpFlags.Depth, "depth", 0, "git clone depth; 0 clones full history")
	cmd.Flags().StringVar(&cmpFlags.DataDir, "data-dir", "", "directory for cloned repositories")
	cmd.Flags().StringSliceVar(&cmpFlags.Exclude, "exclude", nil, "glob patterns to skip on both sides")
	cmd.Flags().StringVarP(&cmpFlags.Output, "output", "o", "", "terminal output format: human, json")
	cmd.Flags().StringVar(&cmpFlags.Report, "report", "", "write an HTML review report to this file")
	cmd.Flags().StringVar(&cmpFlags.DiffLog, "diff-log", "", "append unified diffs to this log file")
	cmd.Flags().BoolVar(&cmpFlags.NoProgress, "no-progress", false, "disable the progress bar")

	cmd.Flags().StringVar(&cmpFlags.LogFile, "log-file", "", "write a run log to this file")
	cmd.Flags().StringVar(&cmpFlags.LogFormat, "log-format", "", "run log format: text, json")
	cmd.Flags().StringVar(&cmpFlags.LogLevel, "log-level", "", "run log level: debug, info, warning, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCompareFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	report, entries, runErr := engine.New(cfg, logger).Run(ctx, args[0], args[1])
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		logger.Close()
		os.Exit(report.Status.ExitCode())
	}

	switch cfg.Output.Format {
	case config.FormatJSON:
		err = output.WriteJSON(os.Stdout, report, entries)
	default:
		err = output.WriteHuman(os.Stdout, report, entries, cfg.Output.Quiet)
	}
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	if cmpFlags.Report != "" {
		if err := output.SaveHTML(cmpFlags.Report, report, entries); err != nil {
			return err
		}
	}
	if cmpFlags.DiffLog != "" {
		if err := output.WriteDiffLog(cmpFlags.DiffLog, report, entries); err != nil {
			return err
		}
	}

	logger.Close()
	os.Exit(report.Status.ExitCode())
	return nil
}

// applyCompareFlags overlays explicitly set flags onto the loaded
// configuration so flags win over the file.
func applyCompareFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("fuzzy") {
		cfg.Compare.Fuzzy = cmpFlags.Fuzzy
	}
	if cmd.Flags().Changed("context") {
		cfg.Compare.ContextLines = cmpFlags.Context
	}
	if cmd.Flags().Changed("depth") {
		cfg.Fetch.Depth = cmpFlags.Depth
	}
	if cmpFlags.DataDir != "" {
		cfg.Fetch.DataDir = cmpFlags.DataDir
	}
	if len(cmpFlags.Exclude) > 0 {
		cfg.Compare.Exclude = append(cfg.Compare.Exclude, cmpFlags.Exclude...)
	}
	if cmpFlags.Output != "" {
		cfg.Output.Format = config.OutputFormat(cmpFlags.Output)
	}
	if cmpFlags.NoProgress {
		cfg.Output.Progress = false
	}
	if globalFlags.Quiet {
		cfg.Output.Quiet = true
	}

	if cmpFlags.LogFile != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.File = cmpFlags.LogFile
	}
	if cmpFlags.LogFormat != "" {
		cfg.Logging.Format = cmpFlags.LogFormat
	}
	if cmpFlags.LogLevel != "" {
		cfg.Logging.Level = cmpFlags.LogLevel
	}

	// JSON output owns stdout; keep the bar off stderr too so piped
	// runs stay clean
	if cfg.Output.Format == config.FormatJSON {
		cfg.Output.Progress = false
	}
}
