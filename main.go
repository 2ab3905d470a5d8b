package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/riadafridishibly/dedupscan/report"
	"github.com/riadafridishibly/dedupscan/scanner"
	"github.com/riadafridishibly/dedupscan/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	excludes    []string
	interval    time.Duration
	sampleEvery int
	hash        string
	useTUI      bool
	theme       string
	logFile     string
	verbose     bool
	showCurrent bool
}

func tempDir() string {
	if runtime.GOOS == "darwin" {
		return "/tmp"
	}
	return os.TempDir()
}

func newLogger(opts *options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	switch {
	case opts.logFile != "":
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(f)
		return logger, f, nil
	case opts.useTUI:
		// The screen belongs to the dashboard.
		f, err := os.CreateTemp(tempDir(), "dedupscan-*.log")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create log file: %w", err)
		}
		fmt.Println("Logfile is being written in:", f.Name())
		logger.SetOutput(f)
		return logger, f, nil
	default:
		logger.SetOutput(os.Stderr)
		return logger, io.NopCloser(os.Stderr), nil
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dedupscan <root>",
		Short: "Find duplicate files by content with live progress",
		Long: `dedupscan walks a directory tree and reports how much of it is duplicated
content. Files are only hashed once another file of the same size shows up.

Symbolic links are never followed. Paths matching any --exclude regular
expression are skipped, directories together with everything below them.
Patterns are matched against absolute paths with symlinks in the root
resolved, so "dedupscan . -e '/build$'" skips ./build while '^\./build'
matches nothing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.excludes, "exclude", "e", nil, "regular expression matched against absolute, symlink-resolved paths to skip (repeatable)")
	flags.DurationVarP(&opts.interval, "interval", "i", report.DefaultInterval, "progress refresh interval")
	flags.IntVar(&opts.sampleEvery, "sample-every", scanner.DefaultSampleEvery, "files between updates of the current path")
	flags.StringVar(&opts.hash, "hash", scanner.HashSHA256, "content hash: sha256 or xxhash")
	flags.BoolVar(&opts.useTUI, "tui", false, "show a full screen dashboard")
	flags.StringVar(&opts.theme, "theme", tui.DefaultConfig().Theme, "dashboard theme")
	flags.StringVar(&opts.logFile, "log-file", "", "write diagnostics to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log skipped symlinks and special files")
	flags.BoolVar(&opts.showCurrent, "show-path", false, "include the sampled current path in each line")

	return cmd
}

func run(root string, opts *options) error {
	filter, err := scanner.NewFilter(opts.excludes)
	if err != nil {
		return err
	}
	hasher, err := scanner.NewHasher(opts.hash)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := scanner.NewScanner(scanner.Config{
		Root:        root,
		Exclude:     filter,
		Hasher:      hasher,
		SampleEvery: opts.sampleEvery,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if opts.useTUI {
		return runTUI(s, opts)
	}

	s.Start()
	line := report.NewLine(os.Stdout)
	line.ShowCurrent = opts.showCurrent
	report.Poll(s, opts.interval, line)
	return s.Err()
}

func runTUI(s *scanner.Scanner, opts *options) error {
	cfg := tui.DefaultConfig()
	cfg.ProgressUpdateFreq = opts.interval
	cfg.Theme = opts.theme

	app, err := tui.NewApp(s.RootPath(), cfg)
	if err != nil {
		return err
	}

	s.Start()
	if err := app.Run(s); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}
	if !app.Finished() {
		fmt.Fprintln(os.Stderr, "Quit before the scan finished; totals are partial.")
		return nil
	}
	return s.Err()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
