package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/ndjsonv"
	"github.com/reoring/ndjsonv/internal/report"
)

type settings struct {
	configPath   string
	backend      string
	workers      int
	policy       string
	blankLines   string
	maxDepth     int
	maxLineBytes int
	rejectDup    bool
	format       string
	maxShown     int
	logLevel     string

	clean     bool
	outputDir string
	exclude   []string
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:           "ndjsonv",
		Short:         "Validate and clean newline-delimited JSON files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&s.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&s.backend, "backend", ndjsonv.DriverStandard, "JSON backend (see 'ndjsonv backends')")
	pf.IntVar(&s.workers, "workers", 1, "files to process concurrently")
	pf.StringVar(&s.policy, "policy", "fail-fast", "on unreadable files: fail-fast or best-effort")
	pf.StringVar(&s.blankLines, "blank-lines", "invalid", "blank lines are invalid or skip")
	pf.IntVar(&s.maxDepth, "max-depth", 0, "reject lines nested deeper than this (0 = unlimited)")
	pf.IntVar(&s.maxLineBytes, "max-line-bytes", 0, "reject lines longer than this (0 = unlimited)")
	pf.BoolVar(&s.rejectDup, "reject-duplicate-keys", false, "reject objects with repeated keys")
	pf.StringVar(&s.format, "format", "text", "report format: text or json")
	pf.IntVar(&s.maxShown, "max-shown", report.DefaultMaxShown, "error details to print in text mode (-1 = all)")
	pf.StringVar(&s.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newValidateFileCmd(s),
		newValidateFilesCmd(s),
		newValidateDirCmd(s),
		newBackendsCmd(),
	)
	return root
}

func addCleanFlags(cmd *cobra.Command, s *settings) {
	cmd.Flags().BoolVarP(&s.clean, "clean", "c", false, "write cleaned copies without the invalid lines")
	cmd.Flags().StringVarP(&s.outputDir, "output-dir", "o", "", "directory for cleaned files (required with --clean)")
}

func newValidateFileCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-file <path>",
		Short: "Validate a single NDJSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, s, args, "")
		},
	}
	addCleanFlags(cmd, s)
	return cmd
}

func newValidateFilesCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-files <path>...",
		Short: "Validate several NDJSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, s, args, "")
		},
	}
	addCleanFlags(cmd, s)
	return cmd
}

func newValidateDirCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-dir <dir>",
		Short: "Validate every .ndjson, .jsonl and .nd.json file in a directory",
		Long: `The validate-dir command validates the NDJSON files directly inside a
directory. Subdirectories are not searched. Use --exclude with gitignore-style
patterns to leave files out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, s, nil, args[0])
		},
	}
	addCleanFlags(cmd, s)
	cmd.Flags().StringArrayVar(&s.exclude, "exclude", nil, "gitignore-style pattern of files to skip (repeatable)")
	return cmd
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the available JSON backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range ndjsonv.DriverNames() {
				d, err := ndjsonv.SelectDriver(name)
				if err != nil {
					return err
				}
				if d.Name() == name {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (alias of %s)\n", name, d.Name())
				}
			}
			return nil
		},
	}
}

// execute validates files, or the files found in dir when dir is set.
func execute(cmd *cobra.Command, s *settings, files []string, dir string) error {
	cfg, err := s.resolve(cmd)
	if err != nil {
		return err
	}
	if s.format != "text" && s.format != "json" {
		return &ndjsonv.ConfigError{Field: "format", Value: s.format, Err: errors.New("want text or json")}
	}
	outputDir := ""
	if s.clean {
		if cfg.OutputDir == "" {
			return &ndjsonv.ConfigError{Field: "output-dir", Err: errors.New("required with --clean")}
		}
		outputDir = cfg.OutputDir
	}

	// backend and options are checked before any file is touched
	d, err := cfg.Driver()
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, s.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	opt, err := cfg.Options(log)
	if err != nil {
		return err
	}

	start := time.Now()
	var res *ndjsonv.BatchResult
	if dir != "" {
		res, err = ndjsonv.ValidateDir(cmd.Context(), dir, outputDir, cfg.Exclude, d, opt)
	} else {
		res, err = ndjsonv.Run(cmd.Context(), files, outputDir, d, opt)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	if s.format == "json" {
		err = report.JSON(out, res)
	} else {
		err = report.Text(out, res, report.TextOptions{MaxShown: s.maxShown, Elapsed: elapsed})
	}
	if err != nil {
		return err
	}
	if !ndjsonv.Summarize(res).OK() {
		return errInvalid
	}
	return nil
}

// resolve layers explicitly set flags over the configuration file.
func (s *settings) resolve(cmd *cobra.Command) (ndjsonv.Config, error) {
	cfg := ndjsonv.DefaultConfig()
	if s.configPath != "" {
		var err error
		if cfg, err = ndjsonv.LoadConfig(s.configPath); err != nil {
			return ndjsonv.Config{}, err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("backend") {
		cfg.Backend = s.backend
	}
	if fl.Changed("workers") {
		cfg.Workers = s.workers
	}
	if fl.Changed("policy") {
		p, err := ndjsonv.ParseBatchPolicy(s.policy)
		if err != nil {
			return ndjsonv.Config{}, err
		}
		cfg.Policy = p
	}
	if fl.Changed("blank-lines") {
		p, err := ndjsonv.ParseBlankLinePolicy(s.blankLines)
		if err != nil {
			return ndjsonv.Config{}, err
		}
		cfg.BlankLines = p
	}
	if fl.Changed("max-depth") {
		cfg.Limits.MaxDepth = s.maxDepth
	}
	if fl.Changed("max-line-bytes") {
		cfg.Limits.MaxLineBytes = s.maxLineBytes
	}
	if fl.Changed("reject-duplicate-keys") {
		cfg.Limits.RejectDuplicateKeys = s.rejectDup
	}
	if fl.Changed("output-dir") {
		cfg.OutputDir = s.outputDir
	}
	if fl.Changed("exclude") {
		cfg.Exclude = s.exclude
	}
	return cfg, nil
}

// newLogger writes human-readable logs to the command's stderr.
func newLogger(cmd *cobra.Command, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, &ndjsonv.ConfigError{Field: "log-level", Value: level, Err: err}
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(cmd.ErrOrStderr()), lvl)
	return zap.New(core), nil
}
