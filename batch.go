package ndjsonv

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchResult aggregates a batch. CleanedFiles and Files are positional:
// entry i always belongs to input i. Errors are ordered by input, then by
// line number.
type BatchResult struct {
	CleanedFiles []string     `json:"cleaned_files"`
	Errors       Entries      `json:"errors"`
	Files        []FileReport `json:"files"`
	// Failures lists files skipped under BestEffort. Their CleanedFiles
	// slot is empty.
	Failures []*FileError `json:"-"`
}

// Run cleans every input into outputDir in input order. An empty outputDir
// validates without writing. Under FailFast the first failing file aborts
// the batch and no result is returned.
func Run(ctx context.Context, inputs []string, outputDir string, d JSONDriver, opt Options) (*BatchResult, error) {
	if d == nil {
		return nil, &ConfigError{Field: "backend", Err: ErrUnknownDriver}
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if outputDir != "" {
		if err := checkOutputs(inputs, outputDir); err != nil {
			return nil, err
		}
		if err := ensureDir(outputDir); err != nil {
			return nil, err
		}
	}

	log := opt.logger().With(zap.String("backend", d.Name()))
	reports := make([]FileReport, len(inputs))
	errs := make([]error, len(inputs))

	var err error
	if opt.Workers > 1 && len(inputs) > 1 {
		err = runParallel(ctx, inputs, outputDir, d, opt, reports, errs)
	} else {
		err = runSequential(ctx, inputs, outputDir, d, opt, reports, errs)
	}
	if err != nil {
		log.Debug("batch aborted", zap.Error(err))
		return nil, err
	}

	res := &BatchResult{
		CleanedFiles: make([]string, len(inputs)),
		Errors:       Entries{},
		Files:        make([]FileReport, len(inputs)),
	}
	for i, in := range inputs {
		if errs[i] != nil {
			res.Failures = append(res.Failures, asFileError(in, errs[i]))
			res.Files[i] = FileReport{Input: in, Errors: Entries{}}
			log.Warn("file skipped", zap.String("input", in), zap.Error(errs[i]))
			continue
		}
		rep := reports[i]
		res.Files[i] = rep
		res.CleanedFiles[i] = rep.Output
		res.Errors = append(res.Errors, rep.Errors...)
		log.Debug("file processed",
			zap.String("input", in),
			zap.String("output", rep.Output),
			zap.Int("lines", rep.Lines),
			zap.Int("valid", rep.Valid),
			zap.Int("errors", len(rep.Errors)),
		)
	}
	log.Info("batch complete",
		zap.Int("files", len(inputs)),
		zap.Int("errors", len(res.Errors)),
		zap.Int("failures", len(res.Failures)),
	)
	return res, nil
}

// ValidateFiles classifies every input without writing cleaned files.
func ValidateFiles(ctx context.Context, inputs []string, d JSONDriver, opt Options) (*BatchResult, error) {
	return Run(ctx, inputs, "", d, opt)
}

func runSequential(ctx context.Context, inputs []string, outputDir string, d JSONDriver, opt Options, reports []FileReport, errs []error) error {
	for i, in := range inputs {
		rep, err := cleanFile(ctx, in, outputDir, d, opt)
		if err != nil {
			if opt.Policy == FailFast || isContextErr(err) {
				return err
			}
			errs[i] = err
			continue
		}
		reports[i] = rep
	}
	return nil
}

// runParallel writes each result into its input's slot, so completion order
// never leaks into the aggregate.
func runParallel(ctx context.Context, inputs []string, outputDir string, d JSONDriver, opt Options, reports []FileReport, errs []error) error {
	// best-effort failures must not cancel siblings
	g, gctx := &errgroup.Group{}, ctx
	if opt.Policy == FailFast {
		g, gctx = errgroup.WithContext(ctx)
	}
	g.SetLimit(opt.Workers)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			rep, err := cleanFile(gctx, in, outputDir, d, opt)
			if err != nil {
				errs[i] = err
				if opt.Policy == FailFast || isContextErr(err) {
					return err
				}
				return nil
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if opt.Policy == FailFast {
			return firstFailure(errs, err)
		}
		return err
	}
	return nil
}

// firstFailure picks the lowest-indexed real failure; siblings cancelled by
// it report context.Canceled.
func firstFailure(errs []error, fallback error) error {
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return fallback
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func asFileError(path string, err error) *FileError {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe
	}
	return &FileError{Op: "read", Path: path, Err: err}
}

// checkOutputs rejects inputs whose cleaned files would collide with each
// other or overwrite an input.
func checkOutputs(inputs []string, outputDir string) error {
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		out := CleanedPath(in, outputDir)
		if prev, ok := seen[out]; ok {
			return configErrorf("inputs", in, "%w with %s", ErrDuplicateOutput, prev)
		}
		seen[out] = in
		if err := checkOverwrite(in, outputDir); err != nil {
			return err
		}
	}
	return nil
}
