package ndjsonv

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/reoring/ndjsonv/internal/atomicfile"
	"github.com/reoring/ndjsonv/internal/lines"
)

const (
	ctxCheckEvery = 1024
	cleanedPerm   = 0o644
	dirPerm       = 0o755
)

// FileReport describes one processed input file.
type FileReport struct {
	Input string `json:"input"`
	// Output is the cleaned file, empty in validate-only mode.
	Output  string  `json:"output,omitempty"`
	Lines   int     `json:"lines"`
	Valid   int     `json:"valid"`
	Skipped int     `json:"skipped,omitempty"`
	Errors  Entries `json:"errors"`
}

// CleanedPath returns where the cleaned copy of input is written.
func CleanedPath(input, outputDir string) string {
	return filepath.Join(outputDir, filepath.Base(input))
}

// CleanFile classifies every line of input and writes the valid ones, in
// order and each followed by '\n', to CleanedPath(input, outputDir). The
// output appears only if the whole file was processed. outputDir is created
// when missing. An empty outputDir validates without writing anything.
func CleanFile(ctx context.Context, input, outputDir string, d JSONDriver, opt Options) (FileReport, error) {
	if d == nil {
		return FileReport{}, &ConfigError{Field: "backend", Err: ErrUnknownDriver}
	}
	if err := opt.Validate(); err != nil {
		return FileReport{}, err
	}
	if outputDir != "" {
		if err := checkOverwrite(input, outputDir); err != nil {
			return FileReport{}, err
		}
		if err := ensureDir(outputDir); err != nil {
			return FileReport{}, err
		}
	}
	return cleanFile(ctx, input, outputDir, d, opt)
}

// ValidateFile classifies input without writing a cleaned copy.
func ValidateFile(ctx context.Context, input string, d JSONDriver, opt Options) (FileReport, error) {
	return CleanFile(ctx, input, "", d, opt)
}

func cleanFile(ctx context.Context, input, outputDir string, d JSONDriver, opt Options) (FileReport, error) {
	if err := ctx.Err(); err != nil {
		return FileReport{}, err
	}
	in, err := os.Open(input)
	if err != nil {
		return FileReport{}, &FileError{Op: "open", Path: input, Err: err}
	}
	defer in.Close()

	rep := FileReport{Input: input, Errors: Entries{}}
	var out *atomicfile.File
	if outputDir != "" {
		rep.Output = CleanedPath(input, outputDir)
		out, err = atomicfile.Create(rep.Output, cleanedPerm)
		if err != nil {
			return FileReport{}, &FileError{Op: "write", Path: rep.Output, Err: err}
		}
		defer out.Abort()
	}

	lr := lines.NewReader(in)
	for lr.Next() {
		n := lr.Number()
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return FileReport{}, err
			}
		}
		line := lr.Bytes()
		rep.Lines++

		err := ClassifyLine(line, d, opt)
		switch {
		case err == nil:
			rep.Valid++
			if out != nil {
				if err := out.WriteLine(line); err != nil {
					return FileReport{}, &FileError{Op: "write", Path: rep.Output, Err: err}
				}
			}
		case errors.Is(err, ErrBlankLine):
			rep.Skipped++
		default:
			rep.Errors = append(rep.Errors, newErrorEntry(input, n, line, err))
		}
	}
	if err := lr.Err(); err != nil {
		return FileReport{}, &FileError{Op: "read", Path: input, Err: err}
	}

	if out != nil {
		if err := out.Commit(); err != nil {
			return FileReport{}, &FileError{Op: "write", Path: rep.Output, Err: err}
		}
	}
	return rep, nil
}

func newErrorEntry(file string, lineNumber int, line []byte, err error) ErrorEntry {
	e := ErrorEntry{File: file, LineNumber: lineNumber, Code: CodeParseError, Message: err.Error(), Content: string(line)}
	var le *LineError
	if errors.As(err, &le) {
		e.Code = le.Code
		e.Message = le.Message
	}
	return e
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return &FileError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// checkOverwrite refuses an output directory that would make the cleaned
// file replace its own input.
func checkOverwrite(input, outputDir string) error {
	in, err := filepath.Abs(input)
	if err != nil {
		return nil
	}
	out, err := filepath.Abs(CleanedPath(input, outputDir))
	if err != nil {
		return nil
	}
	if in == out {
		return &ConfigError{Field: "output_dir", Value: outputDir, Err: ErrOverwriteInput}
	}
	return nil
}
