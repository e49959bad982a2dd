// Package report renders batch results for humans and machines.
package report

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/ndjsonv"
)

// DefaultMaxShown is how many error details Text prints by default.
const DefaultMaxShown = 10

const maxContent = 256

// TextOptions tunes Text.
type TextOptions struct {
	// MaxShown caps the printed error details; 0 means DefaultMaxShown and
	// a negative value prints all of them.
	MaxShown int
	Elapsed  time.Duration
}

// Text writes a summary, the first error details and any failed files.
func Text(w io.Writer, res *ndjsonv.BatchResult, opt TextOptions) error {
	s := ndjsonv.Summarize(res)
	p := &printer{w: w}

	p.printf("Validation Summary:\n")
	p.printf("  Total files processed: %d\n", s.TotalFiles)
	p.printf("  Files with errors: %d\n", s.FilesWithErrors)
	p.printf("  Total errors found: %d\n", s.TotalErrors)
	p.printf("  Lines: %d total, %d valid", s.TotalLines, s.ValidLines)
	if s.SkippedLines > 0 {
		p.printf(", %d blank skipped", s.SkippedLines)
	}
	p.printf("\n")
	if opt.Elapsed > 0 {
		p.printf("  Time taken: %s\n", opt.Elapsed.Round(time.Microsecond))
	}
	switch {
	case s.FailedFiles > 0:
		p.printf("%d file(s) could not be processed\n", s.FailedFiles)
	case s.TotalErrors == 0:
		p.printf("All files are valid!\n")
	default:
		p.printf("Found %d errors in %d files\n", s.TotalErrors, s.FilesWithErrors)
	}

	for _, f := range res.Files {
		if f.Output != "" && len(f.Errors) > 0 {
			p.printf("Cleaned file written to: %s (removed %d invalid lines)\n", f.Output, len(f.Errors))
		}
	}

	if n := len(res.Errors); n > 0 {
		shown := opt.MaxShown
		if shown == 0 {
			shown = DefaultMaxShown
		}
		if shown < 0 || shown > n {
			shown = n
		}
		p.printf("\nError Details (showing first %d/%d):\n", shown, n)
		for i, e := range res.Errors[:shown] {
			p.printf("%d. File: %s\n", i+1, e.File)
			p.printf("   Line %d: %s\n", e.LineNumber, truncate(e.Content))
			p.printf("   Error: %s\n\n", e.Message)
		}
		if n > shown {
			p.printf("... and %d more errors\n", n-shown)
		}
	}

	if len(res.Failures) > 0 {
		p.printf("\nFailed files:\n")
		for _, fe := range res.Failures {
			p.printf("  %s: %v\n", fe.Path, fe.Err)
		}
	}
	return p.err
}

type jsonFailure struct {
	File  string `json:"file"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

type jsonReport struct {
	Summary      ndjsonv.Summary      `json:"summary"`
	CleanedFiles []string             `json:"cleaned_files"`
	Errors       ndjsonv.Entries      `json:"errors"`
	Files        []ndjsonv.FileReport `json:"files"`
	Failures     []jsonFailure        `json:"failures,omitempty"`
}

// JSON writes the whole result as one indented JSON document.
func JSON(w io.Writer, res *ndjsonv.BatchResult) error {
	out := jsonReport{
		Summary:      ndjsonv.Summarize(res),
		CleanedFiles: res.CleanedFiles,
		Errors:       res.Errors,
		Files:        res.Files,
	}
	for _, fe := range res.Failures {
		out.Failures = append(out.Failures, jsonFailure{File: fe.Path, Op: fe.Op, Error: fe.Err.Error()})
	}
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// truncate shortens long line content for display without splitting a rune.
func truncate(s string) string {
	if len(s) <= maxContent {
		return s
	}
	cut := maxContent
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, a ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, a...)
}
