package ndjsonv

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IsNDJSONName reports whether a file name looks like NDJSON: a .ndjson or
// .jsonl extension, or ".nd.json" anywhere in the name.
func IsNDJSONName(name string) bool {
	lower := strings.ToLower(name)
	switch filepath.Ext(lower) {
	case ".ndjson", ".jsonl":
		return true
	}
	return strings.Contains(lower, ".nd.json")
}

// DiscoverFiles lists the NDJSON files directly inside dir in lexical
// order. Files matching any gitignore-style exclude pattern are left out.
// Subdirectories are not descended into.
func DiscoverFiles(dir string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileError{Op: "open", Path: dir, Err: err}
	}
	var matcher *ignore.GitIgnore
	if len(exclude) > 0 {
		matcher = ignore.CompileIgnoreLines(exclude...)
	}

	var files []string
	for _, e := range entries {
		if !IsNDJSONName(e.Name()) || !isRegular(dir, e) {
			continue
		}
		if matcher != nil && matcher.MatchesPath(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, &FileError{Op: "open", Path: dir, Err: ErrNoFiles}
	}
	return files, nil
}

// ValidateDir runs the batch over the files DiscoverFiles finds in dir.
func ValidateDir(ctx context.Context, dir, outputDir string, exclude []string, d JSONDriver, opt Options) (*BatchResult, error) {
	if d == nil {
		return nil, &ConfigError{Field: "backend", Err: ErrUnknownDriver}
	}
	files, err := DiscoverFiles(dir, exclude)
	if err != nil {
		return nil, err
	}
	return Run(ctx, files, outputDir, d, opt)
}

// isRegular follows symlinks so linked files are discovered too.
func isRegular(dir string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}
	fi, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && fi.Mode().IsRegular()
}
