// Package atomicfile writes a file through a temporary sibling that is
// renamed over the destination only once everything has been written.
package atomicfile

import (
	"bufio"
	"os"
	"path/filepath"
)

const bufSize = 64 << 10

// File is an in-progress atomic write. Exactly one of Commit or Abort takes
// effect; calling Abort after Commit is a no-op, so it can be deferred.
type File struct {
	tmp  *os.File
	bw   *bufio.Writer
	dest string
	perm os.FileMode
	done bool
}

// Create starts writing dest. The temporary file lives in dest's directory
// so the final rename never crosses file systems.
func Create(dest string, perm os.FileMode) (*File, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".ndjsonv-*")
	if err != nil {
		return nil, err
	}
	return &File{tmp: tmp, bw: bufio.NewWriterSize(tmp, bufSize), dest: dest, perm: perm}, nil
}

func (f *File) Write(p []byte) (int, error) { return f.bw.Write(p) }

// WriteLine writes p followed by a single '\n'.
func (f *File) WriteLine(p []byte) error {
	if _, err := f.bw.Write(p); err != nil {
		return err
	}
	return f.bw.WriteByte('\n')
}

// Commit flushes, syncs and renames the temporary file into place.
func (f *File) Commit() error {
	if f.done {
		return nil
	}
	f.done = true
	tmpPath := f.tmp.Name()
	if err := f.bw.Flush(); err != nil {
		_ = f.tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := f.tmp.Sync(); err != nil {
		_ = f.tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := f.tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	_ = os.Chmod(tmpPath, f.perm)
	if err := os.Rename(tmpPath, f.dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// best effort: persist the rename itself
	_ = syncDir(filepath.Dir(f.dest))
	return nil
}

// Abort discards the temporary file. The destination is left untouched.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	_ = f.tmp.Close()
	return os.Remove(f.tmp.Name())
}
