// Package ioutils provides file system utilities for opb-downloader.
//
// This package contains functions for:
//   - Directory creation
//   - Renaming with retry (the downloader may briefly hold the file)
//   - Duplicate detection by file name pattern
//   - Stale temp file cleanup
//   - Thumbnail image processing
package ioutils

import (
	"context"
	"os"
	"regexp"
	"time"
)

// EnsureDir creates a directory and all parent directories if they
// don't exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// RemoveIfExists deletes the file at path if it exists. A missing file
// is not an error; anything else is.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RenameWithRetry renames src to dst, retrying on failure.
//
// The external downloader (or an antivirus scanner on some platforms)
// can hold the finished file open for a moment after exiting; a rename
// in that window fails with a permission error. Retries are spaced by
// cooldown and abandoned when the context is cancelled.
func RenameWithRetry(ctx context.Context, src, dst string, tries int, cooldown time.Duration) error {
	var err error
	for i := 0; i < tries; i++ {
		err = os.Rename(src, dst)
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cooldown):
		}
	}
	return err
}

// DirContainsMatch reports whether dir contains a file whose name
// matches the regular expression pattern.
//
// A missing directory contains nothing and is not an error, since the
// season folder is only created when the first episode downloads.
func DirContainsMatch(dir, pattern string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	for _, entry := range entries {
		if re.MatchString(entry.Name()) {
			return true, nil
		}
	}
	return false, nil
}
