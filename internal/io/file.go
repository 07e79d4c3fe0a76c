// Package ioutils provides the file system primitives used by the organiser:
// directory creation, cross-filesystem moves, and tree removal that copes
// with read-only files.
package ioutils

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all parent directories if they don't
// exist. Directories are created with mode 0755. An existing directory is
// not an error.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// MoveFile moves a file from src to dst.
//
// os.Rename is tried first. When the destination is on a different
// filesystem (for instance an external drive) rename fails, so MoveFile
// falls back to copying the content and removing the source, which is what
// a user-facing "move" must mean across mounts.
//
// Example:
//
//	err := ioutils.MoveFile("/downloads/1. Intro.avi", "/library/s160ch01l01 - Intro.avi")
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// RemoveTree deletes a directory tree.
//
// Zip archives sometimes carry read-only attributes that survive extraction
// and make os.RemoveAll fail. On failure RemoveTree walks the tree making
// every entry writable, then tries again.
func RemoveTree(path string) error {
	err := os.RemoveAll(path)
	if err == nil {
		return nil
	}

	walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // entry may already be gone
		}
		mode := os.FileMode(0644)
		if d.IsDir() {
			mode = 0755
		}
		_ = os.Chmod(p, mode)
		return nil
	})
	if walkErr != nil {
		return err
	}

	return os.RemoveAll(path)
}

// copyFile copies src to dst and reports any write failure, including ones
// the OS only surfaces at sync or close time. MoveFile deletes the source
// based on this result, so a swallowed error here would lose data.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return err
	}
	if err := destFile.Sync(); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}
