// Package ioutils provides file system utilities for relocating course
// files.
//
// This package contains functions for:
//   - Moving files across directories and file systems
//   - Directory creation
//   - Removing extracted archive trees, including read-only entries
//
// # File Operations
//
//	// Ensure a destination directory exists
//	err := ioutils.EnsureDir("/videos/160 - Course/01 - Chapter")
//
//	// Move a file, falling back to copy-and-delete across file systems
//	err := ioutils.MoveFile("/downloads/lesson.avi", "/videos/lesson.avi")
//
//	// Delete an extraction scratch tree, clearing read-only bits if needed
//	err := ioutils.RemoveTree("/downloads/.temp")
package ioutils
