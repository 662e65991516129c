// Package tasklist reads task list files and combines them into one text block.
package tasklist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Separator joins the contents of consecutive task list files.
const Separator = "\n\n"

var (
	// ErrNotFound indicates a task list path that is missing or is not a regular file.
	ErrNotFound = errors.New("tasklist file not found")
	// ErrNoContent indicates that none of the task list files had any content.
	ErrNoContent = errors.New("no tasklist content")
)

// Skip records a task list path that was left out of the result.
type Skip struct {
	Path string
	Err  error
}

// Result is the outcome of loading several task list files.
type Result struct {
	// Content is the combined text, empty when HasContent is false.
	Content string
	Skipped []Skip
	// Empty lists readable files whose trimmed content was empty.
	Empty []string
}

// HasContent reports whether at least one file contributed text.
func (r *Result) HasContent() bool {
	return r != nil && r.Content != ""
}

// Loader reads task lists from an afero filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a task list loader on top of fs
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// LoadFile reads a single task list and returns its trimmed content.
func (l *Loader) LoadFile(path string) (string, error) {
	if !l.isFile(path) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read tasklist %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Load reads every path, drops missing or empty files and joins the rest with
// a blank line.
func (l *Loader) Load(paths []string) *Result {
	result := &Result{}
	var parts []string

	for _, path := range paths {
		content, err := l.LoadFile(path)
		if err != nil {
			logger.Warn("Skipping tasklist", zap.String("path", path), zap.Error(err))
			result.Skipped = append(result.Skipped, Skip{Path: path, Err: err})
			continue
		}
		if content == "" {
			logger.Debug("Tasklist is empty", zap.String("path", path))
			result.Empty = append(result.Empty, path)
			continue
		}
		parts = append(parts, content)
	}

	result.Content = strings.Join(parts, Separator)
	return result
}

func (l *Loader) isFile(path string) bool {
	info, err := l.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
