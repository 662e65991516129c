// Package rules loads RAG rule documents from directories.
package rules

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Extensions are the rule file suffixes, in the order they are collected.
var Extensions = []string{".sexp", ".lisp"}

// ErrNotDirectory indicates a rule source that is missing or is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Skip records an input that was left out of the result.
type Skip struct {
	Path string
	Err  error
}

// Result is the outcome of loading a set of rule directories.
type Result struct {
	Rules   []models.Rule
	Skipped []Skip
}

// Loader reads rule files from an afero filesystem.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a rule loader on top of fs
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// Load collects every rule file found in dirs. Directories are visited in the
// given order; inside a directory all .sexp files come before .lisp files.
// Invalid directories and unreadable files are skipped, never fatal.
func (l *Loader) Load(dirs []string) *Result {
	result := &Result{Rules: make([]models.Rule, 0)}

	for _, dir := range dirs {
		isDir, err := afero.IsDir(l.fs, dir)
		if err != nil || !isDir {
			logger.Warn("Rule path is not a directory", zap.String("path", dir))
			result.Skipped = append(result.Skipped, Skip{Path: dir, Err: ErrNotDirectory})
			continue
		}

		for _, ext := range Extensions {
			matches, err := afero.Glob(l.fs, filepath.Join(dir, "*"+ext))
			if err != nil {
				result.Skipped = append(result.Skipped, Skip{Path: dir, Err: fmt.Errorf("failed to list %s files: %w", ext, err)})
				continue
			}

			for _, file := range matches {
				// Hidden files are not rule documents
				if strings.HasPrefix(filepath.Base(file), ".") {
					logger.Debug("Skipping hidden rule file", zap.String("file", file))
					continue
				}
				data, err := afero.ReadFile(l.fs, file)
				if err != nil {
					logger.Warn("Failed to read rule file", zap.String("file", file), zap.Error(err))
					result.Skipped = append(result.Skipped, Skip{Path: file, Err: fmt.Errorf("failed to read rule file: %w", err)})
					continue
				}
				logger.Debug("Loaded rule file", zap.String("file", file), zap.Int("bytes", len(data)))
				result.Rules = append(result.Rules, models.Rule{Source: file, Content: string(data)})
			}
		}
	}

	return result
}
