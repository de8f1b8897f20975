// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/to-texts/pkg/types"
)

// Walk calls fn for every supported document reachable from root, in
// lexical order within each directory. Symbolic links are followed; a link
// back to one of its own ancestor directories is skipped. Entries that
// cannot be read are skipped. Walk fails only if root cannot be stat'ed.
func Walk(root string, logger *zap.Logger, fn func(types.Document)) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("reading target %s: %w", root, err)
	}

	w := &walker{logger: logger, fn: fn}
	w.visit(root, info, nil)
	return nil
}

type walker struct {
	logger *zap.Logger
	fn     func(types.Document)
}

func (w *walker) visit(path string, info os.FileInfo, ancestors []os.FileInfo) {
	if !info.IsDir() {
		w.visitFile(path, info)
		return
	}

	for _, a := range ancestors {
		if os.SameFile(a, info) {
			w.logger.Debug("skipping directory loop", zap.String("path", path))
			return
		}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		w.logger.Debug("skipping unreadable directory", zap.String("path", path), zap.Error(err))
		return
	}

	ancestors = append(ancestors, info)
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		childInfo, err := os.Stat(child)
		if err != nil {
			w.logger.Debug("skipping unreadable entry", zap.String("path", child), zap.Error(err))
			continue
		}
		w.visit(child, childInfo, ancestors)
	}
}

func (w *walker) visitFile(path string, info os.FileInfo) {
	if !info.Mode().IsRegular() {
		return
	}
	doc := types.NewDocument(path)
	if !doc.Supported() {
		w.logger.Debug("skipping unsupported file", zap.String("path", path))
		return
	}
	w.fn(doc)
}
