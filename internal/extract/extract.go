// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls plain text out of PDF and EPUB documents.
//
// Each format has an Extractor. Calls into the parsers run behind Guard, so
// a parser that panics on an unsupported document fails only that document.
package extract

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/to-texts/pkg/types"
)

// Extractor turns the document at path into plain text. An error means the
// document could not be opened or parsed at all; recoverable problems are
// reported as warnings on the returned Extraction.
type Extractor interface {
	Extract(path string) (types.Extraction, error)
}

// Registry maps each supported format to its extractor.
type Registry map[types.Format]Extractor

// For returns the extractor registered for format.
func (r Registry) For(format types.Format) (Extractor, bool) {
	e, ok := r[format]
	return e, ok
}

// NewRegistry returns guarded PDF and EPUB extractors.
func NewRegistry(logger *zap.Logger) Registry {
	return Registry{
		types.FormatPDF:  Guarded(NewPDFExtractor(logger), logger),
		types.FormatEPUB: Guarded(NewEPUBExtractor(logger), logger),
	}
}

// Guard runs fn and converts a panic raised inside it into an error, so a
// fault in a document parser ends only the current document.
func Guard(path string, fn func() (types.Extraction, error)) (ext types.Extraction, err error) {
	defer func() {
		if r := recover(); r != nil {
			ext = types.Extraction{}
			err = fmt.Errorf("extraction panicked on %s (likely unsupported document feature): %v", path, r)
		}
	}()
	return fn()
}

type guarded struct {
	inner  Extractor
	logger *zap.Logger
}

// Guarded wraps e so every Extract call runs under Guard.
func Guarded(e Extractor, logger *zap.Logger) Extractor {
	return &guarded{inner: e, logger: logger}
}

func (g *guarded) Extract(path string) (types.Extraction, error) {
	ext, err := Guard(path, func() (types.Extraction, error) {
		return g.inner.Extract(path)
	})
	if err != nil {
		g.logger.Debug("extraction failed", zap.String("path", path), zap.Error(err))
	}
	return ext, err
}
