// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/to-texts/internal/epub"
	"github.com/pdiddy/to-texts/internal/htmltext"
	"github.com/pdiddy/to-texts/pkg/types"
)

// headerRule separates the metadata header from the book text.
var headerRule = strings.Repeat("=", 80)

// EPUBExtractor concatenates the text of every HTML resource in an EPUB,
// in manifest order, under a title/author header.
type EPUBExtractor struct {
	logger *zap.Logger
}

// NewEPUBExtractor creates an EPUB extractor that logs diagnostics to logger.
func NewEPUBExtractor(logger *zap.Logger) *EPUBExtractor {
	return &EPUBExtractor{logger: logger}
}

// Extract opens the EPUB at path and returns its text.
func (e *EPUBExtractor) Extract(path string) (types.Extraction, error) {
	rc, err := epub.Open(path)
	if err != nil {
		return types.Extraction{}, fmt.Errorf("opening EPUB %s: %w", path, err)
	}
	defer rc.Close()

	ext := e.ExtractReader(&rc.Reader)
	e.logger.Debug("extracted EPUB",
		zap.String("path", path),
		zap.String("package", rc.Rootfile()),
		zap.Int("resources", ext.Units))
	return ext, nil
}

// ExtractReader extracts the text of an already opened container.
// Resources that are missing or not decodable as text are skipped.
func (e *EPUBExtractor) ExtractReader(r *epub.Reader) types.Extraction {
	var (
		ext types.Extraction
		b   strings.Builder
	)

	writeHeader(&b, r.Metadata())

	for _, res := range r.Resources() {
		if !IsHTMLResource(res) {
			continue
		}
		content, err := r.ReadText(res)
		if err != nil {
			e.logger.Debug("skipping EPUB resource",
				zap.String("resource", res.Path),
				zap.Error(err))
			continue
		}
		b.WriteString(htmltext.Strip(content))
		b.WriteString("\n\n")
		ext.Units++
	}

	ext.Text = b.String()
	return ext
}

func writeHeader(b *strings.Builder, md epub.Metadata) {
	if md.Title != "" {
		fmt.Fprintf(b, "Title: %s\n", md.Title)
	}
	if md.Creator != "" {
		fmt.Fprintf(b, "Author: %s\n", md.Creator)
	}
	b.WriteString("\n")
	b.WriteString(headerRule)
	b.WriteString("\n\n")
}

// IsHTMLResource reports whether res holds HTML or XHTML content, judged by
// its declared media type or, failing that, its file extension.
func IsHTMLResource(res epub.Resource) bool {
	return strings.HasPrefix(res.MediaType, "application/xhtml") ||
		strings.HasPrefix(res.MediaType, "text/html") ||
		strings.HasSuffix(res.Path, ".xhtml") ||
		strings.HasSuffix(res.Path, ".html")
}
