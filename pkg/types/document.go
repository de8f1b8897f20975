// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the to-texts pipeline:
// discovered documents, extraction results, per-file outcomes, and run
// configuration.
package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format classifies a discovered file by its extension. The set is closed:
// every file resolves to exactly one Format at discovery time.
type Format int

const (
	FormatUnsupported Format = iota
	FormatPDF
	FormatEPUB
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatEPUB:
		return "epub"
	default:
		return "unsupported"
	}
}

// Label returns the upper-case name used in console progress lines.
func (f Format) Label() string {
	return strings.ToUpper(f.String())
}

// MarshalText lets Format appear by name in YAML and JSON reports.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses a name written by MarshalText. Unknown names map to
// FormatUnsupported.
func (f *Format) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pdf":
		*f = FormatPDF
	case "epub":
		*f = FormatEPUB
	default:
		*f = FormatUnsupported
	}
	return nil
}

// Extension returns the final extension of name without the leading dot.
// A dotfile with no further dot (".pdf") has no extension.
func Extension(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

// Stem returns the base name of path with its final extension removed.
func Stem(path string) string {
	base := filepath.Base(path)
	ext := Extension(base)
	if ext == "" {
		return base
	}
	return strings.TrimSuffix(base, "."+ext)
}

// FormatOf classifies path by its case-insensitive final extension.
func FormatOf(path string) Format {
	switch strings.ToLower(Extension(path)) {
	case "pdf":
		return FormatPDF
	case "epub":
		return FormatEPUB
	default:
		return FormatUnsupported
	}
}

// Document is a discovered input file and its detected format.
type Document struct {
	// Path is the filesystem path as reached by the directory walk.
	Path string `json:"path" yaml:"path"`

	// Format is resolved once from the file extension.
	Format Format `json:"format" yaml:"format"`
}

// NewDocument classifies path and returns its Document reference.
func NewDocument(path string) Document {
	return Document{Path: path, Format: FormatOf(path)}
}

// Supported reports whether the document has an extractor.
func (d Document) Supported() bool {
	return d.Format != FormatUnsupported
}

// Extraction is the text produced from one document, plus the non-fatal
// warnings raised while producing it.
type Extraction struct {
	// Text is the full plain-text body written to the output file.
	Text string

	// Warnings lists conditions that dropped content without failing the
	// document (e.g. an unreadable PDF page).
	Warnings []string

	// Units counts the pages (PDF) or text-bearing resources (EPUB) seen.
	Units int
}

// Warnf appends a formatted warning.
func (e *Extraction) Warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}
