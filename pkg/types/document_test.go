// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"book.pdf", FormatPDF},
		{"dir/report.v2.PDF", FormatPDF},
		{"novel.EpUb", FormatEPUB},
		{"notes.txt", FormatUnsupported},
		{"README", FormatUnsupported},
		{".pdf", FormatUnsupported},
		{"archive.pdf.zip", FormatUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOf(tt.path))
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"report.v2.PDF", "report.v2"},
		{"/data/books/Dune.epub", "Dune"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
		{"a/b/.config.pdf", ".config"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.path))
		})
	}
}

func TestFormatLabels(t *testing.T) {
	assert.Equal(t, "PDF", FormatPDF.Label())
	assert.Equal(t, "EPUB", FormatEPUB.Label())
	assert.Equal(t, "unsupported", FormatUnsupported.String())

	text, err := FormatEPUB.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "epub", string(text))
}

func TestExtractionWarnf(t *testing.T) {
	var e Extraction
	e.Warnf("failed to read page %d: %s", 3, "bad stream")
	assert.Equal(t, []string{"failed to read page 3: bad stream"}, e.Warnings)
}

func TestDocumentSupported(t *testing.T) {
	assert.True(t, NewDocument("a.pdf").Supported())
	assert.False(t, NewDocument("a.txt").Supported())
}
