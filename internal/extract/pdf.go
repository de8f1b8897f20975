// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/pdiddy/to-texts/pkg/types"
)

// replacementGlyph stands in for bytes that are not valid UTF-8.
const replacementGlyph = "\uFFFD"

var (
	errPageMissing = errors.New("page not found in page tree")
	errNotAStream  = errors.New("page content is not a stream")
)

// PDFExtractor reads the text-drawing operators of every page's content
// stream. It does no layout analysis: strings are emitted in stream order,
// and font encodings are not applied.
type PDFExtractor struct {
	logger *zap.Logger
}

// NewPDFExtractor creates a PDF extractor that logs diagnostics to logger.
func NewPDFExtractor(logger *zap.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// Extract opens the PDF at path and returns its text with a
// "--- Page N ---" separator before each page. Pages that cannot be read
// contribute only their separator and a warning.
func (p *PDFExtractor) Extract(path string) (types.Extraction, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return types.Extraction{}, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	ext := p.ExtractReader(r)
	p.logger.Debug("extracted PDF",
		zap.String("path", path),
		zap.Int("pages", ext.Units),
		zap.Int("warnings", len(ext.Warnings)))
	return ext, nil
}

// ExtractReader extracts the text of an already opened document.
func (p *PDFExtractor) ExtractReader(r *pdf.Reader) types.Extraction {
	var (
		ext types.Extraction
		b   strings.Builder
	)

	ext.Units = r.NumPage()
	for num := 1; num <= ext.Units; num++ {
		fmt.Fprintf(&b, "\n\n--- Page %d ---\n\n", num)

		page := r.Page(num)
		if page.V.IsNull() {
			ext.Warnf("failed to read page %d: %v", num, errPageMissing)
			continue
		}

		text, err := pageText(page)
		if err != nil {
			ext.Warnf("failed to read operations on page %d: %v", num, err)
			continue
		}
		b.WriteString(text)
	}

	ext.Text = b.String()
	return ext
}

// pageText interprets the page's content streams. A fault while lexing a
// stream is returned as an error and the page's partial text is dropped.
func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%v", r)
		}
	}()

	var w textWriter
	contents := page.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Null:
		return "", nil
	case pdf.Stream:
		pdf.Interpret(contents, w.op)
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			strm := contents.Index(i)
			if strm.Kind() != pdf.Stream {
				return "", fmt.Errorf("content element %d: %w", i, errNotAStream)
			}
			pdf.Interpret(strm, w.op)
		}
	default:
		return "", errNotAStream
	}
	return w.String(), nil
}

// textWriter collects the strings drawn by text operators.
type textWriter struct {
	strings.Builder
}

// op handles one content-stream operator. Only the text-showing operators
// produce output: Tj, ' and " draw their final string operand followed by a
// space; TJ draws each string of its array and turns every kerning number
// into a single space.
func (w *textWriter) op(stk *pdf.Stack, op string) {
	n := stk.Len()
	args := make([]pdf.Value, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = stk.Pop()
	}
	if n == 0 {
		return
	}
	last := args[n-1]

	switch op {
	case "Tj", "'", `"`:
		w.WriteString(decodeText(last.RawString()))
		w.WriteByte(' ')
	case "TJ":
		for i := 0; i < last.Len(); i++ {
			item := last.Index(i)
			switch item.Kind() {
			case pdf.String:
				w.WriteString(decodeText(item.RawString()))
			case pdf.Integer, pdf.Real:
				w.WriteByte(' ')
			}
		}
	}
}

// decodeText treats raw string bytes as UTF-8. Each maximal invalid
// subsequence becomes one U+FFFD, so a truncated multi-byte character costs
// one replacement and every stray byte costs its own.
func decodeText(raw string) string {
	if utf8.ValidString(raw) {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw) + 8)
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteString(replacementGlyph)
			i += invalidPrefixLen(raw[i:])
			continue
		}
		b.WriteString(raw[i : i+size])
		i += size
	}
	return b.String()
}

// invalidPrefixLen returns the length of the invalid sequence at the start
// of s: the lead byte plus any continuation bytes that could still have
// completed it.
func invalidPrefixLen(s string) int {
	var (
		need   int
		lo, hi byte = 0x80, 0xBF
	)
	switch c := s[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c == 0xED:
		need, hi = 2, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		need = 2
	case c == 0xF0:
		need, lo = 3, 0x90
	case c == 0xF4:
		need, hi = 3, 0x8F
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for n <= need && n < len(s) {
		c := s[n]
		if n == 1 && (c < lo || c > hi) {
			break
		}
		if n > 1 && (c < 0x80 || c > 0xBF) {
			break
		}
		n++
	}
	return n
}
