// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert walks a directory tree and converts every PDF and EPUB it
// finds into a plain-text file in a flat output directory.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/to-texts/internal/extract"
	"github.com/pdiddy/to-texts/pkg/types"
)

// outputExt is the extension of every written text file.
const outputExt = ".txt"

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted int                 `json:"converted" yaml:"converted"`
	Failed    int                 `json:"failed" yaml:"failed"`
	Outcomes  []types.FileOutcome `json:"files" yaml:"files"`
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(o types.FileOutcome) {
	if o.Saved() {
		r.Converted++
	} else {
		r.Failed++
	}
	r.Outcomes = append(r.Outcomes, o)
}

// OutputPath returns the text file written for input: the input's stem plus
// ".txt", directly inside outputDir. Inputs sharing a stem map to the same
// path; the later one overwrites the earlier.
func OutputPath(input, outputDir string) string {
	return filepath.Join(outputDir, types.Stem(input)+outputExt)
}

// Prepare validates the run's directories: target must exist, and outputDir
// is created if missing. Errors from Prepare are fatal for the run.
func Prepare(target, outputDir string) error {
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("target path does not exist: %s", target)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}
	return nil
}

// Converter converts documents with a set of extractors, writing progress
// lines to out and per-file errors and warnings to errOut.
type Converter struct {
	extractors extract.Registry
	outputDir  string
	out        io.Writer
	errOut     io.Writer
	logger     *zap.Logger
}

// New creates a Converter writing text files into outputDir.
func New(extractors extract.Registry, outputDir string, out, errOut io.Writer, logger *zap.Logger) *Converter {
	return &Converter{
		extractors: extractors,
		outputDir:  outputDir,
		out:        out,
		errOut:     errOut,
		logger:     logger,
	}
}

// Run converts every supported document under target, one at a time, and
// prints a summary. Per-file failures are counted, never returned; the
// error is non-nil only if target itself cannot be read.
func (c *Converter) Run(target string) (BatchResult, error) {
	var result BatchResult

	fmt.Fprintf(c.out, "Searching for PDF and EPUB files in: %s\n", target)
	fmt.Fprintf(c.out, "Output directory: %s\n\n", c.outputDir)

	err := Walk(target, c.logger, func(doc types.Document) {
		result.add(c.ConvertFile(doc))
	})
	if err != nil {
		return result, err
	}

	c.PrintSummary(result)
	return result, nil
}

// ConvertFile extracts doc, writes its text file, and reports the outcome.
func (c *Converter) ConvertFile(doc types.Document) types.FileOutcome {
	fmt.Fprintf(c.out, "Processing %s: %s\n", doc.Format.Label(), doc.Path)

	outcome := types.FileOutcome{Input: doc.Path, Format: doc.Format}
	outPath, warnings, err := c.convert(doc)
	outcome.Output = outPath
	outcome.Warnings = warnings

	for _, w := range warnings {
		fmt.Fprintf(c.errOut, "  Warning: %s\n", w)
	}

	if err != nil {
		fmt.Fprintf(c.errOut, "  -> Error: %v\n", err)
		outcome.Status = types.OutcomeFailed
		outcome.Error = err.Error()
		return outcome
	}

	fmt.Fprintf(c.out, "  -> Saved to: %s\n", outPath)
	outcome.Status = types.OutcomeSaved
	return outcome
}

func (c *Converter) convert(doc types.Document) (string, []string, error) {
	x, ok := c.extractors.For(doc.Format)
	if !ok {
		return "", nil, fmt.Errorf("no extractor for %s file %s", doc.Format, doc.Path)
	}

	ext, err := x.Extract(doc.Path)
	if err != nil {
		return "", ext.Warnings, err
	}

	outPath := OutputPath(doc.Path, c.outputDir)
	if err := os.WriteFile(outPath, []byte(ext.Text), 0o644); err != nil {
		return outPath, ext.Warnings, fmt.Errorf("writing output file %s: %w", outPath, err)
	}

	c.logger.Debug("wrote text file",
		zap.String("input", doc.Path),
		zap.String("output", outPath),
		zap.Int("bytes", len(ext.Text)))
	return outPath, ext.Warnings, nil
}

// PrintSummary writes the closing tally of a run.
func (c *Converter) PrintSummary(r BatchResult) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Summary:")
	fmt.Fprintf(c.out, "  Successfully processed: %d\n", r.Converted)
	fmt.Fprintf(c.out, "  Errors: %d\n", r.Failed)
}
