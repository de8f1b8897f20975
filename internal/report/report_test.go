// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/to-texts/internal/convert"
	"github.com/pdiddy/to-texts/pkg/types"
)

// readReport loads a report file written by Write.
func readReport(t *testing.T, path string) Report {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var r Report
	require.NoError(t, yaml.Unmarshal(data, &r))
	return r
}

func sampleResult() convert.BatchResult {
	return convert.BatchResult{
		Converted: 1,
		Failed:    1,
		Outcomes: []types.FileOutcome{
			{
				Input:    "in/a.pdf",
				Format:   types.FormatPDF,
				Output:   "out/a.txt",
				Status:   types.OutcomeSaved,
				Warnings: []string{"failed to read page 3: page not found in page tree"},
			},
			{
				Input:  "in/b.epub",
				Format: types.FormatEPUB,
				Status: types.OutcomeFailed,
				Error:  "opening EPUB in/b.epub: opening archive: zip: not a valid zip file",
			},
		},
	}
}

func TestMarshal(t *testing.T) {
	cfg := types.Config{Target: "in", OutputDir: "out"}
	data, err := New(cfg, sampleResult()).Marshal()
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "target: in\n")
	assert.Contains(t, text, "converted: 1\n")
	assert.Contains(t, text, "format: pdf\n")
	assert.Contains(t, text, "format: epub\n")
	assert.Contains(t, text, "status: failed\n")
	assert.NotContains(t, text, "output: \"\"")
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.yaml")
	cfg := types.Config{Target: "in", OutputDir: "out"}
	want := New(cfg, sampleResult())

	require.NoError(t, Write(path, want))

	assert.Equal(t, want, readReport(t, path))

	// Same run, same bytes.
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, Write(path, New(cfg, sampleResult())))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNew_EmptyRun(t *testing.T) {
	r := New(types.Config{Target: "t", OutputDir: "o"}, convert.BatchResult{})
	assert.NotNil(t, r.Files)
	assert.Empty(t, r.Files)
}

func TestWrite_Errors(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := Write(filepath.Join(blocker, "run.yaml"), New(types.Config{}, convert.BatchResult{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating report directory")
}
