// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a YAML record of a conversion run. The report holds
// no timestamps, so identical runs produce identical reports.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/to-texts/internal/convert"
	"github.com/pdiddy/to-texts/pkg/types"
)

// Report is the serialized form of a run.
type Report struct {
	Target    string              `yaml:"target"`
	OutputDir string              `yaml:"output"`
	Converted int                 `yaml:"converted"`
	Failed    int                 `yaml:"failed"`
	Files     []types.FileOutcome `yaml:"files"`
}

// New builds a Report from a finished run.
func New(cfg types.Config, result convert.BatchResult) Report {
	files := result.Outcomes
	if files == nil {
		files = []types.FileOutcome{}
	}
	return Report{
		Target:    cfg.Target,
		OutputDir: cfg.OutputDir,
		Converted: result.Converted,
		Failed:    result.Failed,
		Files:     files,
	}
}

// Marshal renders r as YAML.
func (r Report) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return data, nil
}

// Write renders r to path, creating parent directories.
func Write(path string, r Report) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
