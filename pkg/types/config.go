// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Config holds the resolved settings for one conversion run. Values come
// from command-line flags, optionally overridden by a YAML config file.
type Config struct {
	// Target is the file or directory scanned recursively for documents.
	Target string `json:"target" yaml:"target"`

	// OutputDir receives one <stem>.txt per converted document.
	OutputDir string `json:"output" yaml:"output"`

	// ReportPath, when set, receives a YAML report of the run.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`

	// LogLevel sets diagnostic logging: debug, info, warn, or error (default warn).
	LogLevel string `json:"log_level" yaml:"log_level"`
}
