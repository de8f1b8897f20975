// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutcomeStatus records how a single document's conversion ended.
type OutcomeStatus string

const (
	OutcomeSaved  OutcomeStatus = "saved"
	OutcomeFailed OutcomeStatus = "failed"
)

// FileOutcome is the result of converting one document.
type FileOutcome struct {
	// Input is the path of the source document.
	Input string `json:"input" yaml:"input"`

	// Format is the detected document format.
	Format Format `json:"format" yaml:"format"`

	// Output is the path of the written text file. Empty on failure before
	// the path could be derived.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Status is saved or failed.
	Status OutcomeStatus `json:"status" yaml:"status"`

	// Error holds the failure message when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Warnings lists non-fatal conditions reported during extraction.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Saved reports whether the document was written successfully.
func (o FileOutcome) Saved() bool {
	return o.Status == OutcomeSaved
}
