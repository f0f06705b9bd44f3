package schema

import (
	"fmt"

	"go.uber.org/multierr"
)

// DiagnosticKind classifies why a dump row could not be decoded.
type DiagnosticKind string

// All diagnostic kinds emitted by the section decoders.
const (
	FieldCountDiag         DiagnosticKind = "field_count"
	ConversionDiag         DiagnosticKind = "conversion"
	OrphanContinuationDiag DiagnosticKind = "orphan_continuation"
	MissingColumnDiag      DiagnosticKind = "missing_column"
	DuplicateKeyDiag       DiagnosticKind = "duplicate_key"
)

// Diagnostic records a single row that was skipped while decoding a section.
type Diagnostic struct {
	Section SectionName    `json:"section" yaml:"section"`
	Line    int            `json:"line" yaml:"line"` // 1-based line in the source file
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Message string         `json:"message" yaml:"message"`
	Text    string         `json:"text" yaml:"text"`
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s line %d: %s: %s", d.Section, d.Line, d.Kind, d.Message)
}

// Diagnostics is the ordered list of row problems found in one parse.
type Diagnostics []Diagnostic

// Err folds all diagnostics into one error, or nil when there are none.
func (ds Diagnostics) Err() error {
	var err error
	for _, d := range ds {
		err = multierr.Append(err, d)
	}
	return err
}

// BySection returns how many diagnostics each section produced.
func (ds Diagnostics) BySection() map[SectionName]int {
	counts := make(map[SectionName]int)
	for _, d := range ds {
		counts[d.Section]++
	}
	return counts
}

// ByKind returns the diagnostics of the given kind.
func (ds Diagnostics) ByKind(kind DiagnosticKind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
