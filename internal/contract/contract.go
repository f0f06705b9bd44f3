// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/awrlens/core/parser"
)

// ReportLoader turns a report path into a parse result.
// This allows the command layer to be tested without dump files on disk.
type ReportLoader interface {
	// Load reads and parses the report at path.
	Load(ctx context.Context, path string) (*parser.Result, error)
}

// FileLoader is the ReportLoader that parses from disk on every call.
type FileLoader struct {
	Options []parser.Option
}

var _ ReportLoader = FileLoader{} // Compile-time check

// Load implements the ReportLoader interface.
func (l FileLoader) Load(ctx context.Context, path string) (*parser.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return parser.ParseFile(path, l.Options...)
}
