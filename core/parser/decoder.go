package parser

import (
	"errors"

	"github.com/huangsam/awrlens/schema"
	"go.uber.org/zap"
)

// decoder collects the diagnostics of one parse.
type decoder struct {
	log   *zap.Logger
	diags schema.Diagnostics
}

func newDecoder(log *zap.Logger) *decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &decoder{log: log}
}

// skip records a rejected row and keeps going.
func (d *decoder) skip(section schema.SectionName, ln Line, err error) {
	kind := schema.ConversionDiag
	var re *rowError
	if errors.As(err, &re) {
		kind = re.kind
	}
	d.note(section, ln, kind, err.Error())
}

func (d *decoder) note(section schema.SectionName, ln Line, kind schema.DiagnosticKind, msg string) {
	d.diags = append(d.diags, schema.Diagnostic{
		Section: section,
		Line:    ln.No,
		Kind:    kind,
		Message: msg,
		Text:    ln.Text,
	})
	d.log.Debug("skipping row",
		zap.String("section", string(section)),
		zap.Int("line", ln.No),
		zap.String("kind", string(kind)),
		zap.String("reason", msg),
	)
}

// eachRow runs fn over the data rows of a tabular section, recording failures.
func eachRow(d *decoder, section schema.SectionName, rows []Line, fn func(Line) error) {
	for _, ln := range rows {
		if err := fn(ln); err != nil {
			d.skip(section, ln, err)
		}
	}
}
