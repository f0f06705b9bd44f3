package parser

import (
	"io"

	"github.com/huangsam/awrlens/schema"
	"go.uber.org/zap"
)

// Result is a parsed report together with the rows that were skipped.
type Result struct {
	Model       *schema.ReportModel `json:"model" yaml:"model"`
	Diagnostics schema.Diagnostics  `json:"diagnostics" yaml:"diagnostics"`
}

type options struct {
	log *zap.Logger
}

// Option customizes a parse.
type Option func(*options)

// WithLogger sends per-row diagnostics to log at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// ParseFile reads and parses the report at path.
func ParseFile(path string, opts ...Option) (*Result, error) {
	text, err := readFileText(path)
	if err != nil {
		return nil, err
	}
	res, err := ParseText(text, path, opts...)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return res, nil
}

// Parse reads a report from r. source names the input in the model.
func Parse(r io.Reader, source string, opts ...Option) (*Result, error) {
	text, err := readText(r)
	if err != nil {
		return nil, err
	}
	return ParseText(text, source, opts...)
}

// ParseText parses already decoded report text.
func ParseText(text, source string, opts ...Option) (*Result, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	doc := NewDocument(text)
	if !doc.HasMarkers() {
		return nil, ErrNoSections
	}

	d := newDecoder(o.log)
	model := &schema.ReportModel{Source: source}
	model.OSInfo = d.decodeOSInfo(doc.Section(schema.SectionOSInfo), &model.Metadata)
	model.Memory = d.decodeMemory(doc.Section(schema.SectionMemory))
	model.Disk = d.decodeDisk(doc.Section(schema.SectionSizeOnDisk))
	model.Performance = d.decodeMainMetrics(doc.Section(schema.SectionMainMetrics))
	model.WaitEvents = d.decodeTopEvents(doc.Section(schema.SectionTopEvents))
	model.SysStats = d.decodeSysStat(doc.Section(schema.SectionSysStat))
	model.Features = d.decodeFeatures(doc.Section(schema.SectionFeatures))
	model.SGAAdvice = d.decodeSGAAdvice(doc.Section(schema.SectionSGAAdvice))

	if charset, ok := featureCharset(model.Features); ok {
		model.Metadata.CharacterSet = charset
	}

	model.AttachAWR(schema.AWRSections{
		IOFunctions:    d.decodeIOFunctions(doc.Section(schema.SectionIOStatFunction)),
		CPUPercentiles: d.decodePercentCPU(doc.Section(schema.SectionPercentCPU)),
		IOPercentiles:  d.decodePercentIO(doc.Section(schema.SectionPercentIO)),
		Workload:       d.decodeWorkload(doc.Section(schema.SectionWorkload)),
		BufferCache:    d.decodeBufferCache(doc.Section(schema.SectionBufferCache)),
	})

	d.log.Debug("parsed report",
		zap.String("source", source),
		zap.String("dialect", string(model.Dialect())),
		zap.Int("diagnostics", len(d.diags)),
	)
	return &Result{Model: model, Diagnostics: d.diags}, nil
}
