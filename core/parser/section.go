// Package parser turns the text of an Oracle performance dump into a schema.ReportModel.
package parser

import (
	"strings"

	"github.com/huangsam/awrlens/schema"
)

const (
	beginPrefix = "~~BEGIN-"
	endPrefix   = "~~END-"
	markerFence = "~~"
)

// Line is one source line together with its 1-based position in the file.
type Line struct {
	No   int
	Text string
}

// Document indexes the marker-delimited sections of a dump.
// Only the first block of each section is kept.
type Document struct {
	sections map[schema.SectionName][]Line
	markers  bool
}

// NewDocument splits text into lines and indexes every section block in one pass.
// A begin marker of any section closes the block that is currently open.
func NewDocument(text string) *Document {
	doc := &Document{sections: make(map[schema.SectionName][]Line)}

	var current schema.SectionName
	open := false
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(raw)

		if name, ok := beginMarker(trimmed); ok {
			doc.markers = true
			if _, seen := doc.sections[name]; seen {
				open = false
				continue
			}
			doc.sections[name] = []Line{}
			current, open = name, true
			continue
		}
		if name, ok := endMarker(trimmed); ok {
			doc.markers = true
			if open && name == current {
				open = false
			}
			continue
		}
		if !open || trimmed == "" {
			continue
		}
		doc.sections[current] = append(doc.sections[current], Line{No: i + 1, Text: raw})
	}
	return doc
}

// HasMarkers reports whether any section marker was found.
func (d *Document) HasMarkers() bool {
	return d.markers
}

// Section returns the non-blank interior lines of the named section.
// A missing section yields an empty slice.
func (d *Document) Section(name schema.SectionName) []Line {
	lines, ok := d.sections[name]
	if !ok {
		return []Line{}
	}
	return lines
}

// Has reports whether the named section appeared in the dump.
func (d *Document) Has(name schema.SectionName) bool {
	_, ok := d.sections[name]
	return ok
}

// ExtractSection returns the interior lines of the first block of the named section.
func ExtractSection(text string, name schema.SectionName) []Line {
	return NewDocument(text).Section(name)
}

// beginMarker accepts both "~~BEGIN-NAME~~" and the truncated "~~BEGIN-NAME".
func beginMarker(s string) (schema.SectionName, bool) {
	if !strings.HasPrefix(s, beginPrefix) {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimRight(strings.TrimPrefix(s, beginPrefix), "~"))
	if name == "" {
		return "", false
	}
	return schema.SectionName(strings.ToUpper(name)), true
}

func endMarker(s string) (schema.SectionName, bool) {
	if !strings.HasPrefix(s, endPrefix) {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, endPrefix), markerFence))
	name = strings.TrimRight(name, "~")
	if name == "" {
		return "", false
	}
	return schema.SectionName(strings.ToUpper(name)), true
}
