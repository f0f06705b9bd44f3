package parser

import (
	"strconv"
	"strings"
)

// isSeparator reports whether a line is a run of dash groups such as "---- ------".
func isSeparator(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "---") && strings.Trim(t, "- \t") == ""
}

// splitTable separates the header line from the data rows of a tabular section.
// Rows only start after the first separator; later separator lines are skipped.
// When no separator is present there are no data rows.
func splitTable(lines []Line) (header, sep Line, rows []Line) {
	start := -1
	for i, ln := range lines {
		if isSeparator(ln.Text) {
			start = i
			break
		}
	}
	if start < 0 {
		return Line{}, Line{}, nil
	}
	sep = lines[start]
	if start > 0 {
		header = lines[start-1]
	}
	for _, ln := range lines[start+1:] {
		if isSeparator(ln.Text) {
			continue
		}
		rows = append(rows, ln)
	}
	return header, sep, rows
}

// column is a fixed character span of a table; end < 0 runs to end of line.
type column struct {
	name       string
	start, end int
}

// table reads named fields out of data rows. With spans it slices fixed columns,
// otherwise it splits on whitespace and matches fields positionally.
type table struct {
	names []string
	cols  []column
}

// newTable derives the column layout from the header and separator lines.
// The dash groups of the separator give the spans; a single group (or no header)
// falls back to whitespace splitting with the header fields, or defaults if the
// header is missing.
func newTable(header, sep Line, defaults []string) table {
	headerRunes := []rune(header.Text)
	groups := dashGroups(sep.Text)
	if len(groups) > 1 && strings.TrimSpace(header.Text) != "" {
		cols := make([]column, len(groups))
		for i, g := range groups {
			end := -1
			if i+1 < len(groups) {
				end = groups[i+1]
			}
			cols[i] = column{
				name:  strings.ToUpper(strings.TrimSpace(cut(headerRunes, g, end))),
				start: g,
				end:   end,
			}
		}
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.name
		}
		return table{names: names, cols: cols}
	}

	names := strings.Fields(strings.ToUpper(header.Text))
	if len(names) == 0 {
		names = defaults
	}
	return table{names: names}
}

// spanned reports whether the table slices fixed columns.
func (t table) spanned() bool {
	return len(t.cols) > 0
}

// index returns the position of the first header matching any alias, or -1.
func (t table) index(aliases ...string) int {
	for _, a := range aliases {
		for i, n := range t.names {
			if n == a {
				return i
			}
		}
	}
	return -1
}

// fields returns the raw values of a row in header order.
func (t table) fields(ln Line) ([]string, error) {
	if !t.spanned() {
		parts := strings.Fields(ln.Text)
		if len(parts) != len(t.names) {
			return nil, fieldCountError(strconv.Itoa(len(t.names)), len(parts))
		}
		return parts, nil
	}
	runes := []rune(ln.Text)
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = strings.TrimSpace(cut(runes, c.start, c.end))
	}
	return out, nil
}

// dashGroups returns the rune offsets at which each run of dashes starts.
func dashGroups(s string) []int {
	var starts []int
	inRun := false
	for i, r := range []rune(s) {
		if r == '-' {
			if !inRun {
				starts = append(starts, i)
			}
			inRun = true
			continue
		}
		inRun = false
	}
	return starts
}

// cut returns runes[start:end] clamped to the slice; end < 0 means to the end.
func cut(runes []rune, start, end int) string {
	if start >= len(runes) {
		return ""
	}
	if end < 0 || end > len(runes) {
		end = len(runes)
	}
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	return string(runes[start:end])
}
