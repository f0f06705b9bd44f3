package parser

import (
	"strings"
	"time"

	"github.com/huangsam/awrlens/schema"
)

// featureNameWidth is the fixed width of the feature name column.
const featureNameWidth = 64

// characterSetFeature is the pseudo-feature whose info carries the database charset.
const characterSetFeature = "Character Set"

var featureDateLayouts = []string{
	"2006-01-02",
	"02-Jan-06",
	"02-Jan-2006",
	"2006/01/02",
	"01/02/2006",
	"01/02/06",
}

// decodeFeatures reads fixed-column feature usage rows. A line that is too short,
// or whose usage triplet does not parse, continues the info of the previous record.
func (d *decoder) decodeFeatures(lines []Line) []schema.FeatureUsageRecord {
	out := []schema.FeatureUsageRecord{}
	_, _, rows := splitTable(lines)
	for _, ln := range rows {
		rec, ok := parseFeatureRow(ln.Text)
		if ok {
			out = append(out, rec)
			continue
		}
		text := strings.TrimSpace(ln.Text)
		if len(out) == 0 {
			d.note(schema.SectionFeatures, ln, schema.OrphanContinuationDiag, "continuation line without a preceding feature")
			continue
		}
		prev := &out[len(out)-1]
		prev.Info = strings.TrimSpace(prev.Info + " " + text)
	}
	return out
}

// parseFeatureRow returns false when the line is not a feature record.
func parseFeatureRow(text string) (schema.FeatureUsageRecord, bool) {
	runes := []rune(text)
	if len(runes) < featureNameWidth {
		return schema.FeatureUsageRecord{}, false
	}
	tokens := strings.Fields(string(runes[featureNameWidth:]))
	if len(tokens) < 3 {
		return schema.FeatureUsageRecord{}, false
	}
	detected, err := intField("DETECTED_USAGES", tokens[0])
	if err != nil {
		return schema.FeatureUsageRecord{}, false
	}
	total, err := intField("TOTAL_SAMPLES", tokens[1])
	if err != nil {
		return schema.FeatureUsageRecord{}, false
	}
	used, err := boolField("CURRENTLY_USED", tokens[2])
	if err != nil {
		return schema.FeatureUsageRecord{}, false
	}

	rec := schema.FeatureUsageRecord{
		Name:           strings.TrimSpace(string(runes[:featureNameWidth])),
		DetectedUsages: detected,
		TotalSamples:   total,
		CurrentlyUsed:  used,
	}

	rest := tokens[3:]
	if len(rest) > 0 {
		if aux, err := parseFloatToken(rest[0]); err == nil {
			rec.AuxCount = &aux
			rest = rest[1:]
		}
	}
	if len(rest) > 0 && isFeatureDate(rest[0]) {
		rec.LastSampleDate = rest[0]
		rest = rest[1:]
		if len(rest) > 0 && isClockTime(rest[0]) {
			rec.LastSampleDate += " " + rest[0]
			rest = rest[1:]
		}
	}
	rec.Info = strings.Join(rest, " ")
	return rec, true
}

func isFeatureDate(tok string) bool {
	for _, layout := range featureDateLayouts {
		if _, err := time.Parse(layout, tok); err == nil {
			return true
		}
	}
	return false
}

func isClockTime(tok string) bool {
	_, err := time.Parse("15:04:05", tok)
	return err == nil
}

// featureCharset returns the info of the Character Set pseudo-feature, if any.
func featureCharset(features []schema.FeatureUsageRecord) (string, bool) {
	for _, f := range features {
		if strings.EqualFold(f.Name, characterSetFeature) && strings.TrimSpace(f.Info) != "" {
			return strings.TrimSpace(f.Info), true
		}
	}
	return "", false
}
