package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/awrlens/schema"
)

// ConvertValue maps a raw dump field to the narrowest typed value:
// bool for YES/NO/TRUE/FALSE, then integer, then finite float, then string.
// Blank input yields the null value.
func ConvertValue(raw string) schema.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return schema.NullValue()
	}
	if b, ok := parseBoolToken(s); ok {
		return schema.BoolValue(b)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return schema.IntValue(i)
	}
	if f, err := parseFloatToken(s); err == nil {
		return schema.FloatValue(f)
	}
	return schema.StringValue(s)
}

func parseBoolToken(s string) (bool, bool) {
	switch strings.ToUpper(s) {
	case "YES", "TRUE":
		return true, true
	case "NO", "FALSE":
		return false, true
	default:
		return false, false
	}
}

// parseFloatToken rejects NaN and infinities so decoded samples always serialize.
func parseFloatToken(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return f, nil
}

func isNumber(s string) bool {
	_, err := parseFloatToken(s)
	return err == nil
}

// rowError carries the diagnostic kind of a rejected row.
type rowError struct {
	kind schema.DiagnosticKind
	msg  string
}

func (e *rowError) Error() string {
	return e.msg
}

func fieldCountError(want string, got int) error {
	return &rowError{kind: schema.FieldCountDiag, msg: fmt.Sprintf("expected %s fields, got %d", want, got)}
}

func conversionError(field, tok string) error {
	return &rowError{kind: schema.ConversionDiag, msg: fmt.Sprintf("cannot convert %s value %q", field, tok)}
}

func intField(field, tok string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
	if err != nil {
		return 0, conversionError(field, tok)
	}
	return i, nil
}

func smallIntField(field, tok string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(tok))
	if err != nil {
		return 0, conversionError(field, tok)
	}
	return i, nil
}

func floatField(field, tok string) (float64, error) {
	f, err := parseFloatToken(strings.TrimSpace(tok))
	if err != nil {
		return 0, conversionError(field, tok)
	}
	return f, nil
}

func boolField(field, tok string) (bool, error) {
	b, ok := parseBoolToken(strings.TrimSpace(tok))
	if !ok {
		return false, conversionError(field, tok)
	}
	return b, nil
}

// fieldReader accumulates the first conversion error so decoders can read a whole row
// and check once at the end.
type fieldReader struct {
	err error
}

func (r *fieldReader) int64(field, tok string) int64 {
	if r.err != nil {
		return 0
	}
	v, err := intField(field, tok)
	r.err = err
	return v
}

func (r *fieldReader) int(field, tok string) int {
	if r.err != nil {
		return 0
	}
	v, err := smallIntField(field, tok)
	r.err = err
	return v
}

func (r *fieldReader) float(field, tok string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := floatField(field, tok)
	r.err = err
	return v
}

// optFloat reads a column that may be blank; blank means 0.
func (r *fieldReader) optFloat(field, tok string) float64 {
	if strings.TrimSpace(tok) == "" {
		return 0
	}
	return r.float(field, tok)
}
