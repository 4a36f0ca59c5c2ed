package handler

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Flexible request field types. The external contract is permissive: a field
// that should be a list may arrive as a CSV string, a scalar, or garbage, and
// must coerce to an empty (or split) value instead of failing the request.
// These types keep that policy at the JSON boundary so everything past it is
// strictly typed.

// FlexStrings is a list of names that tolerates CSV strings and malformed
// shapes.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		*f = nil
		return nil
	}
	switch v := raw.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		*f = out
	case string:
		*f = splitCSV(v)
	default:
		*f = nil
	}
	return nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FlexChances is a name→chance map that tolerates numeric strings as values
// and coerces non-object shapes to empty. Unparseable values are dropped.
type FlexChances map[string]float64

func (f *FlexChances) UnmarshalJSON(b []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		*f = nil
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case float64:
			out[k] = n
		case string:
			if p, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil && !math.IsNaN(p) && !math.IsInf(p, 0) {
				out[k] = p
			}
		}
	}
	*f = out
	return nil
}

// FlexInt tolerates numbers and numeric strings; anything else leaves the
// value unset so the caller's default applies. Fractional values truncate
// toward zero, so a luck of 3.7 reads as 3.
type FlexInt struct {
	val int
	set bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	if v, ok := parseNumber(b); ok {
		f.val, f.set = int(v), true
	}
	return nil
}

// Or returns the decoded value, or def when the field was absent or invalid.
func (f FlexInt) Or(def int) int {
	if !f.set {
		return def
	}
	return f.val
}

// FlexFloat is the float counterpart of FlexInt.
type FlexFloat struct {
	val float64
	set bool
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	if v, ok := parseNumber(b); ok {
		f.val, f.set = v, true
	}
	return nil
}

// Or returns the decoded value, or def when the field was absent or invalid.
func (f FlexFloat) Or(def float64) float64 {
	if !f.set {
		return def
	}
	return f.val
}

func parseNumber(b []byte) (float64, bool) {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		// ParseFloat accepts "NaN" and "Inf"; those stay unset so the
		// caller's default applies.
		if p, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsNaN(p) && !math.IsInf(p, 0) {
			return p, true
		}
	}
	return 0, false
}
