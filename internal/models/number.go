package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is the single normalization boundary for numeric fields coming from
// the backend. The API is not consistent about numeric typing: the same field
// may arrive as a JSON number, a numeric string (sometimes decorated with a
// currency symbol, thousands separators, or a percent sign), or null.
// Number accepts all of those once, at decode time, so aggregation code never
// has to re-parse strings.
type Number struct {
	value float64
	valid bool
}

// NewNumber returns a valid Number holding v.
func NewNumber(v float64) Number {
	return Number{value: v, valid: true}
}

// Float64 returns the normalized value. The second return is false when the
// source field was null, absent, or unparseable.
func (n Number) Float64() (float64, bool) {
	return n.value, n.valid
}

// Or returns the normalized value, or def when the field carried no value.
func (n Number) Or(def float64) float64 {
	if !n.valid {
		return def
	}
	return n.value
}

// Valid reports whether the field carried a usable numeric value.
func (n Number) Valid() bool {
	return n.valid
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
// Strings are cleaned the same way the backend's own loader cleans raw
// prices: currency symbols, commas, and percent signs are stripped before
// parsing. An unparseable non-empty string is an error rather than a silent
// zero, so bad payloads fail at the boundary.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("numeric string field: %w", err)
		}
		cleaned := cleanNumericString(s)
		if cleaned == "" {
			*n = Number{}
			return nil
		}
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as number", s)
		}
		*n = Number{value: v, valid: true}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*n = Number{value: v, valid: true}
	return nil
}

// MarshalJSON emits the plain number, or null when no value was present.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// cleanNumericString strips the decoration the backend's CSV importer leaves
// on price and percentage fields.
func cleanNumericString(s string) string {
	replacer := strings.NewReplacer("₹", "", ",", "", "%", "")
	return strings.TrimSpace(replacer.Replace(s))
}
