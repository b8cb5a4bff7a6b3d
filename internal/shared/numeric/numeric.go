// Package numeric coerces the loosely typed amounts the dashboard sends
// (numbers, numeric strings, empty strings, null) into non-negative floats.
package numeric

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a sale amount field. It unmarshals from a JSON number, a numeric
// string, an empty string or null; anything unparseable, non-finite or
// negative becomes 0. It never fails.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(Coerce(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(clamp(f))
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

func (a Amount) Float64() float64 {
	return float64(a)
}

// Coerce parses any scalar meant to represent a quantity. Invalid or absent
// input yields 0 rather than an error; the dashboard has always been allowed
// to send blanks.
func Coerce(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return clamp(val)
	case float32:
		return clamp(float64(val))
	case int:
		return clamp(float64(val))
	case int64:
		return clamp(float64(val))
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return clamp(f)
	default:
		return 0
	}
}

func clamp(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// Round2 rounds to two decimal places for display totals.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
