package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a currency amount that may arrive on the wire as a JSON number
// or as a quoted numeric string. Malformed values decode to zero so that a
// sloppy upstream record never poisons an aggregation.
type Amount float64

// UnmarshalJSON coerces numbers, numeric strings, and null into a float64.
// Coercion is idempotent: "250" and 250 decode to the same value.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			*a = 0
			return nil
		}
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

// MarshalJSON always emits a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// Float returns the amount as a float64.
func (a Amount) Float() float64 {
	return float64(a)
}
