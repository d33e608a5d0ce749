// Package bind provides tolerant decoding for backend JSON payloads whose
// scalar fields arrive inconsistently typed. The API serialises decimals
// sometimes as numbers and sometimes as quoted strings, and null where a
// value is absent; these types accept every form.
package bind

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a float64 that decodes from a JSON number, a quoted decimal
// string, or null (as zero).
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("bind: number: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("bind: number %q: %w", s, err)
		}
		*n = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("bind: number: %w", err)
	}
	*n = Number(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// Float returns the plain float64 value.
func (n Number) Float() float64 { return float64(n) }

// Int is an int that decodes from a JSON number, a quoted integer string,
// or null (as zero). A fractional number truncates.
type Int int

func (i *Int) UnmarshalJSON(b []byte) error {
	var n Number
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	*i = Int(n)
	return nil
}

func (i Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(i))
}

// Value returns the plain int value.
func (i Int) Value() int { return int(i) }
