package gig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Price is an optional decimal that keeps the literal text it was received
// or entered with. Two prices are equal only when their text is equal, so
// "5" and "5.0" differ.
type Price string

// NoPrice is the absent price.
const NoPrice Price = ""

// ParsePrice converts form input into a Price. Blank input is NoPrice.
// Valid numbers are normalized to their shortest decimal form.
func ParsePrice(raw string) (Price, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NoPrice, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return NoPrice, fmt.Errorf("%w: price %q is not a number", ErrValidation, raw)
	}
	return Price(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// IsSet reports whether a price is present.
func (p Price) IsSet() bool {
	return p != NoPrice
}

// String returns the literal price text.
func (p Price) String() string {
	return string(p)
}

// MarshalJSON emits a number token for numeric prices, null when absent and
// a quoted string for anything else the spreadsheet may have stored.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.IsSet() {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(string(p), 64); err == nil && json.Valid([]byte(p)) {
		return []byte(p), nil
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON accepts numbers, strings and null.
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*p = NoPrice
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("gig: invalid price %s: %w", b, err)
		}
		*p = Price(n.String())
		return nil
	}
}
