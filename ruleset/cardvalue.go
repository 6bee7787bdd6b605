package ruleset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// cardValueJSON mirrors the two accepted shapes for a CardValue:
// {"fixed": 10} or {"low": 1, "high": 11}.
type cardValueJSON struct {
	Fixed *int `json:"fixed,omitempty"`
	Low   *int `json:"low,omitempty"`
	High  *int `json:"high,omitempty"`
}

// MarshalJSON renders a CardValue in whichever of its two shapes applies.
func (c CardValue) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ValueFixed:
		return json.Marshal(cardValueJSON{Fixed: &c.Fixed})
	case ValueDual:
		return json.Marshal(cardValueJSON{Low: &c.Low, High: &c.High})
	default:
		return nil, fmt.Errorf("cardValue: unknown kind %d", c.Kind)
	}
}

// UnmarshalJSON accepts {"fixed": N} or {"low": N, "high": N}; any other
// shape, or specifying both, is a parse error.
func (c *CardValue) UnmarshalJSON(data []byte) error {
	var raw cardValueJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("cardValue: %w", err)
	}
	switch {
	case raw.Fixed != nil && raw.Low == nil && raw.High == nil:
		*c = CardValue{Kind: ValueFixed, Fixed: *raw.Fixed}
	case raw.Fixed == nil && raw.Low != nil && raw.High != nil:
		*c = CardValue{Kind: ValueDual, Low: *raw.Low, High: *raw.High}
	default:
		return fmt.Errorf("cardValue: must be exactly {\"fixed\": n} or {\"low\": n, \"high\": n}")
	}
	return nil
}
