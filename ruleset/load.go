package ruleset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Load parses and validates a ruleset document. Parsing is strict: unknown
// keys and missing required keys both fail, matching spec.md §6. On
// success the returned *Ruleset is considered frozen — callers must not
// mutate it, and the engine never does.
func Load(raw []byte) (*Ruleset, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var r Ruleset
	if err := dec.Decode(&r); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("decode: %v", err)}
	}
	if dec.More() {
		return nil, &ParseError{Message: "trailing data after ruleset document"}
	}

	if errs := Validate(&r); len(errs) > 0 {
		return nil, &ParseError{Message: joinParseErrors(errs)}
	}

	if r.Deck.Copies == 0 {
		r.Deck.Copies = 1
	}

	return &r, nil
}

func joinParseErrors(errs []*ParseError) string {
	msg := fmt.Sprintf("%d validation error(s):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return msg
}
