package ruleset

import "fmt"

// ParseError is returned by Load for malformed JSON or a document that
// fails structural validation (spec §7: ParseError surfaces to the loader
// caller, never to the reducer).
type ParseError struct {
	Field   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("ruleset: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("ruleset: %s", e.Message)
}
