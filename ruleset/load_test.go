package ruleset

import "testing"

func minimalDocument() []byte {
	return []byte(`{
		"meta": {"name": "Test Game", "slug": "test-game", "version": "1.0.0", "players": {"min": 2, "max": 2}},
		"deck": {"preset": "standard_52"},
		"zones": [
			{"name": "deck", "visibility": "hidden"},
			{"name": "hand", "visibility": "owner_only", "owners": ["player"]}
		],
		"roles": [{"name": "player", "isHuman": true, "count": -1}],
		"phases": [{"name": "deal", "kind": "automatic", "transitions": []}],
		"scoring": {"method": "0"}
	}`)
}

func TestLoadValidDocument(t *testing.T) {
	rs, err := Load(minimalDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Meta.Slug != "test-game" {
		t.Errorf("got slug %q, want test-game", rs.Meta.Slug)
	}
	if rs.Deck.Copies != 1 {
		t.Errorf("expected default Copies to be 1, got %d", rs.Deck.Copies)
	}
	if z, ok := rs.Zone("hand"); !ok || z.Visibility.Kind != VisibilityOwnerOnly {
		t.Errorf("hand zone not parsed as owner_only: %+v", z)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	doc := []byte(`{
		"meta": {"name": "Test", "slug": "test", "version": "1.0.0", "players": {"min": 1, "max": 1}},
		"deck": {"preset": "standard_52"},
		"zones": [{"name": "deck", "visibility": "hidden"}],
		"roles": [{"name": "player", "isHuman": true, "count": 1}],
		"phases": [{"name": "deal", "kind": "automatic"}],
		"scoring": {},
		"bogusField": true
	}`)
	if _, err := Load(doc); err == nil {
		t.Fatalf("expected an error for an unknown top-level field")
	}
}

func TestLoadRejectsTrailingData(t *testing.T) {
	doc := append(minimalDocument(), []byte(`{}`)...)
	if _, err := Load(doc); err == nil {
		t.Fatalf("expected an error for trailing data after the document")
	}
}

func TestLoadRejectsStructurallyInvalidDocument(t *testing.T) {
	doc := []byte(`{
		"meta": {"name": "Bad", "slug": "Bad Slug", "version": "v1", "players": {"min": 0, "max": 0}},
		"deck": {},
		"zones": [],
		"roles": [],
		"phases": [],
		"scoring": {}
	}`)
	_, err := Load(doc)
	if err == nil {
		t.Fatalf("expected validation errors to surface as a Load error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("expected a *ParseError, got %T", err)
	}
}

func TestLoadRespectsExplicitCopies(t *testing.T) {
	doc := []byte(`{
		"meta": {"name": "Test", "slug": "test", "version": "1.0.0", "players": {"min": 1, "max": 1}},
		"deck": {"preset": "standard_52", "copies": 2},
		"zones": [{"name": "deck", "visibility": "hidden"}],
		"roles": [{"name": "player", "isHuman": true, "count": 1}],
		"phases": [{"name": "deal", "kind": "automatic"}],
		"scoring": {}
	}`)
	rs, err := Load(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs.Deck.Copies != 2 {
		t.Errorf("got Copies %d, want 2", rs.Deck.Copies)
	}
}
