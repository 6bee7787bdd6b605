package engine

import (
	"testing"

	"github.com/signalnine/cardrules/ruleset"
)

func testRuleset() *ruleset.Ruleset {
	return &ruleset.Ruleset{
		Meta: ruleset.Meta{Name: "Test", Slug: "test-init", Version: "1.0.0", Players: ruleset.PlayerRange{Min: 2, Max: 2}},
		Deck: ruleset.Deck{Preset: "standard_52"},
		Zones: []ruleset.Zone{
			{Name: "deck"},
			{Name: "hand", Owners: []string{"player"}},
			{Name: "dealer_hand", Owners: []string{"dealer"}},
		},
		Roles: []ruleset.Role{
			{Name: "player", IsHuman: true, Count: ruleset.RoleCountPerPlayer},
			{Name: "dealer", IsHuman: false, Count: 1},
		},
		Phases:           []ruleset.Phase{{Name: "deal", Kind: ruleset.PhaseAutomatic}},
		InitialVariables: map[string]float64{"rounds_dealt": 0},
	}
}

func TestCreateInitialStateSeatsPlayers(t *testing.T) {
	rs := testRuleset()
	state, err := CreateInitialState(rs, 1, []string{"a", "b"}, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Players) != 2 || state.Players[0].ID != "a" || state.Players[1].Name != "Bob" {
		t.Errorf("players not seated correctly: %+v", state.Players)
	}
	if state.Status != StatusWaiting {
		t.Errorf("got status %v, want StatusWaiting", state.Status)
	}
	if state.CurrentPhase != "deal" {
		t.Errorf("got phase %q, want deal", state.CurrentPhase)
	}
}

func TestCreateInitialStateExpandsPerPlayerZones(t *testing.T) {
	rs := testRuleset()
	state, err := CreateInitialState(rs, 1, []string{"a", "b"}, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := state.Zones["hand:0"]; !ok {
		t.Errorf("expected per-player zone hand:0 to exist")
	}
	if _, ok := state.Zones["hand:1"]; !ok {
		t.Errorf("expected per-player zone hand:1 to exist")
	}
	if _, ok := state.Zones["hand"]; ok {
		t.Errorf("did not expect a shared hand zone alongside per-player instances")
	}
	if _, ok := state.Zones["dealer_hand"]; !ok {
		t.Errorf("expected a single shared dealer_hand zone since dealer is not per-player")
	}
}

func TestCreateInitialStateDealsFullDeck(t *testing.T) {
	rs := testRuleset()
	state, err := CreateInitialState(rs, 1, []string{"a", "b"}, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(state.Zones["deck"].Cards); got != 52 {
		t.Errorf("got %d cards in deck, want 52", got)
	}
}

func TestCreateInitialStateCardIDsAreDeterministic(t *testing.T) {
	rs := testRuleset()
	a, err := CreateInitialState(rs, 1, []string{"a", "b"}, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := CreateInitialState(rs, 999, []string{"a", "b"}, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Zones["deck"].Cards[0].ID != b.Zones["deck"].Cards[0].ID {
		t.Errorf("card ID at the same deck position differed across seeds: %q vs %q",
			a.Zones["deck"].Cards[0].ID, b.Zones["deck"].Cards[0].ID)
	}
}

func TestCreateInitialStateMismatchedPlayerSlices(t *testing.T) {
	rs := testRuleset()
	if _, err := CreateInitialState(rs, 1, []string{"a", "b"}, []string{"Alice"}); err == nil {
		t.Fatalf("expected an error when playerIDs and playerNames lengths differ")
	}
}

func TestCreateInitialStateUnoDeckIsAlways108(t *testing.T) {
	rs := testRuleset()
	rs.Deck = ruleset.Deck{Preset: "uno_108", Copies: 3}
	state, err := CreateInitialState(rs, 1, []string{"a", "b"}, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(state.Zones["deck"].Cards); got != 108 {
		t.Errorf("got %d cards, want 108 regardless of Copies", got)
	}
}

func TestCreateInitialStateRejectsUnknownPreset(t *testing.T) {
	rs := testRuleset()
	rs.Deck = ruleset.Deck{Preset: "bogus"}
	if _, err := CreateInitialState(rs, 1, []string{"a", "b"}, []string{"Alice", "Bob"}); err == nil {
		t.Fatalf("expected an error for an unknown deck preset")
	}
}
