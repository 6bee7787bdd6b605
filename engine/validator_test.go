package engine

import (
	"testing"

	"github.com/signalnine/cardrules/ruleset"
)

func conditionalDeclareRuleset() *ruleset.Ruleset {
	return &ruleset.Ruleset{
		Meta: ruleset.Meta{Name: "Test", Slug: "test-validator", Version: "1.0.0", Players: ruleset.PlayerRange{Min: 2, Max: 2}},
		Deck: ruleset.Deck{Preset: "standard_52"},
		Zones: []ruleset.Zone{
			{Name: "deck"},
			{Name: "hand", Owners: []string{"player"}},
		},
		Roles: []ruleset.Role{
			{Name: "player", IsHuman: true, Count: ruleset.RoleCountPerPlayer},
		},
		Phases: []ruleset.Phase{
			{
				Name: "play", Kind: ruleset.PhaseTurnBased,
				Actions: []ruleset.ActionDecl{
					{Name: "always", Effects: []string{"end_turn()"}},
					{Name: "needs_cards", Condition: "card_count(current_player.hand) > 0", Effects: []string{"end_turn()"}},
				},
			},
		},
	}
}

func TestValidDeclarationsReportsEveryDeclaredActionGatedOnTurnAndCondition(t *testing.T) {
	state, err := CreateInitialState(conditionalDeclareRuleset(), 1, []string{"a", "b"}, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("CreateInitialState: %v", err)
	}
	state.CurrentPhase = "play"
	state.Status = StatusInProgress
	state.CurrentPlayerIndex = 0
	// CreateInitialState deals nothing, so give a's hand a card for
	// needs_cards's Condition to hold.
	state.Zones["hand:0"].Cards = []Card{{ID: "held", Suit: "spades", Rank: "2"}}

	statuses, err := ValidDeclarations(state, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected both declared actions reported, got %d", len(statuses))
	}
	byName := map[string]bool{}
	for _, s := range statuses {
		byName[s.ActionName] = s.Enabled
	}
	if !byName["always"] {
		t.Errorf("expected 'always' enabled for the player whose turn it is")
	}
	if !byName["needs_cards"] {
		t.Errorf("expected 'needs_cards' enabled when the player holds cards")
	}

	// Not this player's turn: every action reports disabled, but both
	// are still present in the result.
	statuses, err = ValidDeclarations(state, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("expected both declared actions reported even when disabled, got %d", len(statuses))
	}
	for _, s := range statuses {
		if s.Enabled {
			t.Errorf("expected %q disabled for a player who isn't up", s.ActionName)
		}
	}

	// An empty hand fails needs_cards's Condition but not always's.
	state.Zones["hand:0"].Cards = nil
	statuses, err = ValidDeclarations(state, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byName = map[string]bool{}
	for _, s := range statuses {
		byName[s.ActionName] = s.Enabled
	}
	if !byName["always"] {
		t.Errorf("expected 'always' to stay enabled regardless of Condition on the other action")
	}
	if byName["needs_cards"] {
		t.Errorf("expected 'needs_cards' disabled once the player's hand is empty")
	}
}

func TestValidDeclarationsDisablesDisconnectedPlayer(t *testing.T) {
	state, err := CreateInitialState(conditionalDeclareRuleset(), 1, []string{"a", "b"}, []string{"Alice", "Bob"})
	if err != nil {
		t.Fatalf("CreateInitialState: %v", err)
	}
	state.CurrentPhase = "play"
	state.Status = StatusInProgress
	state.CurrentPlayerIndex = 0
	state.Players[0].Connected = false

	statuses, err := ValidDeclarations(state, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range statuses {
		if s.Enabled {
			t.Errorf("expected %q disabled for a disconnected player even on their own turn", s.ActionName)
		}
	}
}

func TestReduceDeclareRejectsDisconnectedPlayer(t *testing.T) {
	state, reduce := newGame(t)
	state, err := reduce(state, Action{Kind: ActionStartGame, PlayerID: "a"})
	if err != nil {
		t.Fatalf("start_game: %v", err)
	}
	state.Players[0].Connected = false

	next, err := reduce(state, Action{Kind: ActionDeclare, PlayerID: "a", Declaration: "pass"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != state {
		t.Errorf("expected a disconnected player's declare to be rejected")
	}
}
