package presets

import (
	"testing"

	"github.com/signalnine/cardrules/engine"
	"github.com/signalnine/cardrules/ruleset"
)

// TestWarRevealIsAllPlayersAndResolvesOnBothReady exercises War's reveal
// phase end to end: it must be an all_players phase (neither seat waits
// on the other), and a round only resolves once both players have
// declared "ready" — the scenario an all_players phase kind exists for.
func TestWarRevealIsAllPlayersAndResolvesOnBothReady(t *testing.T) {
	rs := War()
	reduce := engine.CreateReducer()

	state, err := engine.CreateInitialState(rs, 42, []string{"p0", "p1"}, []string{"P0", "P1"})
	if err != nil {
		t.Fatalf("CreateInitialState: %v", err)
	}
	state, err = reduce(state, engine.Action{Kind: engine.ActionStartGame, PlayerID: "p0"})
	if err != nil {
		t.Fatalf("start_game: %v", err)
	}
	if state.CurrentPhase != "reveal" {
		t.Fatalf("expected to land on reveal after dealing, got %q", state.CurrentPhase)
	}
	phase, ok := rs.Phase("reveal")
	if !ok || phase.Kind != ruleset.PhaseAllPlayers {
		t.Fatalf("expected reveal to be an all_players phase, got kind %q", phase.Kind)
	}

	beforeTotal := totalWarCards(state)

	view0 := engine.CreatePlayerView(state, "p0")
	if !view0.IsMyTurn {
		t.Errorf("expected IsMyTurn true for p0 in an all_players phase")
	}
	view1 := engine.CreatePlayerView(state, "p1")
	if !view1.IsMyTurn {
		t.Errorf("expected IsMyTurn true for p1 in an all_players phase")
	}

	after0, err := reduce(state, engine.Action{Kind: engine.ActionDeclare, PlayerID: "p0", Declaration: "ready"})
	if err != nil {
		t.Fatalf("p0 ready: %v", err)
	}
	if after0.Version == state.Version {
		t.Fatalf("p0's ready was rejected")
	}
	if after0.CurrentPhase != "reveal" {
		t.Fatalf("a single ready must not resolve the round, got phase %q", after0.CurrentPhase)
	}
	if n := len(after0.Zones["ready:0"].Cards); n != 1 {
		t.Errorf("expected p0's ready zone to hold 1 card, got %d", n)
	}

	// p0 can't ready twice in the same round.
	stuck, err := reduce(after0, engine.Action{Kind: engine.ActionDeclare, PlayerID: "p0", Declaration: "ready"})
	if err != nil {
		t.Fatalf("second p0 ready: %v", err)
	}
	if stuck.Version != after0.Version {
		t.Errorf("expected a second ready from the same player this round to be rejected")
	}

	after1, err := reduce(after0, engine.Action{Kind: engine.ActionDeclare, PlayerID: "p1", Declaration: "ready"})
	if err != nil {
		t.Fatalf("p1 ready: %v", err)
	}
	if after1.Version == after0.Version {
		t.Fatalf("p1's ready was rejected")
	}
	if len(after1.Zones["ready:0"].Cards) != 0 || len(after1.Zones["ready:1"].Cards) != 0 {
		t.Errorf("expected both ready zones cleared once the round resolves")
	}
	if after1.CurrentPhase != "reveal" && after1.CurrentPhase != "game_over" {
		t.Errorf("expected the round to resolve back to reveal (or finish), got %q", after1.CurrentPhase)
	}

	if got := totalWarCards(after1); got != beforeTotal {
		t.Errorf("card count not conserved across a round: before %d, after %d", beforeTotal, got)
	}
}

func totalWarCards(state *engine.CardGameState) int {
	total := 0
	for _, z := range state.Zones {
		total += len(z.Cards)
	}
	return total
}
