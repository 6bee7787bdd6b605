package engine

import "github.com/signalnine/cardrules/ruleset"

// DeclarationStatus is one declare action's current legality for a
// specific player: whether it's their turn (or an all_players phase),
// the action's own Condition holds, and the player is seated and
// connected.
type DeclarationStatus struct {
	ActionName string
	Enabled    bool
}

// ValidDeclarations reports every ActionDecl in the current phase along
// with whether playerID may declare it right now — every declared
// action is returned, not just the enabled ones, so a client can render
// a disabled option rather than silently omit it. Enabled requires (a)
// turn ownership (isPlayersTurn, which already passes every seated
// player in an all_players phase), (b) the declaration's own Condition
// (empty means always), and (c) the player being seated and connected.
// The generic mechanics (play_card, draw_card, end_turn, advance_phase)
// are validated structurally in reducer.go instead of being enumerated
// here.
func ValidDeclarations(state *CardGameState, playerID string) ([]DeclarationStatus, error) {
	phase, ok := state.Ruleset.Phase(state.CurrentPhase)
	if !ok {
		return nil, invariantf("current phase %q is not defined in the ruleset", state.CurrentPhase)
	}

	idx := playerIndexOf(state, playerID)
	seatedAndConnected := idx >= 0 && state.Players[idx].Connected
	turnOK := isPlayersTurn(state, playerID)

	// In an all_players phase a Condition referencing current_player.*
	// must resolve against playerID's own index, not whatever
	// CurrentPlayerIndex the phase happens to carry — mirrors the same
	// rebind reduceDeclare applies before running the declaration itself.
	condState := state
	if idx >= 0 && phase.Kind == ruleset.PhaseAllPlayers {
		rebound := *state
		rebound.CurrentPlayerIndex = idx
		condState = &rebound
	}

	var out []DeclarationStatus
	for _, decl := range phase.Actions {
		enabled := seatedAndConnected && turnOK
		if enabled && decl.Condition != "" {
			ok, err := EvalCondition(decl.Condition, condState, nil)
			if err != nil {
				return nil, err
			}
			enabled = ok
		}
		out = append(out, DeclarationStatus{ActionName: decl.Name, Enabled: enabled})
	}
	return out, nil
}

// findActionDecl locates a phase's ActionDecl by name.
func findActionDecl(phase ruleset.Phase, name string) (ruleset.ActionDecl, bool) {
	for _, d := range phase.Actions {
		if d.Name == name {
			return d, true
		}
	}
	return ruleset.ActionDecl{}, false
}

// isPlayersTurn reports whether playerID is the acting player right
// now. Phases that aren't turn-based (automatic, all-players) never
// gate on turn order, so every seated player passes.
func isPlayersTurn(state *CardGameState, playerID string) bool {
	phase, ok := state.Ruleset.Phase(state.CurrentPhase)
	if !ok || phase.Kind != ruleset.PhaseTurnBased {
		return true
	}
	return state.currentPlayerID() == playerID
}

func playerIndexOf(state *CardGameState, playerID string) int {
	for i, p := range state.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
