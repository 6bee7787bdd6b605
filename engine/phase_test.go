package engine

import (
	"testing"

	"github.com/signalnine/cardrules/ruleset"
)

func phaseTestState(rs *ruleset.Ruleset) *CardGameState {
	return &CardGameState{
		Ruleset:      rs,
		Status:       StatusInProgress,
		Players:      []Player{{ID: "a"}, {ID: "b"}},
		Zones:        map[string]*ZoneState{},
		CurrentPhase: rs.Phases[0].Name,
		Variables:    map[string]float64{},
		Scores:       map[string]float64{},
	}
}

func TestAdvancePhaseStopsWhenNoTransitionSatisfied(t *testing.T) {
	rs := &ruleset.Ruleset{
		Phases: []ruleset.Phase{
			{Name: "waiting_room", Kind: ruleset.PhaseTurnBased,
				Transitions: []ruleset.Transition{{To: "next", When: "1 == 2"}}},
			{Name: "next", Kind: ruleset.PhaseAutomatic},
		},
	}
	state := phaseTestState(rs)
	next, transitions, err := AdvancePhase(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.CurrentPhase != "waiting_room" {
		t.Errorf("got phase %q, want waiting_room", next.CurrentPhase)
	}
	if len(transitions) != 0 {
		t.Errorf("expected no transitions recorded, got %+v", transitions)
	}
}

func TestAdvancePhaseChainsUnconditionalTransitions(t *testing.T) {
	rs := &ruleset.Ruleset{
		Phases: []ruleset.Phase{
			{Name: "a", Kind: ruleset.PhaseAutomatic, Transitions: []ruleset.Transition{{To: "b", When: ""}}},
			{Name: "b", Kind: ruleset.PhaseAutomatic, Transitions: []ruleset.Transition{{To: "c", When: ""}}},
			{Name: "c", Kind: ruleset.PhaseAutomatic},
		},
	}
	state := phaseTestState(rs)
	next, transitions, err := AdvancePhase(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.CurrentPhase != "c" {
		t.Errorf("got phase %q, want c", next.CurrentPhase)
	}
	if len(transitions) != 2 {
		t.Errorf("got %d transitions, want 2: %+v", len(transitions), transitions)
	}
}

func TestAdvancePhaseRunsAutomaticSequence(t *testing.T) {
	rs := &ruleset.Ruleset{
		Phases: []ruleset.Phase{
			{Name: "a", Kind: ruleset.PhaseAutomatic, AutomaticSequence: []string{"set_var(x, 5)"}},
		},
	}
	state := phaseTestState(rs)
	next, _, err := AdvancePhase(state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Variables["x"] != 5 {
		t.Errorf("got x=%v, want 5", next.Variables["x"])
	}
}

// TestAdvancePhaseBudgetExceededOnCycle is a regression test for the bug
// found in an early draft of the War preset: a chain of unconditional
// automatic transitions with no terminal guard must be diagnosed as an
// InvariantViolation rather than hang, and must not silently stop early.
func TestAdvancePhaseBudgetExceededOnCycle(t *testing.T) {
	rs := &ruleset.Ruleset{
		Phases: []ruleset.Phase{
			{Name: "ping", Kind: ruleset.PhaseAutomatic, Transitions: []ruleset.Transition{{To: "pong", When: ""}}},
			{Name: "pong", Kind: ruleset.PhaseAutomatic, Transitions: []ruleset.Transition{{To: "ping", When: ""}}},
		},
	}
	state := phaseTestState(rs)
	_, _, err := AdvancePhase(state)
	if err == nil {
		t.Fatalf("expected an error for an unconditional two-phase cycle")
	}
	if _, ok := err.(*InvariantViolation); !ok {
		t.Errorf("expected *InvariantViolation, got %T: %v", err, err)
	}
}

// TestAdvancePhaseBudgetExceededOnSteadyStateGuard is a regression
// fixture for a related bug: a phase whose own transition guard is
// re-satisfied by the resting state between actions (not just right
// after the state change that was meant to trigger it) bounces against a
// neighboring phase that routes straight back to it, and AdvancePhase
// must stop that with a budget-exceeded InvariantViolation.
func TestAdvancePhaseBudgetExceededOnSteadyStateGuard(t *testing.T) {
	rs := &ruleset.Ruleset{
		Phases: []ruleset.Phase{
			// battle is always empty in this fixture (no AutomaticSequence
			// ever adds to it), so this guard is true on every hop — the
			// shape that made War's original check_winner design spin.
			{Name: "reveal", Kind: ruleset.PhaseTurnBased,
				Transitions: []ruleset.Transition{{To: "check", When: "card_count(battle) == 0"}}},
			{Name: "check", Kind: ruleset.PhaseAutomatic,
				Transitions: []ruleset.Transition{
					{To: "done", When: "1 == 2"},
					{To: "reveal", When: ""},
				}},
			{Name: "done", Kind: ruleset.PhaseAutomatic},
		},
	}
	state := phaseTestState(rs)
	state.Zones["battle"] = &ZoneState{Name: "battle"}
	_, _, err := AdvancePhase(state)
	if err == nil {
		t.Fatalf("expected this fixture to demonstrate the budget-exceeded failure mode")
	}
	if _, ok := err.(*InvariantViolation); !ok {
		t.Errorf("expected *InvariantViolation, got %T: %v", err, err)
	}
}
