package engine

import "github.com/signalnine/cardrules/ruleset"

// maxPhaseHops bounds how many automatic phase transitions one call to
// AdvancePhase will follow before giving up. Spec requires at least 50;
// an automatic-sequence ruleset that needs more hops than this to reach
// a sticky phase is almost certainly an infinite transition loop, which
// this budget turns into a diagnosable InvariantViolation instead of a
// hang.
const maxPhaseHops = 50

// AdvancePhase runs the current phase's automatic effect sequence (if
// any), then repeatedly evaluates its transitions until one fires to a
// phase that isn't itself immediately ready to transition again, or
// until no transition's guard is satisfied. It returns the resulting
// state and the ordered list of transitions taken.
func AdvancePhase(state *CardGameState) (*CardGameState, []TransitionRecord, error) {
	var transitions []TransitionRecord

	for hop := 0; ; hop++ {
		if hop >= maxPhaseHops {
			return nil, nil, invariantf("phase transition budget (%d) exceeded starting from phase %q — likely a transition cycle with no terminal guard", maxPhaseHops, state.CurrentPhase)
		}

		phase, ok := state.Ruleset.Phase(state.CurrentPhase)
		if !ok {
			return nil, nil, invariantf("current phase %q is not defined in the ruleset", state.CurrentPhase)
		}

		for _, effectSrc := range phase.AutomaticSequence {
			next, err := EvalEffect(effectSrc, state, nil)
			if err != nil {
				return nil, nil, err
			}
			state = next
		}

		to, guard, err := firstSatisfiedTransition(state, phase)
		if err != nil {
			return nil, nil, err
		}
		if to == "" {
			return state, transitions, nil
		}

		transitions = append(transitions, TransitionRecord{From: phase.Name, To: to, Guard: guard})
		state.CurrentPhase = to
		state.TurnsTakenThisPhase = 0
	}
}

// firstSatisfiedTransition evaluates a phase's transitions in document
// order and returns the first whose guard is empty (an unconditional
// transition) or evaluates truthy. to=="" means none fired.
func firstSatisfiedTransition(state *CardGameState, phase ruleset.Phase) (to string, guard string, err error) {
	for _, t := range phase.Transitions {
		if t.When == "" {
			return t.To, "", nil
		}
		ok, err := EvalCondition(t.When, state, nil)
		if err != nil {
			return "", "", err
		}
		if ok {
			return t.To, t.When, nil
		}
	}
	return "", "", nil
}
