package engine

import "github.com/signalnine/cardrules/ruleset"

// Reducer is the pure (state, action) -> state function spec §4.H
// describes. It never panics and never returns an error for bad client
// input — an action that fails any structural or ruleset-author-facing
// check is an ActionRejection, returned as the original state unchanged
// (same pointer, nil error). A non-nil error only ever comes from a
// ruleset-authored expression itself failing (*ExpressionError) or the
// engine's own bookkeeping disagreeing with itself (*InvariantViolation).
type Reducer func(state *CardGameState, action Action) (*CardGameState, error)

// CreateReducer returns a Reducer. It registers the default builtin set
// if the registry is currently empty, so a caller that never touched
// ClearAllBuiltins/RegisterAllDefaults gets a working registry for free.
func CreateReducer() Reducer {
	if _, ok := lookupBuiltin("card_count"); !ok {
		RegisterAllDefaults()
	}
	return reduce
}

func reduce(state *CardGameState, action Action) (*CardGameState, error) {
	switch action.Kind {
	case ActionJoin:
		return reduceJoin(state, action)
	case ActionLeave:
		return reduceLeave(state, action)
	case ActionStartGame:
		return reduceStartGame(state, action)
	case ActionPlayCard:
		return reducePlayCard(state, action)
	case ActionDrawCard:
		return reduceDrawCard(state, action)
	case ActionDeclare:
		return reduceDeclare(state, action)
	case ActionEndTurn:
		return reduceEndTurn(state, action)
	case ActionAdvancePhase:
		return reduceAdvancePhase(state, action)
	case ActionResetRound:
		return reduceResetRound(state, action)
	default:
		return state, nil
	}
}

// reject is a no-op acceptance failure: same state, no error, no log
// entry, no version bump. Every "is this a legal action" check in this
// file funnels bad untrusted input here rather than raising an error.
func reject(state *CardGameState) (*CardGameState, error) { return state, nil }

func commit(state *CardGameState, action Action, transitions []TransitionRecord) *CardGameState {
	state.Version++
	state.ActionLog = append(state.ActionLog, LoggedAction{Action: action, Version: state.Version, Transitions: transitions})
	return state
}

func reduceJoin(state *CardGameState, action Action) (*CardGameState, error) {
	if state.Status != StatusWaiting {
		return reject(state)
	}
	if playerIndexOf(state, action.PlayerID) >= 0 {
		return reject(state)
	}
	if len(state.Players) >= state.Ruleset.Meta.Players.Max {
		return reject(state)
	}
	next := state.clone()
	next.Players = append(next.Players, Player{ID: action.PlayerID, Name: action.Name, Connected: true, Role: primaryHumanRole(state.Ruleset)})
	return commit(next, action, nil), nil
}

func reduceLeave(state *CardGameState, action Action) (*CardGameState, error) {
	idx := playerIndexOf(state, action.PlayerID)
	if idx < 0 {
		return reject(state)
	}
	next := state.clone()
	next.Players[idx].Connected = false
	return commit(next, action, nil), nil
}

func reduceStartGame(state *CardGameState, action Action) (*CardGameState, error) {
	if state.Status != StatusWaiting {
		return reject(state)
	}
	if len(state.Players) < state.Ruleset.Meta.Players.Min {
		return reject(state)
	}
	next := state.clone()
	next.Status = StatusInProgress

	advanced, transitions, err := AdvancePhase(next)
	if err != nil {
		return nil, err
	}
	return commit(advanced, action, transitions), nil
}

// resolveClientZone maps a client-supplied base zone name to the
// concrete zone instance: the shared zone of that name if one exists,
// otherwise the acting player's own per-player instance.
func resolveClientZone(state *CardGameState, base string, playerIndex int) *ZoneState {
	if z, ok := state.Zones[base]; ok {
		return z
	}
	return state.Zones[perPlayerZoneName(base, playerIndex)]
}

func reducePlayCard(state *CardGameState, action Action) (*CardGameState, error) {
	if state.Status != StatusInProgress {
		return reject(state)
	}
	if !isPlayersTurn(state, action.PlayerID) {
		return reject(state)
	}
	playerIdx := playerIndexOf(state, action.PlayerID)
	if playerIdx < 0 {
		return reject(state)
	}

	next := state.clone()
	from := resolveClientZone(next, action.FromZone, playerIdx)
	to := resolveClientZone(next, action.ToZone, playerIdx)
	if from == nil || to == nil {
		return reject(state)
	}

	cardIdx := -1
	for i, c := range from.Cards {
		if c.ID == action.CardID {
			cardIdx = i
			break
		}
	}
	if cardIdx < 0 {
		return reject(state)
	}

	card := from.Cards[cardIdx]
	from.Cards = append(from.Cards[:cardIdx], from.Cards[cardIdx+1:]...)
	// play_card appends to the end of the destination zone — the one
	// documented exception to "index 0 is top" every other mutation in
	// this package follows. See DESIGN.md.
	appendCardEnd(to, card)
	next.Trick = append(next.Trick, TrickEntry{PlayerIndex: playerIdx, Card: card})

	advanced, transitions, err := AdvancePhase(next)
	if err != nil {
		return nil, err
	}
	return commit(advanced, action, transitions), nil
}

func reduceDrawCard(state *CardGameState, action Action) (*CardGameState, error) {
	if state.Status != StatusInProgress {
		return reject(state)
	}
	playerIdx := playerIndexOf(state, action.PlayerID)
	if playerIdx < 0 {
		return reject(state)
	}

	next := state.clone()
	from := resolveClientZone(next, action.FromZone, playerIdx)
	to := resolveClientZone(next, action.ToZone, playerIdx)
	if from == nil || to == nil {
		return reject(state)
	}

	count := action.Count
	if count < 1 {
		count = 1
	}
	moveTop(from, to, count)

	advanced, transitions, err := AdvancePhase(next)
	if err != nil {
		return nil, err
	}
	return commit(advanced, action, transitions), nil
}

func reduceDeclare(state *CardGameState, action Action) (*CardGameState, error) {
	if state.Status != StatusInProgress {
		return reject(state)
	}
	if !isPlayersTurn(state, action.PlayerID) {
		return reject(state)
	}
	playerIdx := playerIndexOf(state, action.PlayerID)
	if playerIdx < 0 || !state.Players[playerIdx].Connected {
		return reject(state)
	}
	phase, ok := state.Ruleset.Phase(state.CurrentPhase)
	if !ok {
		return nil, invariantf("current phase %q is not defined in the ruleset", state.CurrentPhase)
	}
	decl, ok := findActionDecl(phase, action.Declaration)
	if !ok {
		return reject(state)
	}
	// In an all_players phase every seated player declares independently
	// and CurrentPlayerIndex carries no "whose turn" meaning of its own —
	// rebind it to the declaring player (both for the Condition check and
	// for the effects below) so current_player.<zone> resolves to the
	// actor rather than whatever index the phase happened to start with.
	condState := state
	if phase.Kind == ruleset.PhaseAllPlayers {
		rebound := *state
		rebound.CurrentPlayerIndex = playerIdx
		condState = &rebound
	}
	if decl.Condition != "" {
		ok, err := EvalCondition(decl.Condition, condState, action.Params)
		if err != nil {
			return nil, err
		}
		if !ok {
			return reject(state)
		}
	}

	next := state.clone()
	// Restore CurrentPlayerIndex once the effects finish so turn order
	// outside this phase is untouched.
	if phase.Kind == ruleset.PhaseAllPlayers {
		saved := next.CurrentPlayerIndex
		next.CurrentPlayerIndex = playerIdx
		for _, effectSrc := range decl.Effects {
			result, err := EvalEffect(effectSrc, next, action.Params)
			if err != nil {
				return nil, err
			}
			next = result
		}
		next.CurrentPlayerIndex = saved
	} else {
		for _, effectSrc := range decl.Effects {
			result, err := EvalEffect(effectSrc, next, action.Params)
			if err != nil {
				return nil, err
			}
			next = result
		}
	}

	advanced, transitions, err := AdvancePhase(next)
	if err != nil {
		return nil, err
	}
	return commit(advanced, action, transitions), nil
}

func reduceEndTurn(state *CardGameState, action Action) (*CardGameState, error) {
	if state.Status != StatusInProgress {
		return reject(state)
	}
	if !isPlayersTurn(state, action.PlayerID) {
		return reject(state)
	}
	next := state.clone()
	advanceTurn(next)

	advanced, transitions, err := AdvancePhase(next)
	if err != nil {
		return nil, err
	}
	return commit(advanced, action, transitions), nil
}

func reduceAdvancePhase(state *CardGameState, action Action) (*CardGameState, error) {
	if state.Status != StatusInProgress {
		return reject(state)
	}
	next := state.clone()
	advanced, transitions, err := AdvancePhase(next)
	if err != nil {
		return nil, err
	}
	return commit(advanced, action, transitions), nil
}

func reduceResetRound(state *CardGameState, action Action) (*CardGameState, error) {
	if state.Status == StatusWaiting {
		return reject(state)
	}
	next := state.clone()
	resetRoundState(next)
	next.Status = StatusInProgress

	advanced, transitions, err := AdvancePhase(next)
	if err != nil {
		return nil, err
	}
	return commit(advanced, action, transitions), nil
}
