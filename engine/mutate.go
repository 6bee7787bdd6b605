package engine

import (
	"strconv"

	"github.com/signalnine/cardrules/ruleset"
)

// prependCard inserts c at index 0, pushing every other card down — the
// engine-wide convention that index 0 is a zone's "top".
func prependCard(z *ZoneState, c Card) {
	z.Cards = append(z.Cards, Card{})
	copy(z.Cards[1:], z.Cards[:len(z.Cards)-1])
	z.Cards[0] = c
}

// appendCardEnd inserts c at the end of the zone. Used by the play_card
// reducer path (reducer.go) and by moveToBottom below — see DESIGN.md's
// note on the documented play_card append-to-end exception to the
// "index 0 is top" convention the other mutations in this file follow.
func appendCardEnd(z *ZoneState, c Card) {
	z.Cards = append(z.Cards, c)
}

// moveTop moves up to n cards from the top of from to the top of to,
// one at a time (so a 1-card move lands on top, a 2-card move lands
// with the first-moved card second from top). Returns the number
// actually moved, which is less than n if from runs out.
func moveTop(from, to *ZoneState, n int) int {
	moved := 0
	for moved < n && len(from.Cards) > 0 {
		c := from.Cards[0]
		from.Cards = from.Cards[1:]
		prependCard(to, c)
		moved++
	}
	return moved
}

// moveToBottom moves up to n cards from the top of from to the bottom
// (end) of to, one at a time. Needed for games where captured cards go
// under the rest of a pile rather than on top of it (War's winner
// takes the battle cards to the bottom of their draw pile).
func moveToBottom(from, to *ZoneState, n int) int {
	moved := 0
	for moved < n && len(from.Cards) > 0 {
		c := from.Cards[0]
		from.Cards = from.Cards[1:]
		appendCardEnd(to, c)
		moved++
	}
	return moved
}

// moveAll moves every card from from to to, preserving from's top-first
// order so from's former top card becomes to's new top card.
func moveAll(from, to *ZoneState) int {
	n := len(from.Cards)
	for i := len(from.Cards) - 1; i >= 0; i-- {
		prependCard(to, from.Cards[i])
	}
	from.Cards = nil
	return n
}

// advanceTurn moves CurrentPlayerIndex one seat in TurnDirection,
// wrapping around, bumps TurnNumber, and counts this turn toward
// TurnsTakenThisPhase (reset to 0 whenever a phase transition fires or
// a round resets, never here — see phase.go and resetRoundState). Both
// the end_turn effect builtin and the end_turn client action route
// through this.
func advanceTurn(state *CardGameState) {
	n := len(state.Players)
	if n == 0 {
		return
	}
	state.CurrentPlayerIndex = ((state.CurrentPlayerIndex+state.TurnDirection)%n + n) % n
	state.TurnNumber++
	state.TurnsTakenThisPhase++
}

func playerScoreKey(i int) string  { return "player_score:" + strconv.Itoa(i) }
func resultKey(i int) string       { return "result:" + strconv.Itoa(i) }

// hasDealerRole reports whether rs declares any non-human role — the
// "dealer" convention Blackjack and similar games use for a house seat
// that never takes a turn.
func hasDealerRole(rs *ruleset.Ruleset) bool {
	for _, r := range rs.Roles {
		if !r.IsHuman {
			return true
		}
	}
	return false
}

// calculateScores evaluates Scoring.Method once per player, with
// CurrentPlayerIndex temporarily rebound so current_player.<zone> in the
// method expression resolves to that player's own zones — generalizing
// the source's EvaluateContracts per-player/per-team scoring loop to an
// arbitrary ruleset-authored formula instead of a fixed bid/trick/bag
// calculation. When the ruleset declares a non-human (dealer-style)
// role, also writes "dealer_score" as the house's side of the same
// ledger: the negative of every player_score:i this round, so a
// casino-style ruleset's total payout nets to zero.
func calculateScores(state *CardGameState) error {
	if state.Ruleset.Scoring.Method == "" {
		return nil
	}
	saved := state.CurrentPlayerIndex
	defer func() { state.CurrentPlayerIndex = saved }()

	total := 0.0
	for i := range state.Players {
		state.CurrentPlayerIndex = i
		v, err := EvalValue(state.Ruleset.Scoring.Method, state, nil)
		if err != nil {
			return err
		}
		state.Scores[playerScoreKey(i)] = v
		total += v
	}
	if hasDealerRole(state.Ruleset) {
		state.Scores["dealer_score"] = -total
	}
	return nil
}

// determineWinners evaluates Scoring.WinCondition per player the same
// way calculateScores evaluates Method, also consulting BustCondition
// and TieCondition when the ruleset declares them, and records a
// result:i in {+1, 0, -1}: a bust always loses (-1) regardless of
// WinCondition; otherwise a win is +1, a tie is 0, and anything else is
// an ordinary loss (-1). Winning player IDs (result:i == 1) are
// collected into state.Winner.
func determineWinners(state *CardGameState) error {
	if state.Ruleset.Scoring.WinCondition == "" {
		return nil
	}
	saved := state.CurrentPlayerIndex
	defer func() { state.CurrentPlayerIndex = saved }()

	var winners []string
	for i, p := range state.Players {
		state.CurrentPlayerIndex = i

		if state.Ruleset.Scoring.BustCondition != "" {
			busted, err := EvalCondition(state.Ruleset.Scoring.BustCondition, state, nil)
			if err != nil {
				return err
			}
			if busted {
				state.Scores[resultKey(i)] = -1
				continue
			}
		}

		won, err := EvalCondition(state.Ruleset.Scoring.WinCondition, state, nil)
		if err != nil {
			return err
		}
		if won {
			state.Scores[resultKey(i)] = 1
			winners = append(winners, p.ID)
			continue
		}

		if state.Ruleset.Scoring.TieCondition != "" {
			tied, err := EvalCondition(state.Ruleset.Scoring.TieCondition, state, nil)
			if err != nil {
				return err
			}
			if tied {
				state.Scores[resultKey(i)] = 0
				continue
			}
		}

		state.Scores[resultKey(i)] = -1
	}
	if len(winners) > 0 {
		w := winners[0]
		for _, id := range winners[1:] {
			w += "," + id
		}
		state.Winner = w
	}
	return nil
}

// accumulateScores folds this round's player_score:i into the
// cross-round cumulative_score_i total, the one score family spec §9
// says must survive reset_round.
func accumulateScores(state *CardGameState) {
	for i := range state.Players {
		state.Scores[cumulativeScoreKey(i)] += state.Scores[playerScoreKey(i)]
	}
}

// resetRoundState clears round-scoped bookkeeping (player_score:i,
// result:i, variables, the trick-in-progress list) while preserving
// cumulative_score_i and restarting from the ruleset's first phase.
func resetRoundState(state *CardGameState) {
	for i := range state.Players {
		delete(state.Scores, playerScoreKey(i))
		delete(state.Scores, resultKey(i))
	}
	delete(state.Scores, "dealer_score")
	state.Variables = make(map[string]float64, len(state.Ruleset.InitialVariables))
	for k, v := range state.Ruleset.InitialVariables {
		state.Variables[k] = v
	}
	state.Trick = nil
	state.TurnNumber = 0
	state.TurnsTakenThisPhase = 0
	if len(state.Ruleset.Phases) > 0 {
		state.CurrentPhase = state.Ruleset.Phases[0].Name
	}
}
