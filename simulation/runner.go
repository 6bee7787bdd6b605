// Package simulation drives a ruleset through random playouts. It
// generalizes the teacher's RunSingleGame/RunBatch harness — which drove
// one fixed bytecode genome through an AI player — into something that
// takes any *ruleset.Ruleset and seed and plays it out using only the
// engine's own public surface (ValidDeclarations, CreateReducer, PRNG),
// the way spec.md's §8 invariant tests need to exercise every shipped
// preset without a human or a genome-specific driver.
package simulation

import (
	"strconv"

	"github.com/signalnine/cardrules/engine"
	"github.com/signalnine/cardrules/ruleset"
)

// GameMetrics holds per-game instrumentation counters, generalizing the
// teacher's decision/interaction counters to a ruleset-agnostic action
// stream: a "decision" is any point the playout had more than one
// candidate move to choose between.
type GameMetrics struct {
	TotalDecisions  uint64
	TotalValidMoves uint64
	ForcedDecisions uint64
	TotalActions    uint64
}

// GameResult holds the outcome of a single playout.
type GameResult struct {
	Winner    string
	TurnCount int
	Error     string
	Metrics   GameMetrics
}

// AggregatedStats summarizes multiple playouts of the same ruleset.
type AggregatedStats struct {
	TotalGames  uint32
	WinsByIndex map[int]uint32
	Draws       uint32
	Errors      uint32
	AvgTurns    float32
	MedianTurns uint32

	TotalDecisions  uint64
	TotalValidMoves uint64
	ForcedDecisions uint64
	TotalActions    uint64
}

// maxTurnsDefault bounds a single playout so a ruleset bug (a transition
// cycle that somehow dodges phase.go's own hop budget, or a genuinely
// unreachable win condition) surfaces as a capped "unfinished" result
// instead of hanging the harness.
const maxTurnsDefault = 10000

// maxStallActions bounds consecutive no-op (rejected) actions in a row
// before a playout gives up and reports a stall — a malformed ruleset
// whose ActionDecls and play_card/draw_card fallback both keep getting
// rejected would otherwise spin forever.
const maxStallActions = 50

// RunBatch plays numGames independent playouts of rs, each seeded from
// rng drawn off of the supplied seed, seating the ruleset's minimum
// player count, and aggregates the results.
func RunBatch(rs *ruleset.Ruleset, numGames int, seed uint64) AggregatedStats {
	return RunBatchWithPlayers(rs, numGames, seed, 0)
}

// RunBatchWithPlayers is RunBatch with an explicit seat count; numPlayers
// <= 0 falls back to the ruleset's minimum, same as RunBatch.
func RunBatchWithPlayers(rs *ruleset.Ruleset, numGames int, seed uint64, numPlayers int) AggregatedStats {
	seeder := engine.NewPRNG(seed)
	results := make([]GameResult, numGames)
	for i := 0; i < numGames; i++ {
		results[i] = RunRandomPlayoutWithPlayers(rs, seeder.Uint64(), numPlayers)
	}
	return aggregateResults(results)
}

// RunRandomPlayout seats the ruleset's minimum player count, starts the
// game, and repeatedly picks a uniformly random legal action — an
// enabled ActionDecl when the current phase offers any, otherwise a
// played or drawn card from the acting player's own zones — until the
// game finishes, a structural error surfaces, or the turn/stall budget
// is exceeded.
func RunRandomPlayout(rs *ruleset.Ruleset, seed uint64) GameResult {
	return RunRandomPlayoutWithPlayers(rs, seed, 0)
}

// RunRandomPlayoutWithPlayers is RunRandomPlayout with an explicit seat
// count; numPlayers <= 0 falls back to the ruleset's minimum.
func RunRandomPlayoutWithPlayers(rs *ruleset.Ruleset, seed uint64, numPlayers int) GameResult {
	var metrics GameMetrics

	if numPlayers <= 0 {
		numPlayers = rs.Meta.Players.Min
	}
	if numPlayers < 1 {
		numPlayers = 1
	}
	playerIDs := make([]string, numPlayers)
	playerNames := make([]string, numPlayers)
	for i := range playerIDs {
		playerIDs[i] = seatID(i)
		playerNames[i] = seatID(i)
	}

	state, err := engine.CreateInitialState(rs, seed, playerIDs, playerNames)
	if err != nil {
		return GameResult{Error: err.Error()}
	}

	reduce := engine.CreateReducer()
	rng := engine.NewPRNG(seed ^ 0xA5A5A5A5A5A5A5A5)

	state, err = reduce(state, engine.Action{Kind: engine.ActionStartGame})
	if err != nil {
		return GameResult{Error: err.Error()}
	}

	handZone, playZone := guessPlayZones(rs)

	stalled := 0
	turn := 0
	for state.Status != engine.StatusFinished && turn < maxTurnsDefault {
		action, numChoices, ok := pickAction(state, rs, rng, handZone, playZone)
		if !ok {
			return GameResult{TurnCount: turn, Metrics: metrics, Error: "no action available"}
		}

		metrics.TotalDecisions++
		metrics.TotalValidMoves += uint64(numChoices)
		if numChoices <= 1 {
			metrics.ForcedDecisions++
		}
		metrics.TotalActions++

		before := state
		next, err := reduce(state, action)
		if err != nil {
			return GameResult{TurnCount: turn, Metrics: metrics, Error: err.Error()}
		}
		if next == before {
			stalled++
			if stalled >= maxStallActions {
				return GameResult{TurnCount: turn, Metrics: metrics, Error: "stalled: no action made progress"}
			}
		} else {
			stalled = 0
		}
		state = next
		turn++
	}

	return GameResult{
		Winner:    state.Winner,
		TurnCount: turn,
		Metrics:   metrics,
	}
}

func seatID(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return "p" + string(letters[i%len(letters)])
}

// guessPlayZones picks the zone base name that most plausibly holds a
// human player's playable cards ("hand" if the ruleset has one, else
// the first zone owned by a per-player human role) and the shared zone
// that most plausibly receives a played card ("battle" or "discard" if
// present, else the first unowned zone that isn't the deck).
func guessPlayZones(rs *ruleset.Ruleset) (hand, play string) {
	hand = ""
	for _, z := range rs.Zones {
		if !ownedByHumanPerPlayerRole(rs, z.Owners) {
			continue
		}
		if z.Name == "hand" {
			hand = "hand"
			break
		}
		if hand == "" {
			hand = z.Name
		}
	}

	for _, candidate := range []string{"battle", "discard"} {
		if _, ok := rs.Zone(candidate); ok {
			return hand, candidate
		}
	}
	for _, z := range rs.Zones {
		if len(z.Owners) == 0 && z.Name != "deck" {
			return hand, z.Name
		}
	}
	return hand, ""
}

func ownedByHumanPerPlayerRole(rs *ruleset.Ruleset, owners []string) bool {
	for _, name := range owners {
		if role, ok := rs.Role(name); ok && role.IsHuman && role.IsPerPlayerRole() {
			return true
		}
	}
	return false
}

// pickAction chooses one uniformly random legal action for the current
// state: an enabled declare when the phase offers any, a play_card using
// a random card from the acting player's hand-like zone, a draw_card
// fallback when that zone is empty, or advance_phase as a last resort so
// the playout always makes forward progress.
func pickAction(state *engine.CardGameState, rs *ruleset.Ruleset, rng *engine.PRNG, handBase, playBase string) (engine.Action, int, bool) {
	if state.CurrentPlayerIndex < 0 || state.CurrentPlayerIndex >= len(state.Players) {
		return engine.Action{}, 0, false
	}
	playerID := state.Players[state.CurrentPlayerIndex].ID

	statuses, err := engine.ValidDeclarations(state, playerID)
	if err == nil {
		var enabled []string
		for _, s := range statuses {
			if s.Enabled {
				enabled = append(enabled, s.ActionName)
			}
		}
		if len(enabled) > 0 {
			name := enabled[rng.Intn(len(enabled))]
			params := map[string]float64{}
			if name == "bid" {
				params["bid"] = float64(rng.Intn(10))
			}
			return engine.Action{Kind: engine.ActionDeclare, PlayerID: playerID, Declaration: name, Params: params}, len(enabled), true
		}
	}

	if handBase != "" {
		handName := perPlayerZoneName(rs, handBase, state.CurrentPlayerIndex)
		if hand, ok := state.Zones[handName]; ok && len(hand.Cards) > 0 {
			card := hand.Cards[rng.Intn(len(hand.Cards))]
			return engine.Action{
				Kind: engine.ActionPlayCard, PlayerID: playerID,
				CardID: card.ID, FromZone: handBase, ToZone: playBase,
			}, len(hand.Cards), true
		}
		if _, ok := rs.Zone("deck"); ok {
			return engine.Action{
				Kind: engine.ActionDrawCard, PlayerID: playerID,
				FromZone: "deck", ToZone: handBase, Count: 1,
			}, 1, true
		}
	}

	return engine.Action{Kind: engine.ActionAdvancePhase, PlayerID: playerID}, 1, true
}

// perPlayerZoneName expands a zone base name to its concrete per-player
// instance ("hand" -> "hand:2") when the ruleset declares it owned by a
// per-player role, matching the same "<base>:<index>" convention
// resolveMemberName in eval.go uses for current_player.<zone>. Shared
// zones are returned unchanged.
func perPlayerZoneName(rs *ruleset.Ruleset, base string, playerIndex int) string {
	z, ok := rs.Zone(base)
	if !ok || !ownedByHumanPerPlayerRole(rs, z.Owners) {
		return base
	}
	return base + ":" + strconv.Itoa(playerIndex)
}

func aggregateResults(results []GameResult) AggregatedStats {
	stats := AggregatedStats{
		TotalGames:  uint32(len(results)),
		WinsByIndex: map[int]uint32{},
	}

	var turnCounts []uint32
	for _, r := range results {
		if r.Error != "" {
			stats.Errors++
			continue
		}
		if r.Winner == "" {
			stats.Draws++
		}
		turnCounts = append(turnCounts, uint32(r.TurnCount))

		stats.TotalDecisions += r.Metrics.TotalDecisions
		stats.TotalValidMoves += r.Metrics.TotalValidMoves
		stats.ForcedDecisions += r.Metrics.ForcedDecisions
		stats.TotalActions += r.Metrics.TotalActions
	}

	if len(turnCounts) > 0 {
		sum := uint64(0)
		for _, tc := range turnCounts {
			sum += uint64(tc)
		}
		stats.AvgTurns = float32(sum) / float32(len(turnCounts))
		stats.MedianTurns = median(turnCounts)
	}

	return stats
}

func median(values []uint32) uint32 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]uint32, len(values))
	copy(sorted, values)
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[i] > sorted[j] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
