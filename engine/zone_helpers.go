package engine

import "github.com/signalnine/cardrules/ruleset"

// resolveZone looks up a zone by its fully-resolved name ("hand:2",
// "draw_pile", ...). Builtins only ever see fully-resolved names —
// resolveNameArg/resolveMemberName already expanded current_player.hand
// to "hand:<index>" before this is called.
func resolveZone(ctx *evalContext, name string, pos int) (*ZoneState, error) {
	z := ctx.state.zone(name)
	if z == nil {
		return nil, exprErr(pos, "", "unknown zone %q", name)
	}
	return z, nil
}

// rankOrdinal returns the numeric strength of a rank for ordering
// purposes (the numeric rank queries, max_card_rank, the trick winner);
// count_rank matches rank names and does not use it. Dual-valued ranks
// (the source's ace) use their High value — hand_value is the one place
// that needs the soft/hard downgrade logic, not general rank ordering.
func rankOrdinal(rs *ruleset.Ruleset, rank string) float64 {
	cv, ok := rs.CardValues[rank]
	if !ok {
		return 0
	}
	if cv.Kind == ruleset.ValueDual {
		return float64(cv.High)
	}
	return float64(cv.Fixed)
}

// handValue implements the source's FindBestBlackjackWinner downgrade
// loop generalized to an arbitrary target and an arbitrary set of
// dual-valued ranks (not just aces): sum every card at its high value,
// then while the sum exceeds target, downgrade one not-yet-downgraded
// dual card at a time (High -> Low) until at or under target or out of
// cards to downgrade.
func handValue(rs *ruleset.Ruleset, cards []Card, target float64) float64 {
	sum := 0.0
	var duals []int // indices into cards that are dual-valued, in hand order
	for i, c := range cards {
		cv, ok := rs.CardValues[c.Rank]
		if !ok {
			continue
		}
		if cv.Kind == ruleset.ValueDual {
			sum += float64(cv.High)
			duals = append(duals, i)
		} else {
			sum += float64(cv.Fixed)
		}
	}

	for _, i := range duals {
		if sum <= target {
			break
		}
		cv := rs.CardValues[cards[i].Rank]
		sum -= float64(cv.High - cv.Low)
	}

	return sum
}
