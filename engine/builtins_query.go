package engine

import (
	"math"
	"strconv"

	"github.com/signalnine/cardrules/ruleset"
)

// registerQueryBuiltins installs every side-effect-free builtin: reading
// zone/card/score/variable state never records an intent and never
// requires a mutable context.
func registerQueryBuiltins() {
	registerBuiltin(&builtin{
		name: "hand_value", minArgs: 1, maxArgs: 2,
		argKinds: []argKind{argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			target := 21.0
			if len(args) == 2 {
				target, err = args[1].asNumber(pos)
				if err != nil {
					return value{}, err
				}
			}
			return numVal(handValue(ctx.state.Ruleset, z.Cards, target)), nil
		},
	})

	registerBuiltin(&builtin{
		name: "card_count", minArgs: 1, maxArgs: 1,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			return numVal(float64(len(z.Cards))), nil
		},
	})

	registerBuiltin(&builtin{
		name: "card_rank", minArgs: 2, maxArgs: 2,
		argKinds: []argKind{argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			c, err := cardAt(ctx, args, pos)
			if err != nil {
				return value{}, err
			}
			return numVal(rankOrdinal(ctx.state.Ruleset, c.Rank)), nil
		},
	})

	registerBuiltin(&builtin{
		name: "card_rank_name", minArgs: 2, maxArgs: 2,
		argKinds: []argKind{argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			c, err := cardAt(ctx, args, pos)
			if err != nil {
				return value{}, err
			}
			return strVal(c.Rank), nil
		},
	})

	registerBuiltin(&builtin{
		name: "card_suit", minArgs: 2, maxArgs: 2,
		argKinds: []argKind{argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			c, err := cardAt(ctx, args, pos)
			if err != nil {
				return value{}, err
			}
			return strVal(c.Suit), nil
		},
	})

	registerBuiltin(&builtin{
		name: "count_rank", minArgs: 2, maxArgs: 2,
		argKinds: []argKind{argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			rank, err := args[1].asString(pos)
			if err != nil {
				return value{}, err
			}
			n := 0
			for _, c := range z.Cards {
				if c.Rank == rank {
					n++
				}
			}
			return numVal(float64(n)), nil
		},
	})

	registerBuiltin(&builtin{
		name: "count_cards_by_suit", minArgs: 2, maxArgs: 2,
		argKinds: []argKind{argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			suit, err := args[1].asString(pos)
			if err != nil {
				return value{}, err
			}
			n := 0
			for _, c := range z.Cards {
				if c.Suit == suit {
					n++
				}
			}
			return numVal(float64(n)), nil
		},
	})

	registerBuiltin(&builtin{
		name: "top_card_rank", minArgs: 1, maxArgs: 1,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			c, err := topCard(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			return numVal(rankOrdinal(ctx.state.Ruleset, c.Rank)), nil
		},
	})

	registerBuiltin(&builtin{
		name: "top_card_rank_name", minArgs: 1, maxArgs: 1,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			c, err := topCard(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			return strVal(c.Rank), nil
		},
	})

	registerBuiltin(&builtin{
		name: "top_card_suit", minArgs: 1, maxArgs: 1,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			c, err := topCard(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			return strVal(c.Suit), nil
		},
	})

	registerBuiltin(&builtin{
		name: "max_card_rank", minArgs: 1, maxArgs: 1,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			best := 0.0
			for _, c := range z.Cards {
				if r := rankOrdinal(ctx.state.Ruleset, c.Rank); r > best {
					best = r
				}
			}
			return numVal(best), nil
		},
	})

	registerBuiltin(&builtin{
		name: "trick_card_count", minArgs: 0, maxArgs: 0,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			return numVal(float64(len(ctx.state.Trick))), nil
		},
	})

	registerBuiltin(&builtin{
		name: "trick_winner", minArgs: 0, maxArgs: 0,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			if len(ctx.state.Trick) == 0 {
				return value{}, exprErr(pos, "", "trick_winner: trick is empty")
			}
			return numVal(float64(computeTrickWinner(ctx.state.Ruleset, ctx.state.Trick))), nil
		},
	})

	registerBuiltin(&builtin{
		name: "has_playable_card", minArgs: 2, maxArgs: 2,
		argKinds: []argKind{argName, argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			hand, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			target, err := resolveZone(ctx, args[1].str, pos)
			if err != nil {
				return value{}, err
			}
			if len(target.Cards) == 0 {
				return boolVal(len(hand.Cards) > 0), nil
			}
			top := target.Cards[0]
			wild := ctx.state.Ruleset.Deck.WildSuit
			for _, c := range hand.Cards {
				if c.Suit == top.Suit || c.Rank == top.Rank || (wild != "" && c.Suit == wild) {
					return boolVal(true), nil
				}
			}
			return boolVal(false), nil
		},
	})

	registerBuiltin(&builtin{
		name: "card_matches_top", minArgs: 3, maxArgs: 3,
		argKinds: []argKind{argName, argValue, argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			hand, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			idx, err := args[1].asNumber(pos)
			if err != nil {
				return value{}, err
			}
			i := int(idx)
			if i < 0 || i >= len(hand.Cards) {
				return value{}, exprErr(pos, "", "card_matches_top: index %d out of range", i)
			}
			target, err := resolveZone(ctx, args[2].str, pos)
			if err != nil {
				return value{}, err
			}
			if len(target.Cards) == 0 {
				return boolVal(false), nil
			}
			top := target.Cards[0]
			c := hand.Cards[i]
			wild := ctx.state.Ruleset.Deck.WildSuit
			return boolVal(c.Suit == top.Suit || c.Rank == top.Rank || (wild != "" && c.Suit == wild)), nil
		},
	})

	registerBuiltin(&builtin{
		name: "has_card_with", minArgs: 3, maxArgs: 3,
		argKinds: []argKind{argName, argValue, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			rank, err := args[1].asString(pos)
			if err != nil {
				return value{}, err
			}
			suit, err := args[2].asString(pos)
			if err != nil {
				return value{}, err
			}
			for _, c := range z.Cards {
				if (rank == "" || c.Rank == rank) && (suit == "" || c.Suit == suit) {
					return boolVal(true), nil
				}
			}
			return boolVal(false), nil
		},
	})

	registerBuiltin(&builtin{
		name: "get_var", minArgs: 1, maxArgs: 1,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			return numVal(ctx.state.Variables[args[0].str]), nil
		},
	})

	registerBuiltin(&builtin{
		name: "get_param", minArgs: 1, maxArgs: 1,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			return numVal(ctx.params[args[0].str]), nil
		},
	})

	registerBuiltin(&builtin{
		name: "get_cumulative_score", minArgs: 0, maxArgs: 1,
		argKinds: []argKind{argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			idx := ctx.state.CurrentPlayerIndex
			if len(args) == 1 {
				f, err := args[0].asNumber(pos)
				if err != nil {
					return value{}, err
				}
				idx = int(f)
			}
			return numVal(ctx.state.Scores[cumulativeScoreKey(idx)]), nil
		},
	})

	registerBuiltin(&builtin{
		name: "min_cumulative_score", minArgs: 0, maxArgs: 0,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			best, ok := extremeCumulativeScore(ctx.state, len(ctx.state.Players), false)
			if !ok {
				return numVal(0), nil
			}
			return numVal(best), nil
		},
	})

	registerBuiltin(&builtin{
		name: "max_cumulative_score", minArgs: 0, maxArgs: 0,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			best, ok := extremeCumulativeScore(ctx.state, len(ctx.state.Players), true)
			if !ok {
				return numVal(0), nil
			}
			return numVal(best), nil
		},
	})

	registerBuiltin(&builtin{
		name: "abs", minArgs: 1, maxArgs: 1,
		argKinds: []argKind{argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			f, err := args[0].asNumber(pos)
			if err != nil {
				return value{}, err
			}
			return numVal(math.Abs(f)), nil
		},
	})

	registerBuiltin(&builtin{
		name: "concat", minArgs: 1, maxArgs: -1,
		argKinds: []argKind{argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			s := ""
			for _, a := range args {
				s += a.String()
			}
			return strVal(s), nil
		},
	})

	registerBuiltin(&builtin{
		name: "all_players_done", minArgs: 0, maxArgs: 0,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			return boolVal(ctx.state.TurnsTakenThisPhase >= len(ctx.state.Players)), nil
		},
	})

	// all_hands_dealt/scores_calculated/continue_game are sentinel
	// guards: markers an author uses on a transition to say "advance
	// after this automatic sequence", not a condition on any state.
	for _, flag := range []string{"all_hands_dealt", "scores_calculated", "continue_game"} {
		registerBuiltin(&builtin{
			name: flag, minArgs: 0, maxArgs: 0,
			fn: func(ctx *evalContext, args []value, pos int) (value, error) {
				return boolVal(true), nil
			},
		})
	}
}

func cardAt(ctx *evalContext, args []value, pos int) (Card, error) {
	z, err := resolveZone(ctx, args[0].str, pos)
	if err != nil {
		return Card{}, err
	}
	idx, err := args[1].asNumber(pos)
	if err != nil {
		return Card{}, err
	}
	i := int(idx)
	if i < 0 || i >= len(z.Cards) {
		return Card{}, exprErr(pos, "", "index %d out of range for zone %q (%d cards)", i, args[0].str, len(z.Cards))
	}
	return z.Cards[i], nil
}

func topCard(ctx *evalContext, zoneName string, pos int) (Card, error) {
	z, err := resolveZone(ctx, zoneName, pos)
	if err != nil {
		return Card{}, err
	}
	if len(z.Cards) == 0 {
		return Card{}, exprErr(pos, "", "zone %q is empty", zoneName)
	}
	return z.Cards[0], nil
}

func computeTrickWinner(rs *ruleset.Ruleset, trick []TrickEntry) int {
	lead := trick[0].Card.Suit
	best := 0
	bestRank := rankOrdinal(rs, trick[0].Card.Rank)
	for i := 1; i < len(trick); i++ {
		if trick[i].Card.Suit != lead {
			continue
		}
		if r := rankOrdinal(rs, trick[i].Card.Rank); r > bestRank {
			bestRank = r
			best = i
		}
	}
	return trick[best].PlayerIndex
}

func cumulativeScoreKey(playerIndex int) string {
	return "cumulative_score_" + strconv.Itoa(playerIndex)
}

func extremeCumulativeScore(state *CardGameState, playerCount int, max bool) (float64, bool) {
	found := false
	best := 0.0
	for i := 0; i < playerCount; i++ {
		v, ok := state.Scores[cumulativeScoreKey(i)]
		if !ok {
			continue
		}
		if !found || (max && v > best) || (!max && v < best) {
			best = v
			found = true
		}
	}
	return best, found
}
