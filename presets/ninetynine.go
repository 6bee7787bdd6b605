package presets

import "github.com/signalnine/cardrules/ruleset"

// NinetyNine is a fixed 3-player bidding trick game: each player is dealt
// 9 cards, bids how many tricks they expect to take, then plays all 9
// tricks with no trump and no obligation to follow suit — simplest card
// wins each trick. A player who hits their bid scores 10+bid; anyone who
// misses loses a point for every trick of difference. Three fixed seats
// let the scoring and trick-resolution expressions name each player's
// counters directly instead of needing a general N-player reduction the
// DSL has no loop-with-accumulator construct to express.
func NinetyNine() *ruleset.Ruleset {
	return &ruleset.Ruleset{
		Meta: ruleset.Meta{
			Name: "Ninety-Nine", Slug: "ninety-nine", Version: "1.0.0", Author: "cardrules",
			Players: ruleset.PlayerRange{Min: 3, Max: 3},
		},
		Deck:       ruleset.Deck{Preset: "standard_52", Copies: 1},
		CardValues: standardRankValues(),
		Roles: []ruleset.Role{
			{Name: "player", IsHuman: true, Count: ruleset.RoleCountPerPlayer},
		},
		Zones: []ruleset.Zone{
			{Name: "deck"},
			{Name: "hand", Owners: []string{"player"}},
			{Name: "battle"},
			{Name: "discard"},
		},
		Visibility: []ruleset.VisibilityRule{
			{Zone: "deck", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityHidden}},
			{Zone: "hand", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityOwnerOnly}},
			{Zone: "battle", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityPublic}},
			{Zone: "discard", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityHidden}},
		},
		InitialVariables: map[string]float64{
			"rounds_dealt": 0,
			"bids_made":    0,
			"bid_p0":       0, "bid_p1": 0, "bid_p2": 0,
			"tricks_p0": 0, "tricks_p1": 0, "tricks_p2": 0,
			"battle_size_seen": 0, "best_i": 0,
		},
		Phases: []ruleset.Phase{
			{
				Name: "deal", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{
					"shuffle(deck)",
					"while(rounds_dealt < 9, deal(deck, current_player.hand, 1) && set_lead_player(if(current_player_index + 1 >= player_count, 0, current_player_index + 1)) && if(current_player_index == 0, inc_var(rounds_dealt, 1), true))",
					"set_lead_player(0)",
				},
				Transitions: []ruleset.Transition{{To: "bidding", When: "rounds_dealt >= 9"}},
			},
			{
				Name: "bidding", Kind: ruleset.PhaseTurnBased,
				Actions: []ruleset.ActionDecl{
					{
						Name: "bid",
						Effects: []string{
							"if(current_player_index == 0, set_var(bid_p0, get_param(bid)), if(current_player_index == 1, set_var(bid_p1, get_param(bid)), set_var(bid_p2, get_param(bid))))",
							"inc_var(bids_made, 1)",
							"end_turn()",
						},
					},
				},
				Transitions: []ruleset.Transition{{To: "trick_play", When: "bids_made >= player_count"}},
			},
			{
				// battle_size_seen distinguishes "a card was just played and
				// the trick isn't full yet" (advance the turn) from "the
				// phase was just re-entered after resolve_trick cleared
				// battle" (the lead player for the new trick must get to
				// play first, not be skipped past).
				Name: "trick_play", Kind: ruleset.PhaseTurnBased,
				AutomaticSequence: []string{
					"if(card_count(battle) > battle_size_seen && card_count(battle) < player_count, end_turn(), 0)",
					"set_var(battle_size_seen, card_count(battle))",
				},
				Transitions: []ruleset.Transition{{To: "resolve_trick", When: "card_count(battle) >= player_count"}},
			},
			{
				Name: "resolve_trick", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{
					"set_var(best_i, if(card_rank(battle,0) >= card_rank(battle,1) && card_rank(battle,0) >= card_rank(battle,2), 0, if(card_rank(battle,1) >= card_rank(battle,2), 1, 2)))",
					// battle position i was played by the seat i places after the
					// trick's leader; the trick's last player is still current.
					"set_lead_player(if(current_player_index + 1 + best_i >= player_count, current_player_index + 1 + best_i - player_count, current_player_index + 1 + best_i))",
					"if(current_player_index == 0, inc_var(tricks_p0, 1), if(current_player_index == 1, inc_var(tricks_p1, 1), inc_var(tricks_p2, 1)))",
					"move_all(battle, discard)",
					"set_var(battle_size_seen, 0)",
				},
				Transitions: []ruleset.Transition{
					{To: "scoring", When: "card_count('hand:0') == 0"},
					{To: "trick_play", When: ""},
				},
			},
			{
				Name: "scoring", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{"calculate_scores()", "accumulate_scores()", "determine_winners()", "end_game()"},
			},
		},
		Scoring: ruleset.Scoring{
			Method: "if(current_player_index == 0, if(tricks_p0 == bid_p0, 10 + bid_p0, -1 * abs(tricks_p0 - bid_p0)), " +
				"if(current_player_index == 1, if(tricks_p1 == bid_p1, 10 + bid_p1, -1 * abs(tricks_p1 - bid_p1)), " +
				"if(tricks_p2 == bid_p2, 10 + bid_p2, -1 * abs(tricks_p2 - bid_p2))))",
			WinCondition: "get_cumulative_score() >= max_cumulative_score()",
		},
	}
}
