package presets

import "github.com/signalnine/cardrules/ruleset"

// Hearts is the fixed 4-player, 13-trick point-avoidance game: the whole
// deck deals out evenly, tricks are led and won by a while-loop scan
// over the battle zone (not a hardcoded per-seat comparison, since a
// trick's winner has to be found generically by index), and a round's
// points are the hearts plus the queen of spades sitting in each
// player's own won-card pile at the end. Follow-suit and
// hearts-can't-lead-until-broken are left unenforced at the reducer
// level, same as every other preset here — play_card only ever checks
// ownership and turn order, never card-choice legality.
func Hearts() *ruleset.Ruleset {
	return &ruleset.Ruleset{
		Meta: ruleset.Meta{
			Name: "Hearts", Slug: "hearts", Version: "1.0.0", Author: "cardrules",
			Players: ruleset.PlayerRange{Min: 4, Max: 4},
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
			{Name: "won_pile", Owners: []string{"player"}},
		},
		Visibility: []ruleset.VisibilityRule{
			{Zone: "deck", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityHidden}},
			{Zone: "hand", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityOwnerOnly}},
			{Zone: "battle", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityPublic}},
			{Zone: "won_pile", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityPublic}},
		},
		InitialVariables: map[string]float64{
			"scan_i": 0, "best_i": 0, "best_rank": 0, "battle_size_seen": 0,
		},
		Phases: []ruleset.Phase{
			{
				Name: "deal", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{
					"shuffle(deck)",
					"while(card_count(deck) > 0, deal(deck, current_player.hand, 1) && set_lead_player(if(current_player_index + 1 >= player_count, 0, current_player_index + 1)))",
					"set_lead_player(0)",
				},
				Transitions: []ruleset.Transition{{To: "trick_play", When: "card_count(deck) == 0"}},
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
					"set_var(scan_i, 1)",
					"set_var(best_i, 0)",
					"set_var(best_rank, card_rank(battle, 0))",
					"while(scan_i < player_count, " +
						"if(card_suit(battle, scan_i) == card_suit(battle, 0) && card_rank(battle, scan_i) > best_rank, " +
						"set_var(best_i, scan_i) && set_var(best_rank, card_rank(battle, scan_i)), true) && " +
						"set_var(scan_i, scan_i + 1))",
					// battle position i was played by the seat i places after the
					// trick's leader; the trick's last player is still current.
					"set_lead_player(if(current_player_index + 1 + best_i >= player_count, current_player_index + 1 + best_i - player_count, current_player_index + 1 + best_i))",
					"move_all(battle, current_player.won_pile)",
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
			Method: "count_cards_by_suit(current_player.won_pile, 'hearts') + " +
				"if(has_card_with(current_player.won_pile, 'queen', 'spades'), 13, 0)",
			WinCondition: "get_cumulative_score() <= min_cumulative_score()",
		},
	}
}
