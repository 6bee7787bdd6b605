package presets

import "github.com/signalnine/cardrules/ruleset"

// Uno seats 2-10 players. Only the reducer's raw play_card/draw_card
// actions are used (no declare actions): skip/reverse/draw_two/
// wild_draw_four are resolved by the play phase's own automatic
// sequence, which inspects whether a new card landed on discard since
// its last check (discard_size_seen) to tell a play from a plain draw.
// Opponent hand-value scoring from the original game needs an
// aggregation over an arbitrary number of other players the expression
// language has no construct for, so scoring here is simplified to 1
// point for being the first to empty a hand.
func Uno() *ruleset.Ruleset {
	return &ruleset.Ruleset{
		Meta: ruleset.Meta{
			Name: "Uno", Slug: "uno", Version: "1.0.0", Author: "cardrules",
			Players: ruleset.PlayerRange{Min: 2, Max: 10},
		},
		Deck: ruleset.Deck{Preset: "uno_108", Copies: 1, WildSuit: "wild"},
		Roles: []ruleset.Role{
			{Name: "player", IsHuman: true, Count: ruleset.RoleCountPerPlayer},
		},
		Zones: []ruleset.Zone{
			{Name: "deck"},
			{Name: "hand", Owners: []string{"player"}},
			{Name: "discard"},
		},
		Visibility: []ruleset.VisibilityRule{
			{Zone: "deck", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityHidden}},
			{Zone: "hand", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityOwnerOnly}},
			{Zone: "discard", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityPartial, Rule: ruleset.PartialFirstCardOnly}},
		},
		InitialVariables: map[string]float64{
			"rounds_dealt": 0, "discard_size_seen": 0, "someone_won": 0,
		},
		Phases: []ruleset.Phase{
			{
				Name: "deal", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{
					"shuffle(deck)",
					"while(rounds_dealt < 7, deal(deck, current_player.hand, 1) && set_lead_player(if(current_player_index + 1 >= player_count, 0, current_player_index + 1)) && if(current_player_index == 0, inc_var(rounds_dealt, 1), true))",
					"set_lead_player(0)",
					"move_top(deck, discard, 1)",
					"set_var(discard_size_seen, card_count(discard))",
				},
				Transitions: []ruleset.Transition{{To: "play", When: ""}},
			},
			{
				Name: "play", Kind: ruleset.PhaseTurnBased,
				AutomaticSequence: []string{
					"if(card_count(discard) > discard_size_seen && card_count(current_player.hand) == 0, set_var(someone_won, 1), 0)",
					"if(card_count(discard) > discard_size_seen, " +
						"if(card_rank_name(discard, card_count(discard) - 1) == 'skip', skip_next_player(), " +
						"if(card_rank_name(discard, card_count(discard) - 1) == 'reverse', reverse_turn_order() && end_turn(), " +
						"if(card_rank_name(discard, card_count(discard) - 1) == 'draw_two', set_lead_player(if(current_player_index + 1 >= player_count, 0, current_player_index + 1)) && deal(deck, current_player.hand, 2) && end_turn(), " +
						"if(card_rank_name(discard, card_count(discard) - 1) == 'wild_draw_four', set_lead_player(if(current_player_index + 1 >= player_count, 0, current_player_index + 1)) && deal(deck, current_player.hand, 4) && end_turn(), " +
						"end_turn())))), " +
						"end_turn())",
					"set_var(discard_size_seen, card_count(discard))",
				},
				Transitions: []ruleset.Transition{{To: "scoring", When: "someone_won == 1"}},
			},
			{
				Name: "scoring", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{"calculate_scores()", "determine_winners()", "end_game()"},
			},
		},
		Scoring: ruleset.Scoring{
			Method:       "if(card_count(current_player.hand) == 0, 1, 0)",
			WinCondition: "card_count(current_player.hand) == 0",
		},
	}
}
