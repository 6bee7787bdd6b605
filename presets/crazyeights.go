package presets

import "github.com/signalnine/cardrules/ruleset"

// CrazyEights seats 2-7 players with a standard deck dealt 8 cards each
// from a draw pile; remaining cards form the draw pile and the first
// card flipped starts the discard pile. Eights are wild in name only:
// the reducer's play_card action has no field to carry a chosen suit,
// so (matching every other preset's deliberate non-enforcement of
// card-choice legality) a played eight is simply a normal card here.
// Losers' scores are the negative point value of the cards left in
// hand at the end, using the same rank-value table War uses for
// comparison.
func CrazyEights() *ruleset.Ruleset {
	return &ruleset.Ruleset{
		Meta: ruleset.Meta{
			Name: "Crazy Eights", Slug: "crazy-eights", Version: "1.0.0", Author: "cardrules",
			Players: ruleset.PlayerRange{Min: 2, Max: 7},
		},
		Deck:       ruleset.Deck{Preset: "standard_52", Copies: 1},
		CardValues: standardRankValues(),
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
					"while(rounds_dealt < 8, deal(deck, current_player.hand, 1) && set_lead_player(if(current_player_index + 1 >= player_count, 0, current_player_index + 1)) && if(current_player_index == 0, inc_var(rounds_dealt, 1), true))",
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
					"end_turn()",
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
			Method:       "if(card_count(current_player.hand) == 0, 1, -1 * hand_value(current_player.hand, 9999))",
			WinCondition: "card_count(current_player.hand) == 0",
		},
	}
}
