package presets

import "github.com/signalnine/cardrules/ruleset"

// Blackjack seats 1-6 players against a single dealer role. hand_value's
// ace soft/hard downgrade (engine/zone_helpers.go, grounded on the
// teacher's FindBestBlackjackWinner) drives both the hit/bust logic and
// the dealer's stand-on-17 loop.
func Blackjack() *ruleset.Ruleset {
	return &ruleset.Ruleset{
		Meta: ruleset.Meta{
			Name: "Blackjack", Slug: "blackjack", Version: "1.0.0", Author: "cardrules",
			Players: ruleset.PlayerRange{Min: 1, Max: 6},
		},
		Deck: ruleset.Deck{Preset: "standard_52", Copies: 1},
		CardValues: map[string]ruleset.CardValue{
			"2": {Kind: ruleset.ValueFixed, Fixed: 2}, "3": {Kind: ruleset.ValueFixed, Fixed: 3},
			"4": {Kind: ruleset.ValueFixed, Fixed: 4}, "5": {Kind: ruleset.ValueFixed, Fixed: 5},
			"6": {Kind: ruleset.ValueFixed, Fixed: 6}, "7": {Kind: ruleset.ValueFixed, Fixed: 7},
			"8": {Kind: ruleset.ValueFixed, Fixed: 8}, "9": {Kind: ruleset.ValueFixed, Fixed: 9},
			"10": {Kind: ruleset.ValueFixed, Fixed: 10}, "jack": {Kind: ruleset.ValueFixed, Fixed: 10},
			"queen": {Kind: ruleset.ValueFixed, Fixed: 10}, "king": {Kind: ruleset.ValueFixed, Fixed: 10},
			"ace": {Kind: ruleset.ValueDual, Low: 1, High: 11},
		},
		Roles: []ruleset.Role{
			{Name: "player", IsHuman: true, Count: ruleset.RoleCountPerPlayer},
			{Name: "dealer", IsHuman: false, Count: 1},
		},
		Zones: []ruleset.Zone{
			{Name: "deck"},
			{Name: "hand", Owners: []string{"player"}},
			{Name: "dealer_hand", Owners: []string{"dealer"}},
		},
		Visibility: []ruleset.VisibilityRule{
			{Zone: "deck", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityHidden}},
			{Zone: "hand", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityOwnerOnly}},
			{Zone: "dealer_hand", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityPartial, Rule: ruleset.PartialFaceUpOnly}},
		},
		InitialVariables: map[string]float64{"rounds_dealt": 0, "players_done": 0},
		Phases: []ruleset.Phase{
			{
				Name: "deal", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{
					"shuffle(deck)",
					"while(rounds_dealt < 2, deal(deck, current_player.hand, 1) && set_lead_player(if(current_player_index + 1 >= player_count, 0, current_player_index + 1)) && if(current_player_index == 0, inc_var(rounds_dealt, 1), true))",
					"deal(deck, dealer_hand, 2)",
					"set_face_up(dealer_hand, 0, true)",
				},
				Transitions: []ruleset.Transition{{To: "player_turns", When: "card_count(dealer_hand) == 2"}},
			},
			{
				Name: "player_turns", Kind: ruleset.PhaseTurnBased,
				Actions: []ruleset.ActionDecl{
					{
						Name: "hit", Condition: "hand_value(current_player.hand) < 21",
						Effects: []string{
							"deal(deck, current_player.hand, 1)",
							"if(hand_value(current_player.hand) > 21, inc_var(players_done, 1), 0)",
							"if(hand_value(current_player.hand) > 21, end_turn(), 0)",
						},
					},
					{
						Name: "stand",
						Effects: []string{
							"inc_var(players_done, 1)",
							"end_turn()",
						},
					},
				},
				Transitions: []ruleset.Transition{{To: "dealer_turn", When: "players_done >= player_count"}},
			},
			{
				Name: "dealer_turn", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{
					"reveal_all(dealer_hand)",
					"while(hand_value(dealer_hand, 17) < 17, deal(deck, dealer_hand, 1))",
				},
				Transitions: []ruleset.Transition{{To: "settle", When: ""}},
			},
			{
				Name: "settle", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{"calculate_scores()", "determine_winners()", "end_game()"},
			},
		},
		Scoring: ruleset.Scoring{
			Method: "if(hand_value(current_player.hand) > 21, 0, " +
				"if(hand_value(dealer_hand) > 21, 2, " +
				"if(hand_value(current_player.hand) > hand_value(dealer_hand), 2, " +
				"if(hand_value(current_player.hand) == hand_value(dealer_hand), 1, 0))))",
			WinCondition: "!(hand_value(current_player.hand) > 21) && " +
				"(hand_value(dealer_hand) > 21 || hand_value(current_player.hand) > hand_value(dealer_hand))",
			BustCondition: "hand_value(current_player.hand) > 21",
			TieCondition: "!(hand_value(dealer_hand) > 21) && " +
				"hand_value(current_player.hand) == hand_value(dealer_hand)",
		},
	}
}
