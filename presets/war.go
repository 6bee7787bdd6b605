// Package presets ships runnable ruleset documents for a handful of
// classic games, built as Go functions the way the teacher's
// genome/examples.go built CreateXGenome() constructors — living
// documentation of the expression DSL as much as fixtures for tests.
package presets

import "github.com/signalnine/cardrules/ruleset"

func standardRankValues() map[string]ruleset.CardValue {
	return map[string]ruleset.CardValue{
		"2":     {Kind: ruleset.ValueFixed, Fixed: 2},
		"3":     {Kind: ruleset.ValueFixed, Fixed: 3},
		"4":     {Kind: ruleset.ValueFixed, Fixed: 4},
		"5":     {Kind: ruleset.ValueFixed, Fixed: 5},
		"6":     {Kind: ruleset.ValueFixed, Fixed: 6},
		"7":     {Kind: ruleset.ValueFixed, Fixed: 7},
		"8":     {Kind: ruleset.ValueFixed, Fixed: 8},
		"9":     {Kind: ruleset.ValueFixed, Fixed: 9},
		"10":    {Kind: ruleset.ValueFixed, Fixed: 10},
		"jack":  {Kind: ruleset.ValueFixed, Fixed: 11},
		"queen": {Kind: ruleset.ValueFixed, Fixed: 12},
		"king":  {Kind: ruleset.ValueFixed, Fixed: 13},
		"ace":   {Kind: ruleset.ValueFixed, Fixed: 14},
	}
}

// War is a straightforward two-player War: deal the whole deck in
// alternating fashion, then each round both players independently
// "ready" their top card — an all_players phase, since neither player
// waits on the other's turn — before an automatic "resolve" phase
// compares the two ready cards, sends both (plus anything accumulated
// from an earlier standoff) to the bottom of the winner's pile, and a
// tie instead leaves them sitting in the shared battle pool for the
// next round's resolve to pile onto. Splitting ready from resolve this
// way is what exercises the engine's all_players phase kind end to end
// (see reveal below); a turn-based "flip" would never need it.
func War() *ruleset.Ruleset {
	return &ruleset.Ruleset{
		Meta: ruleset.Meta{
			Name: "War", Slug: "war", Version: "1.0.0", Author: "cardrules",
			Players: ruleset.PlayerRange{Min: 2, Max: 2},
		},
		Deck:       ruleset.Deck{Preset: "standard_52", Copies: 1},
		CardValues: standardRankValues(),
		Roles: []ruleset.Role{
			{Name: "player", IsHuman: true, Count: ruleset.RoleCountPerPlayer},
		},
		Zones: []ruleset.Zone{
			{Name: "deck"},
			{Name: "pile", Owners: []string{"player"}},
			// ready holds at most one card per player: the card they've
			// committed to battle this round, cleared once resolve runs.
			{Name: "ready", Owners: []string{"player"}},
			// battle accumulates ready cards pending resolve, and keeps
			// growing across a standoff until a round finally resolves.
			{Name: "battle"},
		},
		Visibility: []ruleset.VisibilityRule{
			{Zone: "deck", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityHidden}},
			{Zone: "pile", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityOwnerOnly}},
			{Zone: "ready", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityPublic}},
			{Zone: "battle", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityPublic}},
		},
		Phases: []ruleset.Phase{
			{
				Name: "deal", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{
					"shuffle(deck)",
					"while(card_count(deck) > 0, deal(deck, current_player.pile, 1) && set_lead_player(1 - current_player_index))",
				},
				Transitions: []ruleset.Transition{{To: "reveal", When: "card_count(deck) == 0"}},
			},
			{
				// reveal is all_players: either seated player may ready
				// whenever they haven't already this round, independent of
				// whose "turn" it is — isPlayersTurn passes both of them
				// unconditionally for an all_players phase. Each ready
				// bumps turnsTakenThisPhase (via end_turn), so
				// all_players_done() only fires once both have committed.
				Name: "reveal", Kind: ruleset.PhaseAllPlayers,
				Actions: []ruleset.ActionDecl{
					{
						Name:      "ready",
						Condition: "card_count(current_player.ready) == 0 && card_count(current_player.pile) > 0",
						Effects: []string{
							"move_top(current_player.pile, current_player.ready, 1)",
							"end_turn()",
						},
					},
				},
				Transitions: []ruleset.Transition{{To: "resolve", When: "all_players_done()"}},
			},
			{
				// Compare the two ready cards before either moves anywhere
				// — once both land in the shared battle zone their order
				// no longer lines up with "which player played which", so
				// the winner is decided first and only then are the cards
				// relocated.
				Name: "resolve", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{
					"if(card_rank('ready:0', 0) > card_rank('ready:1', 0), " +
						"move_top('ready:0', battle, 1) && move_top('ready:1', battle, 1) && move_to_bottom(battle, 'pile:0', card_count(battle)) && set_lead_player(0), " +
						"if(card_rank('ready:0', 0) < card_rank('ready:1', 0), " +
						"move_top('ready:0', battle, 1) && move_top('ready:1', battle, 1) && move_to_bottom(battle, 'pile:1', card_count(battle)) && set_lead_player(1), " +
						"move_top('ready:0', battle, 1) && move_top('ready:1', battle, 1)))",
				},
				Transitions: []ruleset.Transition{
					{To: "game_over", When: "card_count('pile:0') == 0 || card_count('pile:1') == 0"},
					{To: "reveal", When: ""},
				},
			},
			{
				Name: "game_over", Kind: ruleset.PhaseAutomatic,
				AutomaticSequence: []string{"calculate_scores()", "determine_winners()", "end_game()"},
			},
		},
		Scoring: ruleset.Scoring{
			Method:       "card_count(current_player.pile)",
			WinCondition: "card_count(current_player.pile) >= 52",
		},
	}
}
