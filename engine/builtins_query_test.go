package engine

import (
	"testing"

	"github.com/signalnine/cardrules/ruleset"
)

func queryTestState() *CardGameState {
	rs := &ruleset.Ruleset{
		CardValues: map[string]ruleset.CardValue{
			"2":    {Kind: ruleset.ValueFixed, Fixed: 2},
			"king": {Kind: ruleset.ValueFixed, Fixed: 10},
			"ace":  {Kind: ruleset.ValueDual, Low: 1, High: 11},
		},
	}
	return &CardGameState{
		Status:  StatusInProgress,
		Players: []Player{{ID: "a"}, {ID: "b"}},
		Zones: map[string]*ZoneState{
			"hand": {Name: "hand", Cards: []Card{
				{ID: "c1", Suit: "spades", Rank: "ace"},
				{ID: "c2", Suit: "hearts", Rank: "king"},
			}},
			"discard": {Name: "discard", Cards: []Card{
				{ID: "c3", Suit: "clubs", Rank: "2"},
			}},
			"empty": {Name: "empty"},
		},
		Ruleset:   rs,
		Variables: map[string]float64{},
		Scores:    map[string]float64{},
	}
}

func TestHandValueAceDowngradesWhenOverTarget(t *testing.T) {
	state := queryTestState()
	got, err := EvalValue("hand_value(hand, 21)", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// ace(11) + king(10) = 21, no downgrade needed.
	if got != 21 {
		t.Errorf("got %v, want 21", got)
	}

	state.Zones["hand"].Cards = append(state.Zones["hand"].Cards, Card{ID: "c5", Suit: "diamonds", Rank: "king"})
	got, err = EvalValue("hand_value(hand, 21)", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// ace(11) + king(10) + king(10) = 31 over target, downgrade ace to 1 -> 21.
	if got != 21 {
		t.Errorf("got %v, want 21 after ace downgrade", got)
	}
}

func TestCardRankAndSuitByIndex(t *testing.T) {
	state := queryTestState()
	got, err := EvalCondition("card_suit(hand, 0) == 'spades'", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("expected hand[0]'s suit to be spades")
	}

	got, err = EvalCondition("card_rank_name(hand, 1) == 'king'", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("expected hand[1]'s rank name to be king")
	}
}

func TestCardRankUsesHighValueForDualRanks(t *testing.T) {
	state := queryTestState()
	got, err := EvalValue("card_rank(hand, 0)", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 11 {
		t.Errorf("got %v, want 11 (ace's High value)", got)
	}
}

func TestCardCountAndIndexOutOfRange(t *testing.T) {
	state := queryTestState()
	got, err := EvalValue("card_count(hand)", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("got %v, want 2", got)
	}

	if _, err := EvalValue("card_rank(hand, 5)", state, nil); err == nil {
		t.Fatalf("expected an error for an out-of-range card index")
	}
}

func TestCountCardsBySuitAndRank(t *testing.T) {
	state := queryTestState()
	state.Zones["hand"].Cards = append(state.Zones["hand"].Cards, Card{ID: "c9", Suit: "spades", Rank: "2"})

	got, err := EvalValue("count_cards_by_suit(hand, 'spades')", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("got %v, want 2", got)
	}

	got, err = EvalValue("count_rank(hand, 'ace')", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestHasCardWith(t *testing.T) {
	state := queryTestState()
	got, err := EvalCondition("has_card_with(hand, 'ace', 'spades')", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("expected has_card_with to find the ace of spades")
	}

	got, err = EvalCondition("has_card_with(hand, 'ace', 'clubs')", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Errorf("expected has_card_with to not find an ace of clubs")
	}
}

func TestTopCardBuiltinsAndEmptyZoneError(t *testing.T) {
	state := queryTestState()
	got, err := EvalCondition("top_card_rank_name(discard) == '2'", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("expected discard's top card rank name to be 2")
	}

	if _, err := EvalValue("top_card_rank(empty)", state, nil); err == nil {
		t.Fatalf("expected an error for top_card_rank on an empty zone")
	}
}

func TestGetVarAndGetCumulativeScore(t *testing.T) {
	state := queryTestState()
	state.Variables["x"] = 42
	got, err := EvalValue("get_var(x)", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("got %v, want 42", got)
	}

	state.Scores["cumulative_score_0"] = 7
	state.Scores["cumulative_score_1"] = 3
	state.CurrentPlayerIndex = 0
	got, err = EvalValue("get_cumulative_score()", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Errorf("got %v, want 7 for current player's own cumulative score", got)
	}

	got, err = EvalValue("max_cumulative_score()", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 7 {
		t.Errorf("got %v, want 7", got)
	}

	got, err = EvalValue("min_cumulative_score()", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Errorf("got %v, want 3", got)
	}
}

func TestHasPlayableCardAndCardMatchesTopRecognizeWildSuit(t *testing.T) {
	state := queryTestState()
	state.Ruleset.Deck.WildSuit = "wild"
	state.Zones["hand"].Cards = []Card{{ID: "w1", Suit: "wild", Rank: "wild"}}
	state.Zones["discard"].Cards = []Card{{ID: "c3", Suit: "clubs", Rank: "2"}}

	got, err := EvalCondition("has_playable_card(hand, discard)", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("expected a wild-suit card to count as playable against any top card")
	}

	got, err = EvalCondition("card_matches_top(hand, 0, discard)", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Errorf("expected card_matches_top to recognize the wild suit")
	}

	state.Ruleset.Deck.WildSuit = ""
	got, err = EvalCondition("has_playable_card(hand, discard)", state, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Errorf("expected no wild-suit match once WildSuit is unset")
	}
}
