package engine

import (
	"testing"

	"github.com/signalnine/cardrules/ruleset"
)

func viewTestState() *CardGameState {
	rs := &ruleset.Ruleset{
		Meta: ruleset.Meta{Slug: "view-test"},
		Zones: []ruleset.Zone{
			{Name: "hand", Owners: []string{"player"}},
			{Name: "discard"},
		},
		Roles: []ruleset.Role{{Name: "player", IsHuman: true, Count: ruleset.RoleCountPerPlayer}},
		Visibility: []ruleset.VisibilityRule{
			{Zone: "hand", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityOwnerOnly}},
			{Zone: "discard", Visibility: ruleset.Visibility{Kind: ruleset.VisibilityPartial, Rule: ruleset.PartialFirstCardOnly}},
		},
	}
	return &CardGameState{
		Ruleset:            rs,
		Status:             StatusInProgress,
		Players:            []Player{{ID: "alice"}, {ID: "bob"}},
		CurrentPlayerIndex: 0,
		Zones: map[string]*ZoneState{
			"hand:0":  {Name: "hand:0", Cards: []Card{{ID: "c1", Suit: "spades", Rank: "ace"}}},
			"hand:1":  {Name: "hand:1", Cards: []Card{{ID: "c2", Suit: "hearts", Rank: "king"}}},
			"discard": {Name: "discard", Cards: []Card{{ID: "c3", Suit: "clubs", Rank: "2"}, {ID: "c4", Suit: "diamonds", Rank: "3"}}},
		},
		Scores:    map[string]float64{"player_score:0": 5, "player_score:1": 3},
		Variables: map[string]float64{},
	}
}

func TestCreatePlayerViewOwnerSeesOwnHandNotOthers(t *testing.T) {
	state := viewTestState()
	view := CreatePlayerView(state, "alice")

	own := view.Zones["hand:0"]
	if own.Cards[0] == nil || own.Cards[0].ID != "c1" {
		t.Errorf("expected alice to see her own hand card, got %+v", own.Cards)
	}

	other := view.Zones["hand:1"]
	if other.Cards[0] != nil {
		t.Errorf("expected bob's hand to be hidden from alice, got %+v", other.Cards[0])
	}
	if len(other.Cards) != 1 {
		t.Errorf("card count must still be visible even when hidden, got %d", len(other.Cards))
	}
}

func TestCreatePlayerViewPartialFirstCardOnly(t *testing.T) {
	state := viewTestState()
	view := CreatePlayerView(state, "alice")
	discard := view.Zones["discard"]
	if discard.Cards[0] == nil || discard.Cards[0].ID != "c3" {
		t.Errorf("expected the first discard card visible, got %+v", discard.Cards[0])
	}
	if discard.Cards[1] != nil {
		t.Errorf("expected the second discard card hidden, got %+v", discard.Cards[1])
	}
}

func TestCreatePlayerViewObserverSeesNoOwnerOnlyZone(t *testing.T) {
	state := viewTestState()
	view := CreatePlayerView(state, "")
	for _, name := range []string{"hand:0", "hand:1"} {
		zone := view.Zones[name]
		for _, c := range zone.Cards {
			if c != nil {
				t.Errorf("expected observer to see no owner_only cards in %s, got %+v", name, c)
			}
		}
	}
}

func TestCreatePlayerViewIsMyTurn(t *testing.T) {
	state := viewTestState()
	aliceView := CreatePlayerView(state, "alice")
	if !aliceView.IsMyTurn {
		t.Errorf("expected IsMyTurn true for the current player")
	}
	bobView := CreatePlayerView(state, "bob")
	if bobView.IsMyTurn {
		t.Errorf("expected IsMyTurn false for a non-current player")
	}
}

func TestCreatePlayerViewRemapsScoreKeysToPlayerIDs(t *testing.T) {
	state := viewTestState()
	view := CreatePlayerView(state, "alice")
	if view.Scores["player_score:alice"] != 5 {
		t.Errorf("expected player_score:alice == 5, got %+v", view.Scores)
	}
	if view.Scores["player_score:bob"] != 3 {
		t.Errorf("expected player_score:bob == 3, got %+v", view.Scores)
	}
}
