package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/signalnine/cardrules/ruleset"
)

// cardIDNamespace roots every deterministic card UUID. Card identity
// depends only on the ruleset and the card's place in the deck
// definition, never on the shuffle seed — so two independently-created
// games for the same ruleset always agree on what a given card's ID is,
// and only its position (governed by the seed) differs.
var cardIDNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("cardrules"))

// CreateInitialState builds the starting table for a ruleset: an empty
// per-player zone instance for every zone owned by a per-player role, a
// single shared instance for every other zone (including one owned only
// by a fixed-count role such as a dealer), the full undealt deck placed in
// whichever shared zone looks like the draw pile, and a seeded PRNG.
// Dealing itself is left to the ruleset's own phase 0 automatic
// sequence (typically a shuffle + deal pair), run by the first
// AdvancePhase call the reducer makes on start_game.
func CreateInitialState(rs *ruleset.Ruleset, seed uint64, playerIDs, playerNames []string) (*CardGameState, error) {
	if len(playerIDs) != len(playerNames) {
		return nil, invariantf("CreateInitialState: %d player IDs but %d player names", len(playerIDs), len(playerNames))
	}

	role := primaryHumanRole(rs)
	players := make([]Player, len(playerIDs))
	for i, id := range playerIDs {
		players[i] = Player{ID: id, Name: playerNames[i], Connected: true, Role: role}
	}

	zones := make(map[string]*ZoneState, len(rs.Zones)*2)
	var deckZoneName string
	for _, z := range rs.Zones {
		if len(z.Owners) > 0 && ownedByPerPlayerRole(rs, z.Owners) {
			for i := range players {
				name := perPlayerZoneName(z.Name, i)
				zones[name] = &ZoneState{Name: name}
			}
			continue
		}
		zones[z.Name] = &ZoneState{Name: z.Name}
		if z.Name == "deck" || z.Name == "draw_pile" {
			deckZoneName = z.Name
		}
	}
	if deckZoneName == "" {
		for _, z := range rs.Zones {
			if len(z.Owners) == 0 {
				deckZoneName = z.Name
				break
			}
		}
	}
	if deckZoneName == "" {
		return nil, invariantf("ruleset %q has no shared zone to hold the deck", rs.Meta.Slug)
	}

	cards, err := buildDeck(rs)
	if err != nil {
		return nil, err
	}
	zones[deckZoneName].Cards = cards

	variables := make(map[string]float64, len(rs.InitialVariables))
	for k, v := range rs.InitialVariables {
		variables[k] = v
	}

	phase := ""
	if len(rs.Phases) > 0 {
		phase = rs.Phases[0].Name
	}

	return &CardGameState{
		Ruleset:             rs,
		Status:              StatusWaiting,
		Players:             players,
		Zones:               zones,
		CurrentPhase:        phase,
		CurrentPlayerIndex:  0,
		TurnDirection:       1,
		Scores:              map[string]float64{},
		Variables:           variables,
		rng:                 NewPRNG(seed),
	}, nil
}

// primaryHumanRole returns the name of the ruleset's per-player human
// role (the seat every joining player occupies), or "" if none is
// declared.
func primaryHumanRole(rs *ruleset.Ruleset) string {
	for _, r := range rs.Roles {
		if r.IsHuman && r.IsPerPlayerRole() {
			return r.Name
		}
	}
	return ""
}

// ownedByPerPlayerRole reports whether any of a zone's owner roles
// expands one instance per human player (Role.Count ==
// RoleCountPerPlayer), as opposed to a fixed-count role like a single
// "dealer" seat, which gets one shared zone instance instead of a
// zone instance per human player.
func ownedByPerPlayerRole(rs *ruleset.Ruleset, owners []string) bool {
	for _, name := range owners {
		if role, ok := rs.Role(name); ok && role.IsPerPlayerRole() {
			return true
		}
	}
	return false
}

func buildDeck(rs *ruleset.Ruleset) ([]Card, error) {
	var templates []ruleset.CardTemplate
	copies := rs.Deck.Copies
	if copies < 1 {
		copies = 1
	}

	switch rs.Deck.Preset {
	case "":
		templates = rs.Deck.Custom
	case "standard_52":
		templates = standardDeckTemplates(false)
	case "standard_54":
		templates = standardDeckTemplates(true)
	case "uno_108":
		templates = unoDeckTemplates()
		copies = 1
	default:
		return nil, invariantf("unknown deck preset %q", rs.Deck.Preset)
	}

	cards := make([]Card, 0, len(templates)*copies)
	for copyIdx := 0; copyIdx < copies; copyIdx++ {
		for _, t := range templates {
			cards = append(cards, Card{
				ID:   deterministicCardID(rs, t.Suit, t.Rank, copyIdx, len(cards)),
				Suit: t.Suit,
				Rank: t.Rank,
			})
		}
	}
	return cards, nil
}

func deterministicCardID(rs *ruleset.Ruleset, suit, rank string, copyIdx, ordinal int) string {
	name := fmt.Sprintf("%s:%s:%s:%d:%d", rs.Meta.Slug, suit, rank, copyIdx, ordinal)
	return uuid.NewSHA1(cardIDNamespace, []byte(name)).String()
}

func standardDeckTemplates(withJokers bool) []ruleset.CardTemplate {
	suits := []string{"clubs", "diamonds", "hearts", "spades"}
	ranks := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "jack", "queen", "king", "ace"}
	var out []ruleset.CardTemplate
	for _, s := range suits {
		for _, r := range ranks {
			out = append(out, ruleset.CardTemplate{Suit: s, Rank: r})
		}
	}
	if withJokers {
		out = append(out, ruleset.CardTemplate{Suit: "joker", Rank: "joker"}, ruleset.CardTemplate{Suit: "joker", Rank: "joker"})
	}
	return out
}

// unoDeckTemplates builds the 108-card Uno deck: four colors x (one 0,
// two each of 1-9, skip, reverse, draw_two) plus four wild and four
// wild_draw_four cards with the colorless "wild" suit.
func unoDeckTemplates() []ruleset.CardTemplate {
	colors := []string{"red", "yellow", "green", "blue"}
	var out []ruleset.CardTemplate
	for _, c := range colors {
		out = append(out, ruleset.CardTemplate{Suit: c, Rank: "0"})
		for _, r := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "skip", "reverse", "draw_two"} {
			out = append(out, ruleset.CardTemplate{Suit: c, Rank: r}, ruleset.CardTemplate{Suit: c, Rank: r})
		}
	}
	for i := 0; i < 4; i++ {
		out = append(out, ruleset.CardTemplate{Suit: "wild", Rank: "wild"})
		out = append(out, ruleset.CardTemplate{Suit: "wild", Rank: "wild_draw_four"})
	}
	return out
}
