package engine

import "github.com/signalnine/cardrules/ruleset"

// CardView is what a viewer is allowed to see of one card. A nil
// *CardView (used in ZoneView.Cards) is the "hidden" placeholder spec
// §5 calls for: the viewer learns a card is there but nothing about it.
type CardView struct {
	ID     string `json:"id"`
	Suit   string `json:"suit"`
	Rank   string `json:"rank"`
	FaceUp bool   `json:"faceUp"`
}

// ZoneView is one zone instance as a particular viewer sees it. Cards
// always has the same length as the real zone — a hidden card is a nil
// entry, never an omitted one, so card counts are never leaked or
// hidden by omission.
type ZoneView struct {
	Name  string      `json:"name"`
	Cards []*CardView `json:"cards"`
}

// PlayerView is the complete per-viewer projection of a CardGameState:
// everything a single player (or an observer, with an empty viewerID)
// is entitled to see.
type PlayerView struct {
	ViewerID           string               `json:"viewerId"`
	Status             StatusKind           `json:"status"`
	Winner             string               `json:"winner,omitempty"`
	CurrentPhase       string               `json:"currentPhase"`
	CurrentPlayerIndex int                  `json:"currentPlayerIndex"`
	IsMyTurn           bool                 `json:"isMyTurn"`
	TurnNumber         int                  `json:"turnNumber"`
	Players            []Player             `json:"players"`
	Zones              map[string]ZoneView  `json:"zones"`
	Scores             map[string]float64   `json:"scores"`
	Variables          map[string]float64   `json:"variables"`
	Version            uint64               `json:"version"`
}

// CreatePlayerView projects state for a single viewer. viewerID=="" is
// an observer: owner_only zones are never visible to an observer since
// no player index matches. A viewerID that matches no seated player gets
// the same observer projection; it is not reported as an error.
func CreatePlayerView(state *CardGameState, viewerID string) *PlayerView {
	viewerIndex := -1
	for i, p := range state.Players {
		if p.ID == viewerID {
			viewerIndex = i
			break
		}
	}

	viewerRole := ""
	if viewerIndex >= 0 {
		viewerRole = state.Players[viewerIndex].Role
	}

	zones := make(map[string]ZoneView, len(state.Zones))
	for name, z := range state.Zones {
		zones[name] = projectZone(state, name, z, viewerIndex, viewerRole)
	}

	scores := make(map[string]float64, len(state.Scores))
	for k, v := range state.Scores {
		scores[remapScoreKey(state, k)] = v
	}

	phase, _ := state.Ruleset.Phase(state.CurrentPhase)
	isMyTurn := phase.Kind == ruleset.PhaseAllPlayers ||
		(viewerIndex >= 0 && viewerIndex == state.CurrentPlayerIndex)

	return &PlayerView{
		ViewerID:           viewerID,
		Status:             state.Status,
		Winner:              state.Winner,
		CurrentPhase:       state.CurrentPhase,
		CurrentPlayerIndex: state.CurrentPlayerIndex,
		IsMyTurn:           isMyTurn,
		TurnNumber:         state.TurnNumber,
		Players:            append([]Player(nil), state.Players...),
		Zones:              zones,
		Scores:             scores,
		Variables:          cloneFloatMap(state.Variables),
		Version:            state.Version,
	}
}

// remapScoreKey turns an index-keyed score ("player_score:1",
// "result:1", "cumulative_score_1") into the same key with the
// player's ID substituted for the index, so a client never has to know
// seat-index bookkeeping to read its own score.
func remapScoreKey(state *CardGameState, key string) string {
	base, idx, ok := splitScoreKey(key)
	if !ok || idx < 0 || idx >= len(state.Players) {
		return key
	}
	return base + state.Players[idx].ID
}

// splitScoreKey recognizes the three score-key conventions spec §9
// fixes: "player_score:<i>", "result:<i>", "cumulative_score_<i>". It
// returns the separator-inclusive prefix and the parsed index.
func splitScoreKey(key string) (prefix string, index int, ok bool) {
	for _, p := range []string{"player_score:", "result:", "cumulative_score_"} {
		if len(key) > len(p) && key[:len(p)] == p {
			n, err := parseNonNegInt(key[len(p):])
			if err != nil {
				return "", 0, false
			}
			return p, n, true
		}
	}
	return "", 0, false
}

func parseNonNegInt(s string) (int, error) {
	if s == "" {
		return 0, exprErr(0, "", "empty integer")
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, exprErr(0, "", "not a plain integer: %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

func projectZone(state *CardGameState, name string, z *ZoneState, viewerIndex int, viewerRole string) ZoneView {
	vis := resolveVisibility(state.Ruleset, name, state.CurrentPhase)
	cards := make([]*CardView, len(z.Cards))

	owner := ownerIndexOf(name)
	ownedByViewer := owner >= 0 && owner == viewerIndex
	if owner < 0 {
		// No "<base>:<index>" suffix (a shared zone, or one owned by a
		// fixed-count role like a single dealer seat): fall back to
		// role membership, so a non-human role's own zone still reads
		// as owner_only to nobody rather than to everybody.
		ownedByViewer = viewerRole != "" && zoneOwnedByRole(state.Ruleset, name, viewerRole)
	}
	visibleToViewer := vis.Kind == ruleset.VisibilityPublic ||
		(vis.Kind == ruleset.VisibilityOwnerOnly && ownedByViewer)

	for i, c := range z.Cards {
		show := false
		switch vis.Kind {
		case ruleset.VisibilityPublic:
			show = true
		case ruleset.VisibilityOwnerOnly:
			show = visibleToViewer
		case ruleset.VisibilityHidden:
			show = false
		case ruleset.VisibilityPartial:
			switch vis.Rule {
			case ruleset.PartialFirstCardOnly:
				show = i == 0
			case ruleset.PartialLastCardOnly:
				show = i == len(z.Cards)-1
			case ruleset.PartialFaceUpOnly:
				show = c.FaceUp
			}
		}
		if show {
			cards[i] = &CardView{ID: c.ID, Suit: c.Suit, Rank: c.Rank, FaceUp: c.FaceUp}
		}
	}

	return ZoneView{Name: name, Cards: cards}
}

// zoneOwnedByRole reports whether the zone definition named by name (or
// its base, for a per-player instance) lists role among its owners.
func zoneOwnedByRole(rs *ruleset.Ruleset, name, role string) bool {
	z, ok := rs.Zone(zoneBase(name))
	if !ok {
		return false
	}
	for _, owner := range z.Owners {
		if owner == role {
			return true
		}
	}
	return false
}

// ownerIndexOf extracts the trailing ":<index>" from a per-player zone
// instance name, or -1 for a shared zone with no player suffix.
func ownerIndexOf(name string) int {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ':' {
			n, err := parseNonNegInt(name[i+1:])
			if err != nil {
				return -1
			}
			return n
		}
	}
	return -1
}

// resolveVisibility finds the visibility rule for a zone instance,
// preferring an exact instance-name match over a base-name match, then
// applying a phase-scoped override when the current phase matches.
func resolveVisibility(rs *ruleset.Ruleset, zoneName, currentPhase string) ruleset.Visibility {
	base := zoneBase(zoneName)

	var exact, byBase *ruleset.VisibilityRule
	for i := range rs.Visibility {
		r := &rs.Visibility[i]
		if r.Zone == zoneName {
			exact = r
		} else if r.Zone == base && byBase == nil {
			byBase = r
		}
	}

	rule := exact
	if rule == nil {
		rule = byBase
	}
	if rule == nil {
		// Fall back to the zone definition's own embedded default
		// before assuming hidden — lets a ruleset set visibility
		// inline on the zone without a separate top-level rule.
		if z, ok := rs.Zone(base); ok {
			return z.Visibility
		}
		return ruleset.Visibility{Kind: ruleset.VisibilityHidden}
	}

	if rule.PhaseOverride != nil && rule.PhaseOverride.Phase == currentPhase {
		return rule.PhaseOverride.Visibility
	}
	return rule.Visibility
}
