package engine

// ActionKind enumerates the client-facing action vocabulary spec §4.H
// dispatches on. Unlike the ruleset-internal effect builtins (shuffle,
// deal, set_var, ...), these are the only actions an untrusted client
// can submit to CreateReducer's returned function.
type ActionKind string

const (
	ActionJoin         ActionKind = "join"
	ActionLeave        ActionKind = "leave"
	ActionStartGame    ActionKind = "start_game"
	ActionPlayCard     ActionKind = "play_card"
	ActionDrawCard     ActionKind = "draw_card"
	ActionDeclare      ActionKind = "declare"
	ActionEndTurn      ActionKind = "end_turn"
	ActionAdvancePhase ActionKind = "advance_phase"
	ActionResetRound   ActionKind = "reset_round"
)

// Action is the tagged union of client input. Which fields are
// meaningful depends on Kind:
//
//	join          PlayerID, Name
//	leave         PlayerID
//	start_game    (none)
//	play_card     PlayerID, CardID, FromZone, ToZone
//	draw_card     PlayerID, FromZone, ToZone, Count
//	declare       PlayerID, Declaration, Params
//	end_turn      PlayerID
//	advance_phase (none)
//	reset_round   (none)
type Action struct {
	Kind ActionKind

	PlayerID string
	Name     string // join: display name

	CardID   string // play_card: which card
	FromZone string // play_card/draw_card: source zone base name
	ToZone   string // play_card/draw_card: destination zone base name
	Count    int    // draw_card: how many cards

	Declaration string             // declare: which ActionDecl to invoke
	Params      map[string]float64 // declare: get_param(key) values
}
