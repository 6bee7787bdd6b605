package engine

import "strconv"

// registerEffectBuiltins installs every mutating builtin. Each one
// mutates ctx.state directly and immediately (see evalContext's doc
// comment) rather than queuing a separate apply pass — a while loop
// body's second iteration needs to see the first iteration's shuffle or
// draw, and a not-taken if-branch must never touch state at all.
func registerEffectBuiltins() {
	registerBuiltin(&builtin{
		name: "shuffle", minArgs: 1, maxArgs: 1, effect: true,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			if ctx.state.rng == nil {
				r := NewPRNG(1)
				ctx.state.rng = r
			}
			ctx.state.rng.Shuffle(len(z.Cards), func(i, j int) {
				z.Cards[i], z.Cards[j] = z.Cards[j], z.Cards[i]
			})
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "deal", minArgs: 3, maxArgs: 3, effect: true,
		argKinds: []argKind{argName, argName, argValue},
		fn: moveTopBuiltinFn,
	})

	registerBuiltin(&builtin{
		name: "draw", minArgs: 3, maxArgs: 3, effect: true,
		argKinds: []argKind{argName, argName, argValue},
		fn: moveTopBuiltinFn,
	})

	registerBuiltin(&builtin{
		name: "move_top", minArgs: 2, maxArgs: 3, effect: true,
		argKinds: []argKind{argName, argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			n := 1.0
			if len(args) == 3 {
				var err error
				n, err = args[2].asNumber(pos)
				if err != nil {
					return value{}, err
				}
			}
			return moveTopN(ctx, args[0].str, args[1].str, int(n), pos)
		},
	})

	registerBuiltin(&builtin{
		name: "move_to_bottom", minArgs: 2, maxArgs: 3, effect: true,
		argKinds: []argKind{argName, argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			n := 1.0
			if len(args) == 3 {
				var err error
				n, err = args[2].asNumber(pos)
				if err != nil {
					return value{}, err
				}
			}
			from, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			to, err := resolveZone(ctx, args[1].str, pos)
			if err != nil {
				return value{}, err
			}
			moveToBottom(from, to, int(n))
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "move_all", minArgs: 2, maxArgs: 2, effect: true,
		argKinds: []argKind{argName, argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			from, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			to, err := resolveZone(ctx, args[1].str, pos)
			if err != nil {
				return value{}, err
			}
			moveAll(from, to)
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "flip_top", minArgs: 1, maxArgs: 2, effect: true,
		argKinds: []argKind{argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			n := 1
			if len(args) == 2 {
				f, err := args[1].asNumber(pos)
				if err != nil {
					return value{}, err
				}
				n = int(f)
			}
			for i := 0; i < n && i < len(z.Cards); i++ {
				z.Cards[i].FaceUp = !z.Cards[i].FaceUp
			}
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "set_face_up", minArgs: 3, maxArgs: 3, effect: true,
		argKinds: []argKind{argName, argValue, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			idx, err := args[1].asNumber(pos)
			if err != nil {
				return value{}, err
			}
			faceUp, err := args[2].asBool(pos)
			if err != nil {
				return value{}, err
			}
			i := int(idx)
			if i < 0 || i >= len(z.Cards) {
				return value{}, exprErr(pos, "", "set_face_up: index %d out of range", i)
			}
			z.Cards[i].FaceUp = faceUp
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "reveal_all", minArgs: 1, maxArgs: 1, effect: true,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			z, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			for i := range z.Cards {
				z.Cards[i].FaceUp = true
			}
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "collect_trick", minArgs: 1, maxArgs: 1, effect: true,
		argKinds: []argKind{argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			to, err := resolveZone(ctx, args[0].str, pos)
			if err != nil {
				return value{}, err
			}
			for _, te := range ctx.state.Trick {
				prependCard(to, te.Card)
			}
			ctx.state.Trick = nil
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "collect_all_to", minArgs: 2, maxArgs: 2, effect: true,
		argKinds: []argKind{argName, argName},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			base := args[0].str
			to, err := resolveZone(ctx, args[1].str, pos)
			if err != nil {
				return value{}, err
			}
			for i := range ctx.state.Players {
				from := ctx.state.zone(perPlayerZoneName(base, i))
				if from == nil {
					continue
				}
				moveAll(from, to)
			}
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "end_turn", minArgs: 0, maxArgs: 0, effect: true,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			advanceTurn(ctx.state)
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "skip_next_player", minArgs: 0, maxArgs: 0, effect: true,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			advanceTurn(ctx.state)
			advanceTurn(ctx.state)
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "reverse_turn_order", minArgs: 0, maxArgs: 0, effect: true,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			ctx.state.TurnDirection = -ctx.state.TurnDirection
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "set_lead_player", minArgs: 1, maxArgs: 1, effect: true,
		argKinds: []argKind{argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			i, err := args[0].asNumber(pos)
			if err != nil {
				return value{}, err
			}
			idx := int(i)
			if idx < 0 || idx >= len(ctx.state.Players) {
				return value{}, exprErr(pos, "", "set_lead_player: index %d out of range", idx)
			}
			ctx.state.CurrentPlayerIndex = idx
			ctx.state.TurnsTakenThisPhase = 0
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "set_var", minArgs: 2, maxArgs: 2, effect: true,
		argKinds: []argKind{argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			v, err := args[1].asNumber(pos)
			if err != nil {
				return value{}, err
			}
			ctx.state.Variables[args[0].str] = v
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "inc_var", minArgs: 2, maxArgs: 2, effect: true,
		argKinds: []argKind{argName, argValue},
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			delta, err := args[1].asNumber(pos)
			if err != nil {
				return value{}, err
			}
			ctx.state.Variables[args[0].str] += delta
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "calculate_scores", minArgs: 0, maxArgs: 0, effect: true,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			if err := calculateScores(ctx.state); err != nil {
				return value{}, err
			}
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "determine_winners", minArgs: 0, maxArgs: 0, effect: true,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			if err := determineWinners(ctx.state); err != nil {
				return value{}, err
			}
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "accumulate_scores", minArgs: 0, maxArgs: 0, effect: true,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			accumulateScores(ctx.state)
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "end_game", minArgs: 0, maxArgs: 0, effect: true,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			ctx.state.Status = StatusFinished
			return boolVal(true), nil
		},
	})

	registerBuiltin(&builtin{
		name: "reset_round", minArgs: 0, maxArgs: 0, effect: true,
		fn: func(ctx *evalContext, args []value, pos int) (value, error) {
			resetRoundState(ctx.state)
			return boolVal(true), nil
		},
	})
}

func moveTopBuiltinFn(ctx *evalContext, args []value, pos int) (value, error) {
	n, err := args[2].asNumber(pos)
	if err != nil {
		return value{}, err
	}
	return moveTopN(ctx, args[0].str, args[1].str, int(n), pos)
}

func moveTopN(ctx *evalContext, fromName, toName string, n int, pos int) (value, error) {
	from, err := resolveZone(ctx, fromName, pos)
	if err != nil {
		return value{}, err
	}
	to, err := resolveZone(ctx, toName, pos)
	if err != nil {
		return value{}, err
	}
	moveTop(from, to, n)
	return boolVal(true), nil
}

func perPlayerZoneName(base string, playerIndex int) string {
	return base + ":" + strconv.Itoa(playerIndex)
}
