package engine

import "strconv"

// evalContext carries everything a single expression evaluation needs.
// state is a private working copy (see EvalEffect) that effect builtins
// mutate directly and immediately — so that a `while(cond, draw(...))`
// body's later iterations observe earlier iterations' effects, and a
// not-taken `if` branch never touches state at all.
type evalContext struct {
	state   *CardGameState
	params  map[string]float64
	mutable bool
}

// EvalCondition evaluates a read-only boolean expression — a phase
// transition guard, an ActionDecl.Condition, a scoring predicate. Effect
// builtins are rejected in this context. The result is the expression's
// truthiness (see value.truthy) — a looser coercion than if/while and the
// logical operators apply, which require real booleans.
func EvalCondition(src string, state *CardGameState, params map[string]float64) (bool, error) {
	n, err := parseExpr(src)
	if err != nil {
		return false, err
	}
	ctx := &evalContext{state: state, params: params, mutable: false}
	v, err := evalNode(n, ctx, 0)
	if err != nil {
		return false, err
	}
	return v.truthy(), nil
}

// EvalValue evaluates a read-only expression for its own value — used
// for get_var-style lookups and for computed scoring expressions that
// aren't simple booleans.
func EvalValue(src string, state *CardGameState, params map[string]float64) (float64, error) {
	n, err := parseExpr(src)
	if err != nil {
		return 0, err
	}
	ctx := &evalContext{state: state, params: params, mutable: false}
	v, err := evalNode(n, ctx, 0)
	if err != nil {
		return 0, err
	}
	return v.asNumber(n.nodePos())
}

// EvalEffect evaluates one effect expression, mutably, against a clone of
// state and returns the resulting state. The state passed in is never
// modified, so a rejected or erroring effect never corrupts the caller's
// in-flight state.
func EvalEffect(src string, state *CardGameState, params map[string]float64) (*CardGameState, error) {
	n, err := parseExpr(src)
	if err != nil {
		return nil, err
	}
	ctx := &evalContext{state: state.clone(), params: params, mutable: true}
	if _, err := evalNode(n, ctx, 0); err != nil {
		return nil, err
	}
	return ctx.state, nil
}

func evalNode(n node, ctx *evalContext, depth int) (value, error) {
	if depth > maxEvalDepth {
		return value{}, exprErr(n.nodePos(), "", "expression exceeds max nesting depth %d", maxEvalDepth)
	}
	switch t := n.(type) {
	case *numberLit:
		return numVal(t.value), nil
	case *boolLit:
		return boolVal(t.value), nil
	case *stringLit:
		return strVal(t.value), nil
	case *ident:
		return evalIdent(t, ctx)
	case *member:
		name, err := resolveMemberName(t, ctx)
		if err != nil {
			return value{}, err
		}
		return strVal(name), nil
	case *unary:
		return evalUnary(t, ctx, depth)
	case *binary:
		return evalBinary(t, ctx, depth)
	case *call:
		return evalCall(t, ctx, depth)
	default:
		return value{}, exprErr(n.nodePos(), "", "unsupported expression node")
	}
}

// evalIdent implements spec §4.B's identifier resolution order: the four
// built-in state fields, then scores, then variables, else an error.
// Bare words that are meant to name a zone (e.g. "hand" in
// card_count(hand)) never reach this path — those are resolved by
// resolveNameArg directly from the call's argument AST.
func evalIdent(n *ident, ctx *evalContext) (value, error) {
	switch n.name {
	case "turn_number":
		return numVal(float64(ctx.state.TurnNumber)), nil
	case "player_count":
		return numVal(float64(len(ctx.state.Players))), nil
	case "current_player_index":
		return numVal(float64(ctx.state.CurrentPlayerIndex)), nil
	case "turn_direction":
		return numVal(float64(ctx.state.TurnDirection)), nil
	}
	if v, ok := ctx.state.Scores[n.name]; ok {
		return numVal(v), nil
	}
	if v, ok := ctx.state.Variables[n.name]; ok {
		return numVal(v), nil
	}
	return value{}, exprErr(n.pos, "", "unknown identifier %q", n.name)
}

// resolveMemberName handles the one composite identifier form spec §4.B
// names: current_player.<zone_base>, which expands to the concrete
// per-player zone name "<zone_base>:<currentPlayerIndex>".
func resolveMemberName(n *member, ctx *evalContext) (string, error) {
	base, ok := n.target.(*ident)
	if !ok || base.name != "current_player" {
		return "", exprErr(n.pos, "", "member access is only supported on current_player")
	}
	return n.field + ":" + strconv.Itoa(ctx.state.CurrentPlayerIndex), nil
}

func evalUnary(n *unary, ctx *evalContext, depth int) (value, error) {
	x, err := evalNode(n.x, ctx, depth+1)
	if err != nil {
		return value{}, err
	}
	switch n.op {
	case "-":
		f, err := x.asNumber(n.pos)
		if err != nil {
			return value{}, err
		}
		return numVal(-f), nil
	case "!":
		b, err := x.asBool(n.pos)
		if err != nil {
			return value{}, err
		}
		return boolVal(!b), nil
	default:
		return value{}, exprErr(n.pos, "", "unknown unary operator %q", n.op)
	}
}

func evalBinary(n *binary, ctx *evalContext, depth int) (value, error) {
	// && and || short-circuit, so the right operand is only evaluated
	// when it can affect the result.
	if n.op == "&&" {
		left, err := evalNode(n.left, ctx, depth+1)
		if err != nil {
			return value{}, err
		}
		leftBool, err := left.asBool(n.pos)
		if err != nil {
			return value{}, err
		}
		if !leftBool {
			return boolVal(false), nil
		}
		right, err := evalNode(n.right, ctx, depth+1)
		if err != nil {
			return value{}, err
		}
		rightBool, err := right.asBool(n.pos)
		if err != nil {
			return value{}, err
		}
		return boolVal(rightBool), nil
	}
	if n.op == "||" {
		left, err := evalNode(n.left, ctx, depth+1)
		if err != nil {
			return value{}, err
		}
		leftBool, err := left.asBool(n.pos)
		if err != nil {
			return value{}, err
		}
		if leftBool {
			return boolVal(true), nil
		}
		right, err := evalNode(n.right, ctx, depth+1)
		if err != nil {
			return value{}, err
		}
		rightBool, err := right.asBool(n.pos)
		if err != nil {
			return value{}, err
		}
		return boolVal(rightBool), nil
	}

	left, err := evalNode(n.left, ctx, depth+1)
	if err != nil {
		return value{}, err
	}
	right, err := evalNode(n.right, ctx, depth+1)
	if err != nil {
		return value{}, err
	}

	switch n.op {
	case "+", "-", "*", "/":
		lf, err := left.asNumber(n.pos)
		if err != nil {
			return value{}, err
		}
		rf, err := right.asNumber(n.pos)
		if err != nil {
			return value{}, err
		}
		switch n.op {
		case "+":
			return numVal(lf + rf), nil
		case "-":
			return numVal(lf - rf), nil
		case "*":
			return numVal(lf * rf), nil
		case "/":
			if rf == 0 {
				return value{}, exprErr(n.pos, "", "division by zero")
			}
			return numVal(lf / rf), nil
		}
	case "<", "<=", ">", ">=":
		lf, err := left.asNumber(n.pos)
		if err != nil {
			return value{}, err
		}
		rf, err := right.asNumber(n.pos)
		if err != nil {
			return value{}, err
		}
		switch n.op {
		case "<":
			return boolVal(lf < rf), nil
		case "<=":
			return boolVal(lf <= rf), nil
		case ">":
			return boolVal(lf > rf), nil
		case ">=":
			return boolVal(lf >= rf), nil
		}
	case "==", "!=":
		eq, err := valuesEqual(left, right, n.pos)
		if err != nil {
			return value{}, err
		}
		if n.op == "!=" {
			eq = !eq
		}
		return boolVal(eq), nil
	}
	return value{}, exprErr(n.pos, "", "unknown binary operator %q", n.op)
}

func valuesEqual(a, b value, pos int) (bool, error) {
	if a.kind != b.kind {
		return false, exprErr(pos, "", "cannot compare %s to %s", a.kind, b.kind)
	}
	switch a.kind {
	case kindNumber:
		return a.num == b.num, nil
	case kindBool:
		return a.b == b.b, nil
	case kindString:
		return a.str == b.str, nil
	default:
		return false, exprErr(pos, "", "cannot compare values of unknown kind")
	}
}

// resolveNameArg resolves a builtin argument declared argName: a bare
// identifier or string literal is taken literally as its own name text,
// and current_player.<field> expands the same way evalNode's *member
// case does. This deliberately bypasses evalIdent's resolution chain —
// "hand" as a zone-name argument is never looked up as a variable.
func resolveNameArg(n node, ctx *evalContext) (string, error) {
	switch t := n.(type) {
	case *ident:
		return t.name, nil
	case *stringLit:
		return t.value, nil
	case *member:
		return resolveMemberName(t, ctx)
	default:
		return "", exprErr(n.nodePos(), "", "expected a zone or variable name here")
	}
}

func evalCall(n *call, ctx *evalContext, depth int) (value, error) {
	nameNode, ok := n.callee.(*ident)
	if !ok {
		return value{}, exprErr(n.pos, "", "call target must be a plain function name")
	}

	switch nameNode.name {
	case "if":
		return evalIf(n, ctx, depth)
	case "while":
		return evalWhile(n, ctx, depth)
	}

	b, ok := lookupBuiltin(nameNode.name)
	if !ok {
		return value{}, exprErr(n.pos, "", "unknown function %q", nameNode.name)
	}
	if len(n.args) < b.minArgs || (b.maxArgs >= 0 && len(n.args) > b.maxArgs) {
		return value{}, exprErr(n.pos, "", "%s: wrong number of arguments", nameNode.name)
	}
	if b.effect && !ctx.mutable {
		return value{}, exprErr(n.pos, "", "%s: effect builtin used in a read-only context", nameNode.name)
	}

	args := make([]value, len(n.args))
	for i, a := range n.args {
		if b.argKindFor(i) == argName {
			name, err := resolveNameArg(a, ctx)
			if err != nil {
				return value{}, err
			}
			args[i] = strVal(name)
			continue
		}
		v, err := evalNode(a, ctx, depth+1)
		if err != nil {
			return value{}, err
		}
		args[i] = v
	}
	return b.fn(ctx, args, n.pos)
}

func evalIf(n *call, ctx *evalContext, depth int) (value, error) {
	if len(n.args) < 2 || len(n.args) > 3 {
		return value{}, exprErr(n.pos, "", "if: expects 2 or 3 arguments")
	}
	cond, err := evalNode(n.args[0], ctx, depth+1)
	if err != nil {
		return value{}, err
	}
	condBool, err := cond.asBool(n.pos)
	if err != nil {
		return value{}, err
	}
	if condBool {
		return evalNode(n.args[1], ctx, depth+1)
	}
	if len(n.args) == 3 {
		return evalNode(n.args[2], ctx, depth+1)
	}
	return boolVal(false), nil
}

func evalWhile(n *call, ctx *evalContext, depth int) (value, error) {
	if len(n.args) != 2 {
		return value{}, exprErr(n.pos, "", "while: expects exactly 2 arguments")
	}
	last := value(boolVal(false))
	for i := 0; i < maxWhileIterations; i++ {
		cond, err := evalNode(n.args[0], ctx, depth+1)
		if err != nil {
			return value{}, err
		}
		condBool, err := cond.asBool(n.pos)
		if err != nil {
			return value{}, err
		}
		if !condBool {
			return last, nil
		}
		v, err := evalNode(n.args[1], ctx, depth+1)
		if err != nil {
			return value{}, err
		}
		last = v
	}
	return value{}, exprErr(n.pos, "", "while: exceeded %d iterations", maxWhileIterations)
}
