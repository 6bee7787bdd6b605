package engine

import "sync"

// argKind tags how a builtin's positional argument is resolved. argValue
// arguments are evaluated as ordinary expressions (numbers/bools/
// strings); argName arguments are resolved directly from the argument's
// AST shape (a bare identifier, a member access, or a string literal) to
// a name string — a zone name, a variable name — without going through
// identifier resolution, which is how a ruleset can write
// `card_count(hand)` without "hand" needing to be a declared variable.
type argKind uint8

const (
	argValue argKind = iota
	argName
)

// builtinFn is the shape every query and effect builtin implements.
// Effect builtins mutate ctx.state directly (see evalContext) and are
// only callable from a mutable evaluation context.
type builtinFn func(ctx *evalContext, args []value, pos int) (value, error)

// builtin describes one registered function: its arity, how to resolve
// each positional argument, and whether it is an effect (and therefore
// only callable from a mutable evaluation context).
type builtin struct {
	name     string
	minArgs  int
	maxArgs  int // -1 means unbounded
	argKinds []argKind
	effect   bool
	fn       builtinFn
}

// argKindFor returns the argKind for positional argument i, repeating
// the last declared kind for variadic tails (e.g. concat's every
// argument is argValue).
func (b *builtin) argKindFor(i int) argKind {
	if len(b.argKinds) == 0 {
		return argValue
	}
	if i < len(b.argKinds) {
		return b.argKinds[i]
	}
	return b.argKinds[len(b.argKinds)-1]
}

var (
	registryMu sync.Mutex
	registry   = map[string]*builtin{}
)

// registerBuiltin adds or replaces a builtin in the process-wide
// registry. It is unexported, and the package exports no wrapper for it:
// outside this package only the default set is available.
func registerBuiltin(b *builtin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[b.name] = b
}

// lookupBuiltin fetches a registered builtin by name, ok=false if none.
func lookupBuiltin(name string) (*builtin, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	b, ok := registry[name]
	return b, ok
}

// ClearAllBuiltins empties the registry. Tests call this (paired with
// RegisterAllDefaults) to assert behavior against a known-minimal
// registry instead of the full default set.
func ClearAllBuiltins() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = map[string]*builtin{}
}

// RegisterAllDefaults installs every builtin the engine ships (query
// builtins from builtins_query.go, effect builtins from
// builtins_effect.go). CreateReducer calls this (CreateInitialState does
// not); it is idempotent, so calling it again after ClearAllBuiltins
// simply restores the default set.
func RegisterAllDefaults() {
	registerQueryBuiltins()
	registerEffectBuiltins()
}

