package presets

import "github.com/signalnine/cardrules/ruleset"

// Registry maps a ruleset's slug to the builder that constructs it, the
// way StylePresets maps a fitness style name to its weight table.
var Registry = map[string]func() *ruleset.Ruleset{
	"war":          War,
	"blackjack":    Blackjack,
	"ninety-nine":  NinetyNine,
	"uno":          Uno,
	"hearts":       Hearts,
	"crazy-eights": CrazyEights,
}

// ByName builds the ruleset registered under slug, if any.
func ByName(slug string) (*ruleset.Ruleset, bool) {
	build, ok := Registry[slug]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Names lists every registered slug.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	return names
}
