package ruleset

import (
	"fmt"
	"regexp"
)

var (
	versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	slugPattern    = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Validate checks the structural invariants spec.md §6 requires of a
// ruleset document. It returns every violation found, not just the first,
// the way the teacher's GenomeValidator.Validate collects errors.
func Validate(r *Ruleset) []*ParseError {
	var errs []*ParseError

	if !versionPattern.MatchString(r.Meta.Version) {
		errs = append(errs, &ParseError{Field: "meta.version", Message: fmt.Sprintf("%q does not match ^\\d+\\.\\d+\\.\\d+$", r.Meta.Version)})
	}
	if !slugPattern.MatchString(r.Meta.Slug) {
		errs = append(errs, &ParseError{Field: "meta.slug", Message: fmt.Sprintf("%q does not match ^[a-z0-9-]+$", r.Meta.Slug)})
	}
	if r.Meta.Players.Min < 1 {
		errs = append(errs, &ParseError{Field: "meta.players.min", Message: "must be >= 1"})
	}
	if r.Meta.Players.Max < r.Meta.Players.Min {
		errs = append(errs, &ParseError{Field: "meta.players", Message: "max must be >= min"})
	}

	if len(r.Zones) == 0 {
		errs = append(errs, &ParseError{Field: "zones", Message: "at least one zone is required"})
	}
	if len(r.Roles) == 0 {
		errs = append(errs, &ParseError{Field: "roles", Message: "at least one role is required"})
	}
	if len(r.Phases) == 0 {
		errs = append(errs, &ParseError{Field: "phases", Message: "at least one phase is required"})
	}

	if r.Deck.Preset == "" && len(r.Deck.Custom) == 0 {
		errs = append(errs, &ParseError{Field: "deck", Message: "either preset or custom must be populated"})
	}
	if r.Deck.Preset != "" {
		switch r.Deck.Preset {
		case "standard_52", "standard_54", "uno_108":
		default:
			errs = append(errs, &ParseError{Field: "deck.preset", Message: fmt.Sprintf("unknown preset %q", r.Deck.Preset)})
		}
	}

	roleNames := make(map[string]bool, len(r.Roles))
	for _, role := range r.Roles {
		if role.Name == "" {
			errs = append(errs, &ParseError{Field: "roles", Message: "role name must not be empty"})
			continue
		}
		if roleNames[role.Name] {
			errs = append(errs, &ParseError{Field: "roles", Message: fmt.Sprintf("duplicate role name %q", role.Name)})
		}
		roleNames[role.Name] = true
		if role.Count != RoleCountPerPlayer && role.Count < 1 {
			errs = append(errs, &ParseError{Field: fmt.Sprintf("roles[%s].count", role.Name), Message: "must be a positive integer or the per-player sentinel"})
		}
	}

	zoneNames := make(map[string]bool, len(r.Zones))
	for _, z := range r.Zones {
		if zoneNames[z.Name] {
			errs = append(errs, &ParseError{Field: "zones", Message: fmt.Sprintf("duplicate zone name %q", z.Name)})
		}
		zoneNames[z.Name] = true
		for _, owner := range z.Owners {
			if !roleNames[owner] {
				errs = append(errs, &ParseError{Field: fmt.Sprintf("zones[%s].owners", z.Name), Message: fmt.Sprintf("references unknown role %q", owner)})
			}
		}
		if z.MaxCards < 0 {
			errs = append(errs, &ParseError{Field: fmt.Sprintf("zones[%s].maxCards", z.Name), Message: "must be >= 0"})
		}
	}

	phaseNames := make(map[string]bool, len(r.Phases))
	for _, p := range r.Phases {
		if phaseNames[p.Name] {
			errs = append(errs, &ParseError{Field: "phases", Message: fmt.Sprintf("duplicate phase name %q", p.Name)})
		}
		phaseNames[p.Name] = true
		switch p.Kind {
		case PhaseAutomatic, PhaseTurnBased, PhaseAllPlayers:
		default:
			errs = append(errs, &ParseError{Field: fmt.Sprintf("phases[%s].kind", p.Name), Message: fmt.Sprintf("unknown phase kind %q", p.Kind)})
		}
	}
	for _, p := range r.Phases {
		for _, t := range p.Transitions {
			if !phaseNames[t.To] {
				errs = append(errs, &ParseError{Field: fmt.Sprintf("phases[%s].transitions", p.Name), Message: fmt.Sprintf("transition references unknown phase %q", t.To)})
			}
		}
	}
	return errs
}
