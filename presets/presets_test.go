package presets

import (
	"testing"

	"github.com/signalnine/cardrules/ruleset"
)

func TestAllPresetsValidate(t *testing.T) {
	for name, build := range Registry {
		rs := build()
		if errs := ruleset.Validate(rs); len(errs) > 0 {
			t.Errorf("%s: validation errors: %v", name, errs)
		}
	}
}

func TestAllPresetsRegisteredUnderOwnSlug(t *testing.T) {
	for name, build := range Registry {
		rs := build()
		if rs.Meta.Slug != name {
			t.Errorf("registered under %q but builds slug %q", name, rs.Meta.Slug)
		}
	}
}

func TestByNameUnknownSlug(t *testing.T) {
	if _, ok := ByName("not-a-real-game"); ok {
		t.Errorf("expected ByName to report unknown slug as not found")
	}
}

func TestNamesCoversRegistry(t *testing.T) {
	names := Names()
	if len(names) != len(Registry) {
		t.Fatalf("got %d names, want %d", len(names), len(Registry))
	}
	for _, n := range names {
		if _, ok := Registry[n]; !ok {
			t.Errorf("Names() returned %q which is not in Registry", n)
		}
	}
}
