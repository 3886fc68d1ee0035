package catalogsync

import (
	"fmt"
	"sort"
)

// Unit is one bounded slice of the catalog, synced to exhaustion
// before the next one starts.
type Unit struct {
	ID string `json:"id"`
	// human readable, for logs and the summary table
	Name string `json:"name"`
	// apicalypse where-expression selecting the slice
	Filter string `json:"filter"`
	// lower runs earlier
	Priority int `json:"priority"`
	// rough record count, for progress reporting only
	Estimate int64 `json:"estimate"`
}

// UnitSet is an immutable catalog of the known units of work plus
// named priority groups. it is configuration data handed to the
// orchestrator, never mutated at runtime.
type UnitSet struct {
	units  map[string]Unit
	groups map[string][]string
}

func NewUnitSet(units []Unit, groups map[string][]string) UnitSet {
	byId := make(map[string]Unit, len(units))
	for _, u := range units {
		byId[u.ID] = u
	}
	return UnitSet{units: byId, groups: groups}
}

// All returns every unit ordered by priority, ties broken by id.
func (s UnitSet) All() []Unit {
	out := make([]Unit, 0, len(s.units))
	for _, u := range s.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Groups returns the named priority groups.
func (s UnitSet) Groups() map[string][]string {
	out := make(map[string][]string, len(s.groups))
	for name, members := range s.groups {
		out[name] = append([]string(nil), members...)
	}
	return out
}

// Select resolves a mix of unit ids and group names, preserving
// request order and dropping duplicates.
func (s UnitSet) Select(ids []string) ([]Unit, error) {
	var out []Unit
	seen := map[string]bool{}

	appendUnit := func(id string) error {
		if seen[id] {
			return nil
		}
		u, ok := s.units[id]
		if !ok {
			return fmt.Errorf("unknown unit %q", id)
		}
		seen[id] = true
		out = append(out, u)
		return nil
	}

	for _, id := range ids {
		if members, ok := s.groups[id]; ok {
			for _, m := range members {
				if err := appendUnit(m); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := appendUnit(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DefaultUnits mirrors the platform slices the review app syncs from
// the catalog. estimates are of course stale the moment they are
// written down.
func DefaultUnits() UnitSet {
	units := []Unit{
		{ID: "pc", Name: "PC (Windows)", Filter: "platforms = (6)", Priority: 1, Estimate: 180000},
		{ID: "ps5", Name: "PlayStation 5", Filter: "platforms = (167)", Priority: 1, Estimate: 3600},
		{ID: "ps4", Name: "PlayStation 4", Filter: "platforms = (48)", Priority: 2, Estimate: 8200},
		{ID: "xbox-series", Name: "Xbox Series X|S", Filter: "platforms = (169)", Priority: 1, Estimate: 3400},
		{ID: "xbox-one", Name: "Xbox One", Filter: "platforms = (49)", Priority: 2, Estimate: 5700},
		{ID: "switch", Name: "Nintendo Switch", Filter: "platforms = (130)", Priority: 1, Estimate: 14500},
		{ID: "ps3", Name: "PlayStation 3", Filter: "platforms = (9)", Priority: 3, Estimate: 4000},
		{ID: "xbox-360", Name: "Xbox 360", Filter: "platforms = (12)", Priority: 3, Estimate: 3100},
		{ID: "wii-u", Name: "Wii U", Filter: "platforms = (41)", Priority: 4, Estimate: 1100},
		{ID: "retro", Name: "Retro (pre-2000)", Filter: "first_release_date < 946684800", Priority: 5, Estimate: 25000},
	}
	groups := map[string][]string{
		"current": {"pc", "ps5", "xbox-series", "switch"},
		"lastgen": {"ps4", "xbox-one", "ps3", "xbox-360", "wii-u"},
	}
	return NewUnitSet(units, groups)
}
