package catalogsync

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testUnitSet() UnitSet {
	return NewUnitSet(
		[]Unit{
			{ID: "b", Priority: 2},
			{ID: "a", Priority: 1},
			{ID: "c", Priority: 1},
			{ID: "d", Priority: 3},
		},
		map[string][]string{"fast": {"a", "c"}},
	)
}

func TestUnitSetAllOrdering(t *testing.T) {
	all := testUnitSet().All()
	ids := make([]string, len(all))
	for i, u := range all {
		ids[i] = u.ID
	}
	require.Equal(t, []string{"a", "c", "b", "d"}, ids)
}

func TestUnitSetSelect(t *testing.T) {
	set := testUnitSet()

	units, err := set.Select([]string{"d", "b"})
	require.NoError(t, err)
	require.Len(t, units, 2)
	require.Equal(t, "d", units[0].ID)
	require.Equal(t, "b", units[1].ID)

	// groups expand in place, duplicates collapse
	units, err = set.Select([]string{"c", "fast", "b"})
	require.NoError(t, err)
	ids := make([]string, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	require.Equal(t, []string{"c", "a", "b"}, ids)

	_, err = set.Select([]string{"a", "nope"})
	require.Error(t, err)
}

func TestDefaultUnitsResolvable(t *testing.T) {
	set := DefaultUnits()
	require.NotEmpty(t, set.All())

	for name, members := range set.Groups() {
		units, err := set.Select([]string{name})
		require.NoError(t, err, "group %q", name)
		require.Len(t, units, len(members))
	}
}
