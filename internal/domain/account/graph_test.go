package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(t *testing.T, ordered []Step, name string) int {
	t.Helper()
	for i, s := range ordered {
		if s.Name == name {
			return i
		}
	}
	t.Fatalf("step %q not in plan", name)
	return -1
}

func TestPlan_ContainsEveryStepOnce(t *testing.T) {
	ordered := Plan()
	assert.Len(t, ordered, len(steps()))

	seen := make(map[string]bool)
	for _, s := range ordered {
		assert.False(t, seen[s.Name], "step %q appears twice", s.Name)
		seen[s.Name] = true
	}
}

func TestPlan_RespectsDependencies(t *testing.T) {
	ordered := Plan()

	for _, s := range ordered {
		for _, req := range s.Requires {
			assert.Less(t, indexOf(t, ordered, req), indexOf(t, ordered, s.Name),
				"%q must run before %q", req, s.Name)
		}
	}
}

func TestPlan_LeafToRootOrder(t *testing.T) {
	ordered := Plan()

	assert.Less(t, indexOf(t, ordered, "applications"), indexOf(t, ordered, "casting_calls"))
	assert.Less(t, indexOf(t, ordered, "casting_calls"), indexOf(t, ordered, "projects"))
	assert.Less(t, indexOf(t, ordered, "projects"), indexOf(t, ordered, "studio"))
	assert.Less(t, indexOf(t, ordered, "studio"), indexOf(t, ordered, "tenant"))
	assert.Less(t, indexOf(t, ordered, "profile"), indexOf(t, ordered, "tenant"))
	assert.Equal(t, "user", ordered[len(ordered)-1].Name)
}

func TestSortSteps_UnknownRequirement(t *testing.T) {
	_, err := sortSteps([]Step{
		{Name: "a", Requires: []string{"missing"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown step")
}

func TestSortSteps_Cycle(t *testing.T) {
	_, err := sortSteps([]Step{
		{Name: "a", Requires: []string{"b"}},
		{Name: "b", Requires: []string{"a"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestSortSteps_StableAmongReady(t *testing.T) {
	ordered, err := sortSteps([]Step{
		{Name: "x"},
		{Name: "y"},
		{Name: "z", Requires: []string{"x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "x", ordered[0].Name)
	assert.Equal(t, "y", ordered[1].Name)
	assert.Equal(t, "z", ordered[2].Name)
}
