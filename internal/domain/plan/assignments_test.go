package plan_test

import (
	"testing"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	reprisal = &ability.Definition{ID: "reprisal", Name: "Reprisal"}
	addle    = &ability.Definition{ID: "addle", Name: "Addle"}
	feint    = &ability.Definition{ID: "feint", Name: "Feint"}
)

func roster(defs ...*ability.Definition) plan.Lookup {
	byID := make(map[string]*ability.Definition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}
	return func(id string) *ability.Definition { return byID[id] }
}

func TestAssignments_AddIsIdempotent(t *testing.T) {
	a := plan.Assignments{}

	assert.True(t, a.Add("raidwide-1", reprisal))
	assert.False(t, a.Add("raidwide-1", reprisal))
	assert.True(t, a.Add("raidwide-1", addle))
	assert.False(t, a.Add("raidwide-1", nil))

	require.Len(t, a.For("raidwide-1"), 2)
	assert.Equal(t, "reprisal", a.For("raidwide-1")[0].ID)
	assert.Equal(t, 2, a.Count())
}

func TestAssignments_RemoveDropsEmptyActions(t *testing.T) {
	a := plan.Assignments{}
	a.Add("raidwide-1", reprisal)
	a.Add("raidwide-1", addle)

	assert.True(t, a.Remove("raidwide-1", "reprisal"))
	assert.Equal(t, []*ability.Definition{addle}, a.For("raidwide-1"))

	assert.False(t, a.Remove("raidwide-1", "reprisal"))
	assert.False(t, a.Remove("nowhere", "addle"))

	assert.True(t, a.Remove("raidwide-1", "addle"))
	_, exists := a["raidwide-1"]
	assert.False(t, exists, "empty action entry must be deleted")
}

func TestAssignments_ClearAction(t *testing.T) {
	a := plan.Assignments{}
	a.Add("tb-1", reprisal)
	a.Add("tb-1", feint)

	cleared := a.ClearAction("tb-1")
	assert.Len(t, cleared, 2)
	assert.Empty(t, a)
}

func TestAssignments_CloneIsIndependent(t *testing.T) {
	a := plan.Assignments{}
	a.Add("raidwide-1", reprisal)

	cloned := a.Clone()
	cloned.Add("raidwide-1", addle)
	cloned.Remove("raidwide-1", "reprisal")

	assert.Equal(t, []*ability.Definition{reprisal}, a.For("raidwide-1"))
}

func TestSnapshot_RoundTrip(t *testing.T) {
	lookup := roster(reprisal, addle, feint)

	original := plan.Assignments{}
	original.Add("raidwide-1", addle)
	original.Add("raidwide-1", reprisal)
	original.Add("tb-1", feint)

	exported := original.Export()
	assert.Equal(t, plan.Snapshot{
		"raidwide-1": {"addle", "reprisal"},
		"tb-1":       {"feint"},
	}, exported)

	rebuilt, missing := plan.Rehydrate(exported, lookup)
	assert.Empty(t, missing)
	assert.Equal(t, original, rebuilt)
	assert.Equal(t, exported, rebuilt.Export())
}

func TestRehydrate_SkipsUnknownAndDuplicates(t *testing.T) {
	snap := plan.Snapshot{
		"raidwide-1": {"addle", "retired-ability", "addle"},
		"raidwide-2": {"retired-ability"},
	}

	rebuilt, missing := plan.Rehydrate(snap, roster(addle))

	assert.Equal(t, []*ability.Definition{addle}, rebuilt.For("raidwide-1"))
	_, exists := rebuilt["raidwide-2"]
	assert.False(t, exists)
	assert.ElementsMatch(t, []plan.MissingReference{
		{ActionID: "raidwide-1", AbilityID: "retired-ability", Index: 1},
		{ActionID: "raidwide-2", AbilityID: "retired-ability", Index: 0},
	}, missing)
}

func TestSnapshot_RestoreKeepsStoredOrder(t *testing.T) {
	stored := plan.Snapshot{
		"raidwide-1": {"retired-ability", "reprisal"},
		"raidwide-2": {"addle", "ghost", "feint"},
		"raidwide-3": {"ghost"},
	}
	assignments, missing := plan.Rehydrate(stored, roster(reprisal, addle, feint))

	testCases := []struct {
		name     string
		mutate   func(a plan.Assignments)
		expected plan.Snapshot
	}{
		{
			name:     "untouched",
			mutate:   func(a plan.Assignments) {},
			expected: stored,
		},
		{
			name:   "removal keeps unknown ids in place",
			mutate: func(a plan.Assignments) { a.Remove("raidwide-2", "addle") },
			expected: plan.Snapshot{
				"raidwide-1": {"retired-ability", "reprisal"},
				"raidwide-2": {"ghost", "feint"},
				"raidwide-3": {"ghost"},
			},
		},
		{
			name:   "new ids follow",
			mutate: func(a plan.Assignments) { a.Add("raidwide-1", addle) },
			expected: plan.Snapshot{
				"raidwide-1": {"retired-ability", "reprisal", "addle"},
				"raidwide-2": {"addle", "ghost", "feint"},
				"raidwide-3": {"ghost"},
			},
		},
		{
			name:   "unknown ids outlive every known one",
			mutate: func(a plan.Assignments) { a.ClearAction("raidwide-1") },
			expected: plan.Snapshot{
				"raidwide-1": {"retired-ability"},
				"raidwide-2": {"addle", "ghost", "feint"},
				"raidwide-3": {"ghost"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := assignments.Clone()
			tc.mutate(a)

			snap := a.Export()
			snap.Restore(stored, missing)
			assert.Equal(t, tc.expected, snap)
		})
	}
}

func TestSnapshot_RestoreAppendsStrayReferences(t *testing.T) {
	snap := plan.Snapshot{"raidwide-1": {"reprisal"}}
	snap.Restore(plan.Snapshot{}, []plan.MissingReference{{ActionID: "raidwide-1", AbilityID: "ghost", Index: 3}})

	assert.Equal(t, plan.Snapshot{"raidwide-1": {"reprisal", "ghost"}}, snap)
}

func TestPlan_Clone(t *testing.T) {
	p := &plan.Plan{ID: "plan-1", Assignments: plan.Snapshot{"a": {"addle"}}}
	cp := p.Clone()
	cp.Assignments["a"][0] = "feint"
	assert.Equal(t, "addle", p.Assignments["a"][0])

	var nilPlan *plan.Plan
	assert.Nil(t, nilPlan.Clone())
}
