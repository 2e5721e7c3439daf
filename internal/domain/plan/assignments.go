package plan

import (
	"github.com/KirkDiggler/raidplan/internal/domain/ability"
)

// Assignments maps a boss action id to the abilities directly assigned to it, in assignment order.
// An ability appears at most once per action and no action keeps an empty list.
type Assignments map[string][]*ability.Definition

// Add assigns the ability to the action. It returns false when it was already there.
func (a Assignments) Add(actionID string, def *ability.Definition) bool {
	if def == nil || a.Has(actionID, def.ID) {
		return false
	}
	a[actionID] = append(a[actionID], def)
	return true
}

// Remove unassigns the ability from the action and drops the action once nothing is left
func (a Assignments) Remove(actionID, abilityID string) bool {
	list, exists := a[actionID]
	if !exists {
		return false
	}

	for i, def := range list {
		if def.ID != abilityID {
			continue
		}
		remaining := make([]*ability.Definition, 0, len(list)-1)
		remaining = append(remaining, list[:i]...)
		remaining = append(remaining, list[i+1:]...)
		if len(remaining) == 0 {
			delete(a, actionID)
		} else {
			a[actionID] = remaining
		}
		return true
	}
	return false
}

// ClearAction removes every assignment on the action and returns what was there
func (a Assignments) ClearAction(actionID string) []*ability.Definition {
	list := a[actionID]
	delete(a, actionID)
	return list
}

// Has returns true if the ability is directly assigned to the action
func (a Assignments) Has(actionID, abilityID string) bool {
	for _, def := range a[actionID] {
		if def.ID == abilityID {
			return true
		}
	}
	return false
}

// For returns the abilities directly assigned to the action
func (a Assignments) For(actionID string) []*ability.Definition {
	return a[actionID]
}

// Clone copies the map and every list; definitions are shared since they are immutable
func (a Assignments) Clone() Assignments {
	cloned := make(Assignments, len(a))
	for actionID, list := range a {
		cp := make([]*ability.Definition, len(list))
		copy(cp, list)
		cloned[actionID] = cp
	}
	return cloned
}

// Count returns the total number of assignments
func (a Assignments) Count() int {
	total := 0
	for _, list := range a {
		total += len(list)
	}
	return total
}

// Export reduces the assignments to ability ids, the persisted form
func (a Assignments) Export() Snapshot {
	snap := make(Snapshot, len(a))
	for actionID, list := range a {
		if len(list) == 0 {
			continue
		}
		ids := make([]string, 0, len(list))
		for _, def := range list {
			ids = append(ids, def.ID)
		}
		snap[actionID] = ids
	}
	return snap
}
