package plan

import (
	"github.com/KirkDiggler/raidplan/internal/domain/ability"
)

// Snapshot is the ability-id-only form of Assignments used for storage and export
type Snapshot map[string][]string

// Clone deep copies the snapshot
func (s Snapshot) Clone() Snapshot {
	cloned := make(Snapshot, len(s))
	for actionID, ids := range s {
		cp := make([]string, len(ids))
		copy(cp, ids)
		cloned[actionID] = cp
	}
	return cloned
}

// MissingReference is an ability id in a snapshot that the roster does not know.
// Index is its position in the action's stored list.
type MissingReference struct {
	ActionID  string
	AbilityID string
	Index     int
}

// Restore merges unknown references back into the snapshot in the order stored had them.
// Surviving ids keep their stored positions relative to each other and new ids follow.
// References whose Index no longer matches stored are appended.
func (s Snapshot) Restore(stored Snapshot, missing []MissingReference) {
	byAction := make(map[string][]MissingReference)
	for _, m := range missing {
		byAction[m.ActionID] = append(byAction[m.ActionID], m)
	}

	for actionID, refs := range byAction {
		previous := stored[actionID]
		current := s[actionID]

		unknown := make(map[int]bool, len(refs))
		var stray []string
		for _, m := range refs {
			if m.Index >= 0 && m.Index < len(previous) && previous[m.Index] == m.AbilityID {
				unknown[m.Index] = true
			} else {
				stray = append(stray, m.AbilityID)
			}
		}

		present := make(map[string]bool, len(current))
		for _, id := range current {
			present[id] = true
		}

		merged := make([]string, 0, len(current)+len(refs))
		placed := make(map[string]bool, len(current))
		for i, id := range previous {
			switch {
			case unknown[i]:
				merged = append(merged, id)
			case present[id] && !placed[id]:
				merged = append(merged, id)
				placed[id] = true
			}
		}
		for _, id := range current {
			if !placed[id] {
				merged = append(merged, id)
				placed[id] = true
			}
		}
		s[actionID] = append(merged, stray...)
	}
}

// Lookup resolves an ability id against the reference roster
type Lookup func(abilityID string) *ability.Definition

// Rehydrate rebuilds Assignments from a snapshot.
// Unknown ids and duplicates are skipped; unknown ids are returned so callers can warn.
func Rehydrate(s Snapshot, lookup Lookup) (Assignments, []MissingReference) {
	assignments := make(Assignments, len(s))
	var missing []MissingReference

	for actionID, ids := range s {
		for i, id := range ids {
			def := lookup(id)
			if def == nil {
				missing = append(missing, MissingReference{ActionID: actionID, AbilityID: id, Index: i})
				continue
			}
			assignments.Add(actionID, def)
		}
	}

	return assignments, missing
}
