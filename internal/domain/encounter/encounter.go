package encounter

import (
	"sort"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
)

// Importance ranks how dangerous a boss action is
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

// BossAction is a scheduled damage event on the encounter timeline
type BossAction struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Time         float64            `json:"time"` // seconds from pull
	DamageType   ability.DamageType `json:"damageType"`
	Importance   Importance         `json:"importance"`
	Description  string             `json:"description,omitempty"`
	IsTankBuster bool               `json:"isTankBuster,omitempty"`
}

// Encounter is the reference definition of a fight
type Encounter struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Level   int           `json:"level"`
	Actions []*BossAction `json:"actions"`
}

// SortActions orders actions by time; equal times keep their original order
func SortActions(actions []*BossAction) []*BossAction {
	sorted := make([]*BossAction, 0, len(actions))
	for _, a := range actions {
		if a != nil {
			sorted = append(sorted, a)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	return sorted
}

// Timeline is a time-ordered, id-indexed view over boss actions
type Timeline struct {
	actions []*BossAction
	byID    map[string]*BossAction
}

// NewTimeline sorts the actions and indexes them by id.
// When ids repeat, the first occurrence in time order wins the index.
func NewTimeline(actions []*BossAction) *Timeline {
	sorted := SortActions(actions)
	byID := make(map[string]*BossAction, len(sorted))
	for _, a := range sorted {
		if _, exists := byID[a.ID]; !exists {
			byID[a.ID] = a
		}
	}
	return &Timeline{actions: sorted, byID: byID}
}

// Actions returns the actions in time order
func (t *Timeline) Actions() []*BossAction {
	return t.actions
}

// Get returns the action with the given id, or nil
func (t *Timeline) Get(id string) *BossAction {
	return t.byID[id]
}

// TimeOf returns the time of an action and whether it exists
func (t *Timeline) TimeOf(id string) (float64, bool) {
	a := t.byID[id]
	if a == nil {
		return 0, false
	}
	return a.Time, true
}

// Len returns the number of actions
func (t *Timeline) Len() int {
	return len(t.actions)
}

// Timeline builds the timeline for this encounter
func (e *Encounter) Timeline() *Timeline {
	return NewTimeline(e.Actions)
}
