package cooldown

import (
	"sort"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
)

// Violation is a use placed while every charge of its clock was still cooling down
type Violation struct {
	AbilityID       string
	ActionID        string
	Time            float64
	BlockedByAction string
	BlockedByTime   float64
	Cooldown        float64
}

// Audit lists uses that break the spacing rule, e.g. in an imported plan.
// A plan built only through CheckCooldown and InsertAndCascade never has any.
func (t *Tracker) Audit(assignments plan.Assignments) []Violation {
	clocks := make(map[string]*ability.Definition)
	for _, list := range assignments {
		for _, def := range list {
			key := def.ID
			if def.SharedCooldownGroup != "" {
				key = "group:" + def.SharedCooldownGroup
			}
			if current, ok := clocks[key]; !ok || def.ID < current.ID {
				clocks[key] = def
			}
		}
	}

	keys := make([]string, 0, len(clocks))
	for k := range clocks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var violations []Violation
	for _, key := range keys {
		def := clocks[key]
		cd := def.CooldownAt(t.level)
		charges := def.Charges()
		uses := t.usesSharingClock(assignments, def)

		for i, u := range uses {
			var busy []use
			for _, earlier := range uses[:i] {
				if earlier.time < u.time && u.time-earlier.time < cd {
					busy = append(busy, earlier)
				}
			}
			if len(busy) < charges {
				continue
			}
			blocking := busy[len(busy)-charges]
			violations = append(violations, Violation{
				AbilityID:       u.abilityID,
				ActionID:        u.actionID,
				Time:            u.time,
				BlockedByAction: blocking.actionID,
				BlockedByTime:   blocking.time,
				Cooldown:        cd,
			})
		}
	}
	return violations
}
