package cooldown

import (
	"sort"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/KirkDiggler/raidplan/internal/domain/encounter"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
)

// Status answers whether an ability can be used at a point on the timeline
type Status struct {
	AbilityID  string
	TargetTime float64
	OnCooldown bool
	Cooldown   float64

	// Set when OnCooldown is true
	ConflictActionID   string
	ConflictActionName string
	ConflictAbilityID  string // differs from AbilityID when a shared cooldown group blocks
	ConflictTime       float64
	TimeUntilReady     float64
}

// Tracker checks ability availability against the uses recorded in an assignment map.
// It holds only immutable reference data and is safe to share.
type Tracker struct {
	lookup   plan.Lookup
	timeline *encounter.Timeline
	level    int
}

// TrackerConfig holds the reference data a Tracker needs
type TrackerConfig struct {
	Lookup   plan.Lookup
	Timeline *encounter.Timeline
	Level    int
}

// NewTracker creates a cooldown tracker for one encounter at one level
func NewTracker(cfg *TrackerConfig) *Tracker {
	if cfg.Lookup == nil {
		panic("ability lookup is required")
	}
	if cfg.Timeline == nil {
		panic("timeline is required")
	}

	return &Tracker{
		lookup:   cfg.Lookup,
		timeline: cfg.Timeline,
		level:    cfg.Level,
	}
}

// use is one placement of an ability on the timeline
type use struct {
	actionID  string
	abilityID string
	time      float64
}

// usesSharingClock collects every placement that runs on def's cooldown clock, ordered by time.
// Actions missing from the timeline are ignored.
func (t *Tracker) usesSharingClock(assignments plan.Assignments, def *ability.Definition) []use {
	var uses []use
	for actionID, list := range assignments {
		at, ok := t.timeline.TimeOf(actionID)
		if !ok {
			continue
		}
		for _, assigned := range list {
			if def.SharesCooldownWith(assigned) {
				uses = append(uses, use{actionID: actionID, abilityID: assigned.ID, time: at})
			}
		}
	}

	sort.Slice(uses, func(i, j int) bool {
		if uses[i].time != uses[j].time {
			return uses[i].time < uses[j].time
		}
		if uses[i].actionID != uses[j].actionID {
			return uses[i].actionID < uses[j].actionID
		}
		return uses[i].abilityID < uses[j].abilityID
	})
	return uses
}

// CheckCooldown reports whether abilityID is still cooling down at targetTime.
// Only strictly earlier uses block; unknown abilities are never blocked.
func (t *Tracker) CheckCooldown(assignments plan.Assignments, abilityID string, targetTime float64) Status {
	status := Status{AbilityID: abilityID, TargetTime: targetTime}

	def := t.lookup(abilityID)
	if def == nil {
		return status
	}
	cd := def.CooldownAt(t.level)
	status.Cooldown = cd

	// uses still occupying a charge at targetTime, oldest first
	var busy []use
	for _, u := range t.usesSharingClock(assignments, def) {
		if u.time >= targetTime {
			break
		}
		if targetTime-u.time < cd {
			busy = append(busy, u)
		}
	}

	charges := def.Charges()
	if len(busy) < charges {
		return status
	}

	// the charge that frees up first once enough uses have expired
	blocking := busy[len(busy)-charges]
	elapsed := targetTime - blocking.time

	status.OnCooldown = true
	status.ConflictActionID = blocking.actionID
	status.ConflictAbilityID = blocking.abilityID
	status.ConflictTime = blocking.time
	status.TimeUntilReady = cd - elapsed
	if a := t.timeline.Get(blocking.actionID); a != nil {
		status.ConflictActionName = a.Name
	}
	return status
}

// CheckCooldownAtAction is CheckCooldown at the time of a boss action.
// Unknown actions have no time and fail open.
func (t *Tracker) CheckCooldownAtAction(assignments plan.Assignments, abilityID, actionID string) Status {
	at, ok := t.timeline.TimeOf(actionID)
	if !ok {
		return Status{AbilityID: abilityID}
	}
	return t.CheckCooldown(assignments, abilityID, at)
}

// InsertAndCascade assigns abilityID to the action and retracts later uses on the same
// cooldown clock that now fall strictly inside the new use's cooldown window.
// The assignment map is only mutated once every removal has been decided.
func (t *Tracker) InsertAndCascade(assignments plan.Assignments, abilityID, actionID string, actionTime float64) []plan.Removal {
	def := t.lookup(abilityID)
	if def == nil {
		return []plan.Removal{}
	}
	assignments.Add(actionID, def)

	cd := def.CooldownAt(t.level)
	charges := def.Charges()
	windowEnd := actionTime + cd

	kept := []use{{actionID: actionID, abilityID: abilityID, time: actionTime}}
	var candidates []use
	for _, u := range t.usesSharingClock(assignments, def) {
		if u.actionID == actionID && u.abilityID == abilityID {
			continue
		}
		if u.time > actionTime && u.time < windowEnd {
			candidates = append(candidates, u)
		} else {
			kept = append(kept, u)
		}
	}

	var doomed []use
	for _, c := range candidates {
		if occupied(kept, c.time, cd) >= charges {
			doomed = append(doomed, c)
			continue
		}
		kept = append(kept, c)
	}

	removed := make([]plan.Removal, 0, len(doomed))
	for _, u := range doomed {
		assignments.Remove(u.actionID, u.abilityID)
		r := plan.Removal{ActionID: u.actionID, ActionTime: u.time, AbilityID: u.abilityID}
		if a := t.timeline.Get(u.actionID); a != nil {
			r.ActionName = a.Name
		}
		removed = append(removed, r)
	}
	return removed
}

// occupied counts kept uses holding a charge at time at: used in (at-cd, at]
func occupied(kept []use, at, cd float64) int {
	n := 0
	for _, u := range kept {
		if u.time <= at && at-u.time < cd {
			n++
		}
	}
	return n
}
