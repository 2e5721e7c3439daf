package mitigation

import (
	"sort"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/KirkDiggler/raidplan/internal/domain/encounter"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
)

// ActiveMitigation is one ability effect in force at a boss action.
// Direct effects are assigned to the action itself, the rest are inherited
// from an earlier action whose effect window still covers it.
type ActiveMitigation struct {
	Ability           *ability.Definition
	SourceActionID    string
	SourceActionName  string
	SourceTime        float64
	RemainingDuration float64
	Direct            bool
}

// Aggregator answers which mitigations cover a boss action and how much they reduce.
// Like the cooldown tracker it only holds reference data.
type Aggregator struct {
	lookup   plan.Lookup
	timeline *encounter.Timeline
	level    int
}

// AggregatorConfig holds the reference data an Aggregator needs
type AggregatorConfig struct {
	Lookup   plan.Lookup
	Timeline *encounter.Timeline
	Level    int
}

// NewAggregator creates an aggregator for one encounter at one level
func NewAggregator(cfg *AggregatorConfig) *Aggregator {
	if cfg.Lookup == nil {
		panic("ability lookup is required")
	}
	if cfg.Timeline == nil {
		panic("timeline is required")
	}

	return &Aggregator{
		lookup:   cfg.Lookup,
		timeline: cfg.Timeline,
		level:    cfg.Level,
	}
}

// FindActiveMitigationsAtTime lists effects from earlier actions still running at targetTime.
// An effect used at time s with duration d covers [s, s+d). Instant abilities never carry
// over, and abilities directly assigned to the target action are left to the direct list.
// Separate earlier uses of the same ability are each reported.
func (a *Aggregator) FindActiveMitigationsAtTime(assignments plan.Assignments, targetActionID string, targetTime float64) []*ActiveMitigation {
	direct := make(map[string]bool)
	for _, def := range assignments.For(targetActionID) {
		direct[def.ID] = true
	}

	var active []*ActiveMitigation
	for actionID, list := range assignments {
		if actionID == targetActionID || len(list) == 0 {
			continue
		}
		sourceTime, ok := a.timeline.TimeOf(actionID)
		if !ok || sourceTime >= targetTime {
			continue
		}

		for _, assigned := range list {
			def := a.lookup(assigned.ID)
			if def == nil || direct[def.ID] {
				continue
			}
			duration := def.DurationAt(a.level)
			if duration <= 0 {
				continue
			}
			remaining := sourceTime + duration - targetTime
			if remaining <= 0 {
				continue
			}

			active = append(active, &ActiveMitigation{
				Ability:           def,
				SourceActionID:    actionID,
				SourceActionName:  a.actionName(actionID),
				SourceTime:        sourceTime,
				RemainingDuration: remaining,
			})
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].SourceTime != active[j].SourceTime {
			return active[i].SourceTime < active[j].SourceTime
		}
		if active[i].SourceActionID != active[j].SourceActionID {
			return active[i].SourceActionID < active[j].SourceActionID
		}
		return active[i].Ability.ID < active[j].Ability.ID
	})
	return active
}

// DirectMitigations lists the known abilities assigned to the action, in assignment order
func (a *Aggregator) DirectMitigations(assignments plan.Assignments, actionID string) []*ActiveMitigation {
	at, _ := a.timeline.TimeOf(actionID)

	var direct []*ActiveMitigation
	for _, assigned := range assignments.For(actionID) {
		def := a.lookup(assigned.ID)
		if def == nil {
			continue
		}
		direct = append(direct, &ActiveMitigation{
			Ability:           def,
			SourceActionID:    actionID,
			SourceActionName:  a.actionName(actionID),
			SourceTime:        at,
			RemainingDuration: def.DurationAt(a.level),
			Direct:            true,
		})
	}
	return direct
}

// MitigationsAt returns everything covering a boss action: direct first, then inherited.
// Actions missing from the timeline have nothing active.
func (a *Aggregator) MitigationsAt(assignments plan.Assignments, actionID string) []*ActiveMitigation {
	at, ok := a.timeline.TimeOf(actionID)
	if !ok {
		return nil
	}

	all := a.DirectMitigations(assignments, actionID)
	return append(all, a.FindActiveMitigationsAtTime(assignments, actionID, at)...)
}

// BreakdownAt is GenerateMitigationBreakdown for a boss action against its own damage type
func (a *Aggregator) BreakdownAt(assignments plan.Assignments, actionID string) *Breakdown {
	action := a.timeline.Get(actionID)
	if action == nil {
		return GenerateMitigationBreakdown(nil, ability.DamageTypeBoth, a.level)
	}
	return GenerateMitigationBreakdown(a.MitigationsAt(assignments, actionID), action.DamageType, a.level)
}

func (a *Aggregator) actionName(actionID string) string {
	if action := a.timeline.Get(actionID); action != nil {
		return action.Name
	}
	return ""
}
