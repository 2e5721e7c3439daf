package planner

import (
	"context"
	"log"

	"github.com/KirkDiggler/raidplan/internal/domain/cooldown"
	"github.com/KirkDiggler/raidplan/internal/domain/encounter"
	"github.com/KirkDiggler/raidplan/internal/domain/mitigation"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	apperr "github.com/KirkDiggler/raidplan/internal/errors"
)

// workspace is one consistent snapshot of a plan with the engines bound to its encounter.
// Every query and command works on its own workspace and never shares one.
type workspace struct {
	plan        *plan.Plan
	encounter   *encounter.Encounter
	timeline    *encounter.Timeline
	assignments plan.Assignments
	missing     []plan.MissingReference
	tracker     *cooldown.Tracker
	aggregator  *mitigation.Aggregator
}

// load reads the plan head and rehydrates it against the reference roster
func (s *service) load(ctx context.Context, planID string) (*workspace, error) {
	p, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	enc := s.encounters.GetByID(p.EncounterID)
	if enc == nil {
		return nil, apperr.Internalf("plan '%s' references unknown encounter '%s'", p.ID, p.EncounterID).
			WithMeta("plan_id", p.ID).
			WithMeta("encounter_id", p.EncounterID)
	}

	lookup := plan.Lookup(s.abilities.GetByID)
	timeline := enc.Timeline()
	level := s.levelFor(p, enc)

	assignments, missing := plan.Rehydrate(p.Assignments, lookup)
	if len(missing) > 0 {
		log.Printf("Plan %s references %d unknown abilities, ignoring them", p.ID, len(missing))
	}

	return &workspace{
		plan:        p,
		encounter:   enc,
		timeline:    timeline,
		assignments: assignments,
		missing:     missing,
		tracker: cooldown.NewTracker(&cooldown.TrackerConfig{
			Lookup:   lookup,
			Timeline: timeline,
			Level:    level,
		}),
		aggregator: mitigation.NewAggregator(&mitigation.AggregatorConfig{
			Lookup:   lookup,
			Timeline: timeline,
			Level:    level,
		}),
	}, nil
}

// action resolves a boss action id or reports it as an invalid argument
func (w *workspace) action(actionID string) (*encounter.BossAction, error) {
	if actionID == "" {
		return nil, apperr.InvalidArgument("action ID is required")
	}
	action := w.timeline.Get(actionID)
	if action == nil {
		return nil, apperr.InvalidArgumentf("unknown boss action '%s' in encounter '%s'", actionID, w.encounter.ID).
			WithMeta(apperr.MetaActionID, actionID)
	}
	return action, nil
}

// summarize computes the mitigation picture at a boss action
func (w *workspace) summarize(action *encounter.BossAction) *ActionSummary {
	all := w.aggregator.MitigationsAt(w.assignments, action.ID)

	var direct, inherited []*mitigation.ActiveMitigation
	for _, m := range all {
		if m.Direct {
			direct = append(direct, m)
		} else {
			inherited = append(inherited, m)
		}
	}

	breakdown := w.aggregator.BreakdownAt(w.assignments, action.ID)
	return &ActionSummary{
		Action:    action,
		Direct:    direct,
		Inherited: inherited,
		Total:     breakdown.Total,
		Split:     breakdown.Split,
		Breakdown: breakdown,
	}
}
