package planner

import (
	"context"
	"strings"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/KirkDiggler/raidplan/internal/domain/cooldown"
	apperr "github.com/KirkDiggler/raidplan/internal/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CheckCooldown reports whether an ability is usable at a boss action or time
func (s *service) CheckCooldown(ctx context.Context, input *CheckCooldownInput) (*cooldown.Status, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.AbilityID) == "" {
		return nil, apperr.InvalidArgument("ability ID is required")
	}
	if input.ActionID == "" && input.Time == nil {
		return nil, apperr.InvalidArgument("either an action ID or a time is required")
	}

	ctx, span := s.tracer.Start(ctx, "planner.check_cooldown", trace.WithAttributes(
		attribute.String("plan.id", input.PlanID),
		attribute.String("ability.id", input.AbilityID),
		attribute.String("action.id", input.ActionID),
	))
	defer span.End()

	w, err := s.load(ctx, input.PlanID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if s.abilities.GetByID(input.AbilityID) == nil {
		return nil, apperr.InvalidArgumentf("unknown ability '%s'", input.AbilityID).
			WithMeta(apperr.MetaAbilityID, input.AbilityID)
	}

	var at float64
	if input.ActionID != "" {
		action, err := w.action(input.ActionID)
		if err != nil {
			return nil, err
		}
		at = action.Time
	} else {
		if *input.Time < 0 {
			return nil, apperr.InvalidArgumentf("time must not be negative, got %v", *input.Time)
		}
		at = *input.Time
	}

	status := w.tracker.CheckCooldown(w.assignments, input.AbilityID, at)
	span.SetAttributes(attribute.Bool("cooldown.on_cooldown", status.OnCooldown))
	return &status, nil
}

// AvailableAbilities lists abilities with their cooldown status at a boss action.
// Abilities whose upgrade is also in the roster are left out, whatever the plan level.
func (s *service) AvailableAbilities(ctx context.Context, input *AvailableAbilitiesInput) ([]*AbilityAvailability, error) {
	if input == nil {
		return nil, apperr.InvalidArgument("input cannot be nil")
	}

	w, err := s.load(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}
	action, err := w.action(input.ActionID)
	if err != nil {
		return nil, err
	}

	var roster []*ability.Definition
	if input.Job != "" {
		roster = s.abilities.ForJob(input.Job)
	} else {
		roster = s.abilities.All()
	}

	result := make([]*AbilityAvailability, 0, len(roster))
	for _, def := range roster {
		if s.abilities.Superseded(def) {
			continue
		}
		result = append(result, &AbilityAvailability{
			Ability:  def,
			Status:   w.tracker.CheckCooldownAtAction(w.assignments, def.ID, action.ID),
			Assigned: w.assignments.Has(action.ID, def.ID),
		})
	}

	return result, nil
}

// ActionSummary computes everything covering one boss action
func (s *service) ActionSummary(ctx context.Context, planID, actionID string) (*ActionSummary, error) {
	ctx, span := s.tracer.Start(ctx, "planner.summary", trace.WithAttributes(
		attribute.String("plan.id", planID),
		attribute.String("action.id", actionID),
	))
	defer span.End()

	w, err := s.load(ctx, planID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	action, err := w.action(actionID)
	if err != nil {
		return nil, err
	}

	summary := w.summarize(action)
	span.SetAttributes(attribute.Float64("mitigation.total", summary.Total))
	return summary, nil
}

// Timeline computes the summary of every boss action in time order
func (s *service) Timeline(ctx context.Context, planID string) ([]*ActionSummary, error) {
	ctx, span := s.tracer.Start(ctx, "planner.timeline", trace.WithAttributes(
		attribute.String("plan.id", planID),
	))
	defer span.End()

	w, err := s.load(ctx, planID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	actions := w.timeline.Actions()
	summaries := make([]*ActionSummary, 0, len(actions))
	for _, action := range actions {
		summaries = append(summaries, w.summarize(action))
	}
	return summaries, nil
}
