package planner

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/KirkDiggler/raidplan/internal"
	"github.com/KirkDiggler/raidplan/internal/domain/cooldown"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
	apperr "github.com/KirkDiggler/raidplan/internal/errors"
	"github.com/KirkDiggler/raidplan/internal/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// outcome is what a command did to a workspace before it is persisted
type outcome struct {
	changed    bool
	removed    []plan.Removal
	unassigned []string
	missing    []plan.MissingReference
	imported   int
	rejection  *cooldown.Status
}

// Apply validates a command against the current head and persists the result.
//
// Commands are rebased: each attempt re-reads the head and re-validates against it, whatever
// BaseVersion the author saw. The write is a compare-and-set on the head version; when
// another collaborator wins the race the command is retried, and after the retries run out
// the caller gets a conflict.
func (s *service) Apply(ctx context.Context, cmd *plan.Command) (*ApplyResult, error) {
	if cmd == nil {
		return nil, apperr.InvalidArgument("command cannot be nil")
	}
	if strings.TrimSpace(cmd.PlanID) == "" {
		return nil, apperr.InvalidArgument("plan ID is required")
	}
	switch cmd.Kind {
	case plan.CommandAssign, plan.CommandUnassign, plan.CommandClearAction, plan.CommandImport:
	default:
		return nil, apperr.InvalidArgumentf("unknown command kind '%s'", cmd.Kind)
	}

	if cmd.ID == "" {
		cmd.ID = s.uuidGenerator.New()
	}
	if cmd.IssuedAt.IsZero() {
		cmd.IssuedAt = s.clock.Now()
	}

	ctx, span := s.tracer.Start(ctx, "planner.apply", trace.WithAttributes(
		attribute.String("plan.id", cmd.PlanID),
		attribute.String("command.id", cmd.ID),
		attribute.String("command.kind", string(cmd.Kind)),
		attribute.String("action.id", cmd.ActionID),
		attribute.String("ability.id", cmd.AbilityID),
		attribute.Int64("command.base_version", cmd.BaseVersion),
	))
	defer span.End()

	result, err := s.apply(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("command.changed", result.Changed),
		attribute.Int("command.attempts", result.Attempts),
		attribute.Int("command.removed", len(result.Removed)),
		attribute.Int64("plan.version", result.Plan.Version),
	)
	return result, nil
}

func (s *service) apply(ctx context.Context, cmd *plan.Command) (*ApplyResult, error) {
	attempts := s.maxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		w, err := s.load(ctx, cmd.PlanID)
		if err != nil {
			return nil, err
		}

		if cmd.BaseVersion != 0 && cmd.BaseVersion != w.plan.Version && attempt == 1 {
			log.Printf("Rebasing command %s on plan %s from version %d onto %d",
				cmd.ID, cmd.PlanID, cmd.BaseVersion, w.plan.Version)
		}

		out, err := s.mutate(w, cmd)
		if err != nil {
			return nil, err
		}
		if out.rejection != nil {
			return nil, s.reject(w, cmd, out.rejection)
		}
		if !out.changed {
			return &ApplyResult{
				Plan:     w.plan,
				Missing:  out.missing,
				Attempts: attempt,
			}, nil
		}

		w.plan.Assignments = s.snapshotAfter(w, cmd)
		rec := &plan.CommandRecord{
			Command: *cmd,
			Removed: out.removed,
		}

		err = s.repository.Update(ctx, w.plan, rec)
		if errors.Is(err, internal.ErrStaleVersion) {
			log.Printf("Plan %s moved on while applying command %s (attempt %d/%d)",
				cmd.PlanID, cmd.ID, attempt, attempts)
			continue
		}
		if err != nil {
			return nil, repositoryError(err, "failed to save plan '"+cmd.PlanID+"'").
				WithMeta("plan_id", cmd.PlanID).
				WithMeta("command_id", cmd.ID)
		}

		s.announce(w, cmd, out)

		return &ApplyResult{
			Plan:     w.plan,
			Record:   rec,
			Changed:  true,
			Removed:  out.removed,
			Missing:  out.missing,
			Attempts: attempt,
		}, nil
	}

	return nil, apperr.Conflictf("plan '%s' kept changing, command %s not applied after %d attempts",
		cmd.PlanID, cmd.ID, attempts).
		WithMeta("plan_id", cmd.PlanID).
		WithMeta("command_id", cmd.ID)
}

// mutate applies the command to the workspace's assignment map
func (s *service) mutate(w *workspace, cmd *plan.Command) (*outcome, error) {
	switch cmd.Kind {
	case plan.CommandAssign:
		return s.assign(w, cmd)
	case plan.CommandUnassign:
		return s.unassign(w, cmd)
	case plan.CommandClearAction:
		return s.clearAction(w, cmd)
	default:
		return s.importSnapshot(w, cmd)
	}
}

func (s *service) assign(w *workspace, cmd *plan.Command) (*outcome, error) {
	action, err := w.action(cmd.ActionID)
	if err != nil {
		return nil, err
	}
	def := s.abilities.GetByID(cmd.AbilityID)
	if def == nil {
		return nil, apperr.InvalidArgumentf("unknown ability '%s'", cmd.AbilityID).
			WithMeta(apperr.MetaAbilityID, cmd.AbilityID)
	}

	if w.assignments.Has(action.ID, def.ID) {
		return &outcome{}, nil
	}

	status := w.tracker.CheckCooldown(w.assignments, def.ID, action.Time)
	if status.OnCooldown {
		return &outcome{rejection: &status}, nil
	}

	removed := w.tracker.InsertAndCascade(w.assignments, def.ID, action.ID, action.Time)
	return &outcome{changed: true, removed: removed}, nil
}

func (s *service) unassign(w *workspace, cmd *plan.Command) (*outcome, error) {
	action, err := w.action(cmd.ActionID)
	if err != nil {
		return nil, err
	}
	if cmd.AbilityID == "" {
		return nil, apperr.InvalidArgument("ability ID is required")
	}

	if !w.assignments.Remove(action.ID, cmd.AbilityID) {
		return &outcome{}, nil
	}
	return &outcome{changed: true, unassigned: []string{cmd.AbilityID}}, nil
}

func (s *service) clearAction(w *workspace, cmd *plan.Command) (*outcome, error) {
	action, err := w.action(cmd.ActionID)
	if err != nil {
		return nil, err
	}

	cleared := w.assignments.ClearAction(action.ID)
	ids := make([]string, len(cleared))
	for i, def := range cleared {
		ids[i] = def.ID
	}
	for _, m := range w.missing {
		if m.ActionID == action.ID {
			ids = append(ids, m.AbilityID)
		}
	}
	if len(ids) == 0 {
		return &outcome{}, nil
	}
	return &outcome{changed: true, unassigned: ids}, nil
}

// importSnapshot replaces every assignment. Unknown abilities are dropped and reported;
// spacing violations in the imported plan are kept as-is and only logged.
func (s *service) importSnapshot(w *workspace, cmd *plan.Command) (*outcome, error) {
	if cmd.Snapshot == nil {
		return nil, apperr.InvalidArgument("import requires a snapshot")
	}

	assignments, missing := plan.Rehydrate(cmd.Snapshot, s.abilities.GetByID)
	for _, m := range missing {
		log.Printf("Import into plan %s skipped unknown ability %s on %s", w.plan.ID, m.AbilityID, m.ActionID)
	}
	for actionID := range assignments {
		if w.timeline.Get(actionID) == nil {
			log.Printf("Import into plan %s keeps assignments on %s, which encounter %s does not have",
				w.plan.ID, actionID, w.encounter.ID)
		}
	}
	for _, v := range w.tracker.Audit(assignments) {
		log.Printf("Import into plan %s: %s at %s (%vs) is within %vs of its use at %s",
			w.plan.ID, v.AbilityID, v.ActionID, v.Time, v.Cooldown, v.BlockedByAction)
	}

	w.assignments = assignments
	w.missing = nil
	return &outcome{changed: true, missing: missing, imported: assignments.Count()}, nil
}

// snapshotAfter exports the mutated assignments. References the roster does not know are
// carried over at their stored positions unless the command replaced or cleared them.
func (s *service) snapshotAfter(w *workspace, cmd *plan.Command) plan.Snapshot {
	snapshot := w.assignments.Export()

	kept := make([]plan.MissingReference, 0, len(w.missing))
	for _, m := range w.missing {
		if cmd.Kind == plan.CommandClearAction && m.ActionID == cmd.ActionID {
			continue
		}
		kept = append(kept, m)
	}
	snapshot.Restore(w.plan.Assignments, kept)
	return snapshot
}

// reject turns a cooldown hit into a validation error and tells listeners about it
func (s *service) reject(w *workspace, cmd *plan.Command, status *cooldown.Status) error {
	action := w.timeline.Get(cmd.ActionID)
	def := s.abilities.GetByID(cmd.AbilityID)

	event := &events.AssignmentRejectedEvent{
		BaseEvent:          events.BaseEvent{Type: events.EventTypeAssignmentRejected, PlanID: w.plan.ID, Author: cmd.Author},
		ActionID:           action.ID,
		ActionName:         action.Name,
		AbilityID:          def.ID,
		AbilityName:        def.Name,
		ConflictActionID:   status.ConflictActionID,
		ConflictActionName: status.ConflictActionName,
		TimeUntilReady:     status.TimeUntilReady,
	}
	s.emit(event)

	return apperr.Validationf("%s is on cooldown at %s until %.1fs later (used at %s)",
		def.Name, action.Name, status.TimeUntilReady, status.ConflictActionName).
		WithMeta(apperr.MetaConflictActionID, status.ConflictActionID).
		WithMeta(apperr.MetaTimeUntilReady, status.TimeUntilReady).
		WithMeta(apperr.MetaAbilityID, def.ID).
		WithMeta(apperr.MetaActionID, action.ID)
}

// announce emits the events for a persisted command
func (s *service) announce(w *workspace, cmd *plan.Command, out *outcome) {
	version := w.plan.Version

	switch cmd.Kind {
	case plan.CommandAssign:
		actionName := ""
		if action := w.timeline.Get(cmd.ActionID); action != nil {
			actionName = action.Name
		}
		s.emit(events.NewAssignmentAddedEvent(w.plan.ID, cmd.Author, cmd.ActionID, actionName, cmd.AbilityID, version))
		if len(out.removed) > 0 {
			s.emit(events.NewAssignmentsCascadedEvent(w.plan.ID, cmd.Author, cmd.ActionID, cmd.AbilityID, out.removed, version))
		}
	case plan.CommandUnassign, plan.CommandClearAction:
		s.emit(events.NewAssignmentRemovedEvent(w.plan.ID, cmd.Author, cmd.ActionID, out.unassigned, version))
	case plan.CommandImport:
		s.emit(events.NewPlanImportedEvent(w.plan.ID, cmd.Author, out.imported, out.missing, version))
	}
}

// emit publishes an event; listener failures never undo a persisted command
func (s *service) emit(event events.Event) {
	if err := s.bus.Emit(event); err != nil {
		log.Printf("Failed to deliver %s for plan %s: %v", event.GetType(), event.GetPlanID(), err)
	}
}
