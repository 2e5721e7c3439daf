package events

import "github.com/KirkDiggler/raidplan/internal/domain/plan"

// AssignmentAddedEvent fires after an ability was placed on a boss action and persisted
type AssignmentAddedEvent struct {
	BaseEvent
	ActionID   string
	ActionName string
	AbilityID  string
	Version    int64
}

// NewAssignmentAddedEvent creates an assignment_added event
func NewAssignmentAddedEvent(planID, author, actionID, actionName, abilityID string, version int64) *AssignmentAddedEvent {
	return &AssignmentAddedEvent{
		BaseEvent:  BaseEvent{Type: EventTypeAssignmentAdded, PlanID: planID, Author: author},
		ActionID:   actionID,
		ActionName: actionName,
		AbilityID:  abilityID,
		Version:    version,
	}
}

// AssignmentRemovedEvent fires after one or more abilities were taken off a boss action by the author
type AssignmentRemovedEvent struct {
	BaseEvent
	ActionID   string
	AbilityIDs []string
	Version    int64
}

// NewAssignmentRemovedEvent creates an assignment_removed event
func NewAssignmentRemovedEvent(planID, author, actionID string, abilityIDs []string, version int64) *AssignmentRemovedEvent {
	return &AssignmentRemovedEvent{
		BaseEvent:  BaseEvent{Type: EventTypeAssignmentRemoved, PlanID: planID, Author: author},
		ActionID:   actionID,
		AbilityIDs: abilityIDs,
		Version:    version,
	}
}

// AssignmentRejectedEvent fires when a drop is refused because the ability is still cooling down.
// Nothing is written for a rejection.
type AssignmentRejectedEvent struct {
	BaseEvent
	ActionID           string
	ActionName         string
	AbilityID          string
	AbilityName        string
	ConflictActionID   string
	ConflictActionName string
	TimeUntilReady     float64
}

// AssignmentsCascadedEvent fires when an insertion retracted later uses of the same ability
type AssignmentsCascadedEvent struct {
	BaseEvent
	ActionID  string
	AbilityID string
	Removed   []plan.Removal
	Version   int64
}

// NewAssignmentsCascadedEvent creates an assignments_cascaded event
func NewAssignmentsCascadedEvent(planID, author, actionID, abilityID string, removed []plan.Removal, version int64) *AssignmentsCascadedEvent {
	return &AssignmentsCascadedEvent{
		BaseEvent: BaseEvent{Type: EventTypeAssignmentsCascaded, PlanID: planID, Author: author},
		ActionID:  actionID,
		AbilityID: abilityID,
		Removed:   removed,
		Version:   version,
	}
}

// PlanImportedEvent fires after an ID-only snapshot replaced the plan's assignments
type PlanImportedEvent struct {
	BaseEvent
	Assigned int
	Missing  []plan.MissingReference
	Version  int64
}

// NewPlanImportedEvent creates a plan_imported event
func NewPlanImportedEvent(planID, author string, assigned int, missing []plan.MissingReference, version int64) *PlanImportedEvent {
	return &PlanImportedEvent{
		BaseEvent: BaseEvent{Type: EventTypePlanImported, PlanID: planID, Author: author},
		Assigned:  assigned,
		Missing:   missing,
		Version:   version,
	}
}
