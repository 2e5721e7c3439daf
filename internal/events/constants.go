package events

// Event type constants
const (
	EventTypeAssignmentAdded     EventType = "assignment_added"
	EventTypeAssignmentRemoved   EventType = "assignment_removed"
	EventTypeAssignmentRejected  EventType = "assignment_rejected"
	EventTypeAssignmentsCascaded EventType = "assignments_cascaded"
	EventTypePlanImported        EventType = "plan_imported"
)

// AllEventTypes lists every event the planner emits
var AllEventTypes = []EventType{
	EventTypeAssignmentAdded,
	EventTypeAssignmentRemoved,
	EventTypeAssignmentRejected,
	EventTypeAssignmentsCascaded,
	EventTypePlanImported,
}

// Priority levels for listener order, lowest first
const (
	PriorityAudit    = 0   // Logging, history
	PriorityState    = 100 // Caches and projections
	PriorityNotify   = 200 // Outbound notifications
	PriorityFollowUp = 300 // Anything that reacts to notifications
)
