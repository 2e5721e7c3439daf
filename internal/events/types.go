package events

// EventType represents the type of planner event
type EventType string

// Event is the base interface for all planner events
type Event interface {
	GetType() EventType
	GetPlanID() string
	GetAuthor() string
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type      EventType
	PlanID    string
	Author    string
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType { return e.Type }
func (e *BaseEvent) GetPlanID() string  { return e.PlanID }
func (e *BaseEvent) GetAuthor() string  { return e.Author }
func (e *BaseEvent) IsCancelled() bool  { return e.Cancelled }
func (e *BaseEvent) Cancel()            { e.Cancelled = true }
