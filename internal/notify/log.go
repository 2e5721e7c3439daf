// Package notify turns planner events into user-visible notices.
package notify

import (
	"log"
	"strings"

	"github.com/KirkDiggler/raidplan/internal/events"
)

// LogNotifier writes every planner event to the standard logger
type LogNotifier struct{}

// NewLogNotifier creates a log notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) ID() string    { return "log-notifier" }
func (n *LogNotifier) Priority() int { return events.PriorityAudit }

// Register subscribes the notifier to every planner event
func (n *LogNotifier) Register(bus *events.Bus) {
	bus.SubscribeAll(n)
}

func (n *LogNotifier) HandleEvent(event events.Event) error {
	switch e := event.(type) {
	case *events.AssignmentAddedEvent:
		log.Printf("Plan %s v%d: %s assigned %s to %s", e.PlanID, e.Version, authorOf(e), e.AbilityID, e.ActionID)
	case *events.AssignmentRemovedEvent:
		log.Printf("Plan %s v%d: %s removed %s from %s", e.PlanID, e.Version, authorOf(e), strings.Join(e.AbilityIDs, ", "), e.ActionID)
	case *events.AssignmentRejectedEvent:
		log.Printf("Plan %s: %s rejected, %s", e.PlanID, e.AbilityID, RejectionText(e))
	case *events.AssignmentsCascadedEvent:
		log.Printf("Plan %s v%d: %s", e.PlanID, e.Version, CascadeText(e))
	case *events.PlanImportedEvent:
		log.Printf("Plan %s v%d: %s imported %d assignments, %d unknown ids skipped", e.PlanID, e.Version, authorOf(e), e.Assigned, len(e.Missing))
	default:
		log.Printf("Plan %s: unhandled event %s", event.GetPlanID(), event.GetType())
	}
	return nil
}

func authorOf(event events.Event) string {
	if event.GetAuthor() == "" {
		return "someone"
	}
	return event.GetAuthor()
}
