package notify

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/raidplan/internal/events"
)

// RejectionText explains why a drop was refused
func RejectionText(e *events.AssignmentRejectedEvent) string {
	ability := e.AbilityName
	if ability == "" {
		ability = e.AbilityID
	}
	target := e.ActionName
	if target == "" {
		target = e.ActionID
	}
	conflict := e.ConflictActionName
	if conflict == "" {
		conflict = e.ConflictActionID
	}
	return fmt.Sprintf("%s cannot be used at %s, still on cooldown from %s (ready in %.1fs)",
		ability, target, conflict, e.TimeUntilReady)
}

// CascadeText lists the later uses an insertion pulled off the plan
func CascadeText(e *events.AssignmentsCascadedEvent) string {
	uses := make([]string, len(e.Removed))
	for i, r := range e.Removed {
		name := r.ActionName
		if name == "" {
			name = r.ActionID
		}
		uses[i] = fmt.Sprintf("%s at %ss", name, formatSeconds(r.ActionTime))
	}

	noun := "use"
	if len(uses) != 1 {
		noun = "uses"
	}
	return fmt.Sprintf("%s on %s removed %d later %s: %s",
		e.AbilityID, e.ActionID, len(uses), noun, strings.Join(uses, ", "))
}

func formatSeconds(secs float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", secs), "0"), ".")
}
