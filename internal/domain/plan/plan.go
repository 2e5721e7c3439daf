package plan

import (
	"time"
)

// Plan is one mitigation plan for an encounter
type Plan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OwnerID     string    `json:"owner_id"`
	EncounterID string    `json:"encounter_id"`
	Level       int       `json:"level"`
	Assignments Snapshot  `json:"assignments"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone copies the plan including its snapshot
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Assignments = p.Assignments.Clone()
	return &cp
}

// CommandKind names a mutation applied to a plan
type CommandKind string

const (
	CommandAssign      CommandKind = "assign"
	CommandUnassign    CommandKind = "unassign"
	CommandClearAction CommandKind = "clear_action"
	CommandImport      CommandKind = "import"
)

// Command is one discrete mutation issued by a collaborator.
// BaseVersion records what the author saw; commands are re-validated against the current head.
type Command struct {
	ID          string      `json:"id"`
	PlanID      string      `json:"plan_id"`
	Kind        CommandKind `json:"kind"`
	ActionID    string      `json:"action_id,omitempty"`
	AbilityID   string      `json:"ability_id,omitempty"`
	Snapshot    Snapshot    `json:"snapshot,omitempty"`
	Author      string      `json:"author,omitempty"`
	BaseVersion int64       `json:"base_version"`
	IssuedAt    time.Time   `json:"issued_at"`
}

// Removal is an assignment retracted by a cascade
type Removal struct {
	ActionID   string  `json:"action_id"`
	ActionName string  `json:"action_name"`
	ActionTime float64 `json:"action_time"`
	AbilityID  string  `json:"ability_id"`
}

// CommandRecord is an applied command as kept in the plan's command log
type CommandRecord struct {
	Command        Command   `json:"command"`
	AppliedVersion int64     `json:"applied_version"`
	Removed        []Removal `json:"removed,omitempty"`
	AppliedAt      time.Time `json:"applied_at"`
}
