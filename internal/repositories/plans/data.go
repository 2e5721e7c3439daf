package plans

import (
	"sort"
	"time"

	"github.com/KirkDiggler/raidplan/internal/domain/plan"
)

// Data is the stored form of a plan
type Data struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	OwnerID     string              `json:"owner_id"`
	EncounterID string              `json:"encounter_id"`
	Level       int                 `json:"level"`
	Assignments map[string][]string `json:"assignments"`
	Version     int64               `json:"version"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toData(p *plan.Plan) *Data {
	if p == nil {
		return nil
	}

	return &Data{
		ID:          p.ID,
		Name:        p.Name,
		OwnerID:     p.OwnerID,
		EncounterID: p.EncounterID,
		Level:       p.Level,
		Assignments: p.Assignments.Clone(),
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPlan(data *Data) *plan.Plan {
	if data == nil {
		return nil
	}

	return &plan.Plan{
		ID:          data.ID,
		Name:        data.Name,
		OwnerID:     data.OwnerID,
		EncounterID: data.EncounterID,
		Level:       data.Level,
		Assignments: plan.Snapshot(data.Assignments).Clone(),
		Version:     data.Version,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// sortPlans orders plans oldest first, ids breaking ties
func sortPlans(plans []*plan.Plan) {
	sort.Slice(plans, func(i, j int) bool {
		if !plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].CreatedAt.Before(plans[j].CreatedAt)
		}
		return plans[i].ID < plans[j].ID
	})
}
