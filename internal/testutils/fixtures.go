package testutils

import (
	"fmt"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/KirkDiggler/raidplan/internal/domain/encounter"
	"github.com/KirkDiggler/raidplan/internal/domain/plan"
)

// CreateTestAbility creates a party-wide ability that mitigates both damage types
func CreateTestAbility(id string, cooldown, duration, mitigation float64) *ability.Definition {
	return &ability.Definition{
		ID:              id,
		Name:            id,
		Jobs:            []string{"PLD", "SCH"},
		Target:          ability.TargetParty,
		DamageType:      ability.DamageTypeBoth,
		Cooldown:        cooldown,
		Duration:        duration,
		MitigationValue: ability.Scalar(mitigation),
	}
}

// CreateTestSplitAbility creates an ability with separate physical and magical values
func CreateTestSplitAbility(id string, cooldown, duration, physical, magical float64) *ability.Definition {
	def := CreateTestAbility(id, cooldown, duration, 0)
	def.MitigationValue = ability.Split(physical, magical)
	return def
}

// CreateTestBarrier creates a shield-only ability
func CreateTestBarrier(id string, cooldown, duration float64) *ability.Definition {
	def := CreateTestAbility(id, cooldown, duration, 0)
	def.MitigationValue = ability.MitigationValue{}
	def.BarrierPotency = 400
	return def
}

// CreateTestAction creates a medium-importance boss action
func CreateTestAction(id string, at float64, damageType ability.DamageType) *encounter.BossAction {
	return &encounter.BossAction{
		ID:         id,
		Name:       id,
		Time:       at,
		DamageType: damageType,
		Importance: encounter.ImportanceMedium,
	}
}

// CreateTestEncounter creates a level 100 encounter with the given actions
func CreateTestEncounter(id string, actions ...*encounter.BossAction) *encounter.Encounter {
	return &encounter.Encounter{
		ID:      id,
		Name:    "Test " + id,
		Level:   100,
		Actions: encounter.SortActions(actions),
	}
}

// CreateTestRaidwides creates magical raidwides at each of the given times, ids raidwide-1..n
func CreateTestRaidwides(times ...float64) []*encounter.BossAction {
	actions := make([]*encounter.BossAction, len(times))
	for i, at := range times {
		actions[i] = CreateTestAction(fmt.Sprintf("raidwide-%d", i+1), at, ability.DamageTypeMagical)
	}
	return actions
}

// CreateTestPlan creates an unsaved, empty plan for an encounter
func CreateTestPlan(id, ownerID, encounterID string) *plan.Plan {
	return &plan.Plan{
		ID:          id,
		Name:        "Plan " + id,
		OwnerID:     ownerID,
		EncounterID: encounterID,
		Level:       100,
		Assignments: plan.Snapshot{},
	}
}
