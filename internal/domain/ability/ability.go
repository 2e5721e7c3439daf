package ability

// DamageType is the kind of damage an ability mitigates or a boss action deals
type DamageType string

const (
	DamageTypePhysical DamageType = "physical"
	DamageTypeMagical  DamageType = "magical"
	DamageTypeBoth     DamageType = "both"
)

// Normalize maps unknown or empty damage types to both so they never filter anything out
func (d DamageType) Normalize() DamageType {
	switch d {
	case DamageTypePhysical, DamageTypeMagical:
		return d
	default:
		return DamageTypeBoth
	}
}

// AppliesTo reports whether an ability of this damage type affects an attack of the given type.
// A both-typed attack is affected by physical and magical abilities on their own component.
func (d DamageType) AppliesTo(attack DamageType) bool {
	d = d.Normalize()
	attack = attack.Normalize()
	if d == DamageTypeBoth || attack == DamageTypeBoth {
		return true
	}
	return d == attack
}

// TargetKind describes who an ability covers
type TargetKind string

const (
	TargetSelf   TargetKind = "self"
	TargetSingle TargetKind = "single"
	TargetParty  TargetKind = "party"
	TargetArea   TargetKind = "area"
)

// Definition is an immutable mitigation ability loaded from reference data
type Definition struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Jobs               []string        `json:"jobs"`
	Target             TargetKind      `json:"target"`
	DamageType         DamageType      `json:"damageType"`
	Cooldown           float64         `json:"cooldown"` // seconds
	Duration           float64         `json:"duration"` // seconds, 0 = instant
	Count              int             `json:"count,omitempty"`
	IsRoleShared       bool            `json:"isRoleShared,omitempty"`
	MitigationValue    MitigationValue `json:"mitigationValue"`
	BarrierPotency     float64         `json:"barrierPotency,omitempty"`
	BarrierFlatPotency float64         `json:"barrierFlatPotency,omitempty"`

	LevelDescriptions     LevelTable[string]          `json:"levelDescriptions,omitempty"`
	LevelCooldowns        LevelTable[float64]         `json:"levelCooldowns,omitempty"`
	LevelDurations        LevelTable[float64]         `json:"levelDurations,omitempty"`
	LevelMitigationValues LevelTable[MitigationValue] `json:"levelMitigationValues,omitempty"`

	SharedCooldownGroup string `json:"sharedCooldownGroup,omitempty"`
	UpgradedBy          string `json:"upgradedBy,omitempty"`
}

// Charges returns the number of independent uses that share one cooldown clock
func (d *Definition) Charges() int {
	if d.Count < 1 {
		return 1
	}
	return d.Count
}

// CanBeUsedBy returns true if the job code is allowed to cast the ability
func (d *Definition) CanBeUsedBy(job string) bool {
	for _, j := range d.Jobs {
		if j == job {
			return true
		}
	}
	return false
}

// IsBarrier returns true if the ability shields rather than (or in addition to) reducing damage
func (d *Definition) IsBarrier() bool {
	return d.BarrierPotency > 0 || d.BarrierFlatPotency > 0
}

// SharesCooldownWith reports whether both abilities run on the same cooldown clock
func (d *Definition) SharesCooldownWith(other *Definition) bool {
	if d == nil || other == nil {
		return false
	}
	if d.ID == other.ID {
		return true
	}
	return d.SharedCooldownGroup != "" && d.SharedCooldownGroup == other.SharedCooldownGroup
}
