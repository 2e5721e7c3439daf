package mitigation

import (
	"github.com/KirkDiggler/raidplan/internal/domain/ability"
)

// Split is a reduction figure per damage component
type Split struct {
	Physical float64 `json:"physical"`
	Magical  float64 `json:"magical"`
}

// Average folds the split into one figure for attacks that are both physical and magical
func (s Split) Average() float64 {
	return (s.Physical + s.Magical) / 2
}

// CalculateTotalMitigation combines every applicable effect into one reduction in [0, 1].
// Effects stack against remaining damage: 1 - (1-m1)(1-m2)... An effect worth 1.0 makes the
// total exactly 1. Barriers contribute nothing here. Attacks of type both are scored as the
// average of the physical and magical totals so split values are never collapsed early.
func CalculateTotalMitigation(list []*ActiveMitigation, damageType ability.DamageType, level int) float64 {
	if damageType.Normalize() == ability.DamageTypeBoth {
		return CalculateSplitMitigation(list, level).Average()
	}
	return combine(list, damageType.Normalize(), level)
}

// CalculateSplitMitigation returns the combined reduction for each damage component
func CalculateSplitMitigation(list []*ActiveMitigation, level int) Split {
	return Split{
		Physical: combine(list, ability.DamageTypePhysical, level),
		Magical:  combine(list, ability.DamageTypeMagical, level),
	}
}

// contribution is one effect's fraction against a single damage component
func contribution(def *ability.Definition, component ability.DamageType, level int) float64 {
	if !def.DamageType.AppliesTo(component) {
		return 0
	}
	m := def.MitigationAt(level).For(component)
	switch {
	case m <= 0:
		return 0
	case m >= 1:
		return 1
	}
	return m
}

func combine(list []*ActiveMitigation, component ability.DamageType, level int) float64 {
	remaining := 1.0
	for _, m := range dedupe(list) {
		c := contribution(m.Ability, component, level)
		if c >= 1 {
			return 1
		}
		remaining *= 1 - c
	}
	return 1 - remaining
}

// dedupe drops repeated entries for the same ability from the same source action.
// Distinct sources of one ability are separate instances and all count.
func dedupe(list []*ActiveMitigation) []*ActiveMitigation {
	type instance struct {
		abilityID string
		sourceID  string
	}

	seen := make(map[instance]bool, len(list))
	out := make([]*ActiveMitigation, 0, len(list))
	for _, m := range list {
		if m == nil || m.Ability == nil {
			continue
		}
		key := instance{abilityID: m.Ability.ID, sourceID: m.SourceActionID}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}
