package mitigation

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
)

// Line is one ability's entry in a breakdown
type Line struct {
	AbilityID    string                  `json:"ability_id"`
	AbilityName  string                  `json:"ability_name"`
	DamageType   ability.DamageType      `json:"damage_type"`
	Value        ability.MitigationValue `json:"value"`
	Contribution float64                 `json:"contribution"` // against the queried damage type
	Split        Split                   `json:"split"`
	Barrier      bool                    `json:"barrier,omitempty"`

	Inherited         bool    `json:"inherited,omitempty"`
	SourceActionID    string  `json:"source_action_id,omitempty"`
	SourceActionName  string  `json:"source_action_name,omitempty"`
	RemainingDuration float64 `json:"remaining_duration,omitempty"`
}

// Breakdown explains a combined mitigation figure ability by ability
type Breakdown struct {
	DamageType   ability.DamageType `json:"damage_type"`
	Lines        []Line             `json:"lines"`
	Barriers     []Line             `json:"barriers"`
	Total        float64            `json:"total"`
	Split        Split              `json:"split"`
	Invulnerable bool               `json:"invulnerable,omitempty"`
}

// GenerateMitigationBreakdown lists each effect with its contribution next to the combined
// total. Shields and heals with no percentage value go to Barriers and stay out of Total.
// Effects with a percentage and a shield stay in Lines with Barrier set.
func GenerateMitigationBreakdown(list []*ActiveMitigation, damageType ability.DamageType, level int) *Breakdown {
	damageType = damageType.Normalize()
	b := &Breakdown{
		DamageType: damageType,
		Lines:      []Line{},
		Barriers:   []Line{},
		Total:      CalculateTotalMitigation(list, damageType, level),
		Split:      CalculateSplitMitigation(list, level),
	}
	b.Invulnerable = b.Total >= 1

	for _, m := range dedupe(list) {
		def := m.Ability
		line := Line{
			AbilityID:   def.ID,
			AbilityName: def.Name,
			DamageType:  def.DamageType.Normalize(),
			Value:       def.MitigationAt(level),
			Split: Split{
				Physical: contribution(def, ability.DamageTypePhysical, level),
				Magical:  contribution(def, ability.DamageTypeMagical, level),
			},
			Barrier:           def.IsBarrier(),
			Inherited:         !m.Direct,
			SourceActionID:    m.SourceActionID,
			SourceActionName:  m.SourceActionName,
			RemainingDuration: m.RemainingDuration,
		}
		if damageType == ability.DamageTypeBoth {
			line.Contribution = line.Split.Average()
		} else {
			line.Contribution = contribution(def, damageType, level)
		}

		if line.Value.IsZero() {
			line.Barrier = true
			b.Barriers = append(b.Barriers, line)
			continue
		}
		b.Lines = append(b.Lines, line)
	}
	return b
}

// String renders the breakdown as tooltip text
func (b *Breakdown) String() string {
	var sb strings.Builder
	for _, l := range b.Lines {
		fmt.Fprintf(&sb, "%s: %s", l.AbilityName, percent(l.Contribution))
		if l.Value.Kind() == ability.MitigationSplit {
			fmt.Fprintf(&sb, " (physical %s, magical %s)", percent(l.Split.Physical), percent(l.Split.Magical))
		} else {
			fmt.Fprintf(&sb, " (%s)", l.DamageType)
		}
		if l.Barrier {
			sb.WriteString(" + barrier")
		}
		if l.Inherited {
			fmt.Fprintf(&sb, " from %s, %.1fs left", l.SourceActionName, l.RemainingDuration)
		}
		sb.WriteString("\n")
	}
	for _, l := range b.Barriers {
		fmt.Fprintf(&sb, "%s: barrier\n", l.AbilityName)
	}

	fmt.Fprintf(&sb, "Total: %s", percent(b.Total))
	if b.DamageType == ability.DamageTypeBoth {
		fmt.Fprintf(&sb, " (physical %s, magical %s)", percent(b.Split.Physical), percent(b.Split.Magical))
	}
	if b.Invulnerable {
		sb.WriteString(" (invulnerable)")
	}
	return sb.String()
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
