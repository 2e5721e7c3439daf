package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
)

// AbilitiesFile is the roster file name inside a data source
const AbilitiesFile = "abilities.json"

type abilitiesDocument struct {
	Abilities []*ability.Definition `json:"abilities"`
}

// LoadAbilities reads and validates the ability roster from fsys
func LoadAbilities(fsys fs.FS) ([]*ability.Definition, error) {
	doc, err := Load[abilitiesDocument](fsys, AbilitiesFile)
	if err != nil {
		return nil, err
	}
	if err := ValidateAbilities(doc.Abilities); err != nil {
		return nil, err
	}
	warnAbilities(doc.Abilities)
	return doc.Abilities, nil
}

// ValidateAbilities reports every hard data error in the roster at once
func ValidateAbilities(defs []*ability.Definition) error {
	var errs []error
	seen := make(map[string]bool, len(defs))

	for i, def := range defs {
		if def == nil {
			errs = append(errs, fmt.Errorf("ability #%d is null", i))
			continue
		}
		if def.ID == "" {
			errs = append(errs, fmt.Errorf("ability #%d (%s) has no id", i, def.Name))
			continue
		}
		if seen[def.ID] {
			errs = append(errs, fmt.Errorf("ability %s is defined more than once", def.ID))
		}
		seen[def.ID] = true

		if def.Cooldown < 0 {
			errs = append(errs, fmt.Errorf("ability %s has negative cooldown %v", def.ID, def.Cooldown))
		}
		if def.Duration < 0 {
			errs = append(errs, fmt.Errorf("ability %s has negative duration %v", def.ID, def.Duration))
		}
		if def.Count < 0 {
			errs = append(errs, fmt.Errorf("ability %s has negative count %d", def.ID, def.Count))
		}
		if !validFraction(def.MitigationValue) {
			errs = append(errs, fmt.Errorf("ability %s mitigation %s is outside [0, 1]", def.ID, def.MitigationValue))
		}
		for level, value := range def.LevelMitigationValues {
			if !validFraction(value) {
				errs = append(errs, fmt.Errorf("ability %s mitigation %s at level %d is outside [0, 1]", def.ID, value, level))
			}
		}
		for level, cd := range def.LevelCooldowns {
			if cd < 0 {
				errs = append(errs, fmt.Errorf("ability %s has negative cooldown at level %d", def.ID, level))
			}
		}
		for level, d := range def.LevelDurations {
			if d < 0 {
				errs = append(errs, fmt.Errorf("ability %s has negative duration at level %d", def.ID, level))
			}
		}
	}

	return errors.Join(errs...)
}

func validFraction(v ability.MitigationValue) bool {
	return v.Min() >= 0 && v.Max() <= 1
}

// warnAbilities logs data-quality problems that do not stop the roster from loading
func warnAbilities(defs []*ability.Definition) {
	byID := make(map[string]bool, len(defs))
	for _, def := range defs {
		byID[def.ID] = true
	}

	for _, def := range defs {
		if def.UpgradedBy != "" && !byID[def.UpgradedBy] {
			log.Printf("Ability %s is upgraded by unknown ability %s", def.ID, def.UpgradedBy)
		}
		if def.LevelDurations != nil {
			continue
		}
		if secs, ok := ability.ParseDescriptionDuration(def.Description); ok && secs != def.Duration {
			log.Printf("Ability %s description says %vs but duration is %vs, the description wins", def.ID, secs, def.Duration)
		}
	}
}
