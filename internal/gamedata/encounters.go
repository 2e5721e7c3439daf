package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/KirkDiggler/raidplan/internal/domain/encounter"
)

// EncountersFile is the timeline file name inside a data source
const EncountersFile = "encounters.json"

type encountersDocument struct {
	Encounters []*encounter.Encounter `json:"encounters"`
}

// LoadEncounters reads and validates the encounter timelines from fsys.
// Actions come back sorted by time.
func LoadEncounters(fsys fs.FS) ([]*encounter.Encounter, error) {
	doc, err := Load[encountersDocument](fsys, EncountersFile)
	if err != nil {
		return nil, err
	}
	if err := ValidateEncounters(doc.Encounters); err != nil {
		return nil, err
	}

	for _, enc := range doc.Encounters {
		enc.Actions = encounter.SortActions(enc.Actions)
	}
	return doc.Encounters, nil
}

// ValidateEncounters reports every hard data error across the timelines at once.
// Repeated action ids only warn: the timeline keeps the earliest one.
func ValidateEncounters(encounters []*encounter.Encounter) error {
	var errs []error
	seen := make(map[string]bool, len(encounters))

	for i, enc := range encounters {
		if enc == nil {
			errs = append(errs, fmt.Errorf("encounter #%d is null", i))
			continue
		}
		if enc.ID == "" {
			errs = append(errs, fmt.Errorf("encounter #%d (%s) has no id", i, enc.Name))
			continue
		}
		if seen[enc.ID] {
			errs = append(errs, fmt.Errorf("encounter %s is defined more than once", enc.ID))
		}
		seen[enc.ID] = true

		actionIDs := make(map[string]bool, len(enc.Actions))
		for j, action := range enc.Actions {
			if action == nil || action.ID == "" {
				errs = append(errs, fmt.Errorf("encounter %s action #%d has no id", enc.ID, j))
				continue
			}
			if action.Time < 0 {
				errs = append(errs, fmt.Errorf("encounter %s action %s has negative time %v", enc.ID, action.ID, action.Time))
			}
			if actionIDs[action.ID] {
				log.Printf("Encounter %s repeats action id %s, only the earliest is addressable", enc.ID, action.ID)
			}
			actionIDs[action.ID] = true
		}
	}

	return errors.Join(errs...)
}
