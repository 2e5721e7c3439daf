package gamedata

import (
	"errors"
	"io/fs"
	"sort"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/KirkDiggler/raidplan/internal/domain/encounter"
)

// =============================================================================
// AbilityRegistry
// =============================================================================

// AbilityRegistry holds loaded ability definitions and provides lookup utilities.
type AbilityRegistry struct {
	abilities map[string]*ability.Definition
	all       []*ability.Definition
}

// NewAbilityRegistry creates a registry from loaded ability definitions.
func NewAbilityRegistry(abilities []*ability.Definition) *AbilityRegistry {
	registry := &AbilityRegistry{
		abilities: make(map[string]*ability.Definition, len(abilities)),
		all:       make([]*ability.Definition, 0, len(abilities)),
	}
	for _, def := range abilities {
		if def == nil {
			continue
		}
		registry.abilities[def.ID] = def
		registry.all = append(registry.all, def)
	}
	return registry
}

// LoadAbilityRegistry loads and creates a registry from the source's abilities.json.
func LoadAbilityRegistry(fsys fs.FS) (*AbilityRegistry, error) {
	abilities, err := LoadAbilities(fsys)
	if err != nil {
		return nil, err
	}
	if len(abilities) == 0 {
		return nil, errors.New("no abilities loaded from abilities.json")
	}
	return NewAbilityRegistry(abilities), nil
}

// GetByID returns the ability definition with the given ID, or nil if not found.
func (r *AbilityRegistry) GetByID(id string) *ability.Definition {
	return r.abilities[id]
}

// All returns all ability definitions in roster order.
func (r *AbilityRegistry) All() []*ability.Definition {
	return r.all
}

// Count returns the number of abilities in the registry.
func (r *AbilityRegistry) Count() int {
	return len(r.all)
}

// ForJob returns the abilities the job can cast, in roster order
func (r *AbilityRegistry) ForJob(job string) []*ability.Definition {
	result := make([]*ability.Definition, 0)
	for _, def := range r.all {
		if def.CanBeUsedBy(job) {
			result = append(result, def)
		}
	}
	return result
}

// Superseded reports whether the ability names an upgrade that is itself in the roster
func (r *AbilityRegistry) Superseded(def *ability.Definition) bool {
	return def != nil && def.UpgradedBy != "" && r.abilities[def.UpgradedBy] != nil
}

// DescriptionDurationIDs lists abilities whose duration at level is scraped from the description
func (r *AbilityRegistry) DescriptionDurationIDs(level int) []string {
	ids := make([]string, 0)
	for _, def := range r.all {
		if def.UsesDescriptionDuration(level) {
			ids = append(ids, def.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// =============================================================================
// EncounterRegistry
// =============================================================================

// EncounterRegistry holds loaded encounter timelines.
type EncounterRegistry struct {
	encounters map[string]*encounter.Encounter
	all        []*encounter.Encounter
}

// NewEncounterRegistry creates a registry from loaded encounters.
func NewEncounterRegistry(encounters []*encounter.Encounter) *EncounterRegistry {
	registry := &EncounterRegistry{
		encounters: make(map[string]*encounter.Encounter, len(encounters)),
		all:        make([]*encounter.Encounter, 0, len(encounters)),
	}
	for _, enc := range encounters {
		if enc == nil {
			continue
		}
		registry.encounters[enc.ID] = enc
		registry.all = append(registry.all, enc)
	}
	return registry
}

// LoadEncounterRegistry loads and creates a registry from the source's encounters.json.
func LoadEncounterRegistry(fsys fs.FS) (*EncounterRegistry, error) {
	encounters, err := LoadEncounters(fsys)
	if err != nil {
		return nil, err
	}
	if len(encounters) == 0 {
		return nil, errors.New("no encounters loaded from encounters.json")
	}
	return NewEncounterRegistry(encounters), nil
}

// GetByID returns the encounter with the given ID, or nil if not found.
func (r *EncounterRegistry) GetByID(id string) *encounter.Encounter {
	return r.encounters[id]
}

// All returns all encounters in file order.
func (r *EncounterRegistry) All() []*encounter.Encounter {
	return r.all
}

// Count returns the number of encounters in the registry.
func (r *EncounterRegistry) Count() int {
	return len(r.all)
}

// LoadRoster loads both registries from one data source
func LoadRoster(fsys fs.FS) (*AbilityRegistry, *EncounterRegistry, error) {
	abilities, err := LoadAbilityRegistry(fsys)
	if err != nil {
		return nil, nil, err
	}
	encounters, err := LoadEncounterRegistry(fsys)
	if err != nil {
		return nil, nil, err
	}
	return abilities, encounters, nil
}
