package ability

import (
	"regexp"
	"strconv"
)

// LevelTable maps an encounter level to the value that applies from that level upward
type LevelTable[T any] map[int]T

// Resolve picks the entry with the highest level not above the requested level.
// Unset levels, missing tables and levels below every key fall back to base.
func Resolve[T any](table LevelTable[T], level int, base T) T {
	if level <= 0 || len(table) == 0 {
		return base
	}

	best, found := 0, false
	for lvl := range table {
		if lvl <= level && (!found || lvl > best) {
			best, found = lvl, true
		}
	}
	if !found {
		return base
	}
	return table[best]
}

// DescriptionAt returns the description for the encounter level
func (d *Definition) DescriptionAt(level int) string {
	return Resolve(d.LevelDescriptions, level, d.Description)
}

// CooldownAt returns the cooldown in seconds for the encounter level
func (d *Definition) CooldownAt(level int) float64 {
	return Resolve(d.LevelCooldowns, level, d.Cooldown)
}

// MitigationAt returns the mitigation value for the encounter level
func (d *Definition) MitigationAt(level int) MitigationValue {
	return Resolve(d.LevelMitigationValues, level, d.MitigationValue)
}

// DurationAt returns the effect duration in seconds for the encounter level.
// Without a levelDurations table the description is scanned for "for <N>s"
// before falling back to the base duration.
func (d *Definition) DurationAt(level int) float64 {
	if d.LevelDurations != nil {
		return Resolve(d.LevelDurations, level, d.Duration)
	}
	if secs, ok := ParseDescriptionDuration(d.DescriptionAt(level)); ok {
		return secs
	}
	return d.Duration
}

// UsesDescriptionDuration reports whether DurationAt is answered by scraping the description.
// Abilities that do are a data-quality problem and should get a levelDurations table.
func (d *Definition) UsesDescriptionDuration(level int) bool {
	if d.LevelDurations != nil {
		return false
	}
	_, ok := ParseDescriptionDuration(d.DescriptionAt(level))
	return ok
}

var descriptionDurationPattern = regexp.MustCompile(`(?i)\bfor (\d+(?:\.\d+)?)s\b`)

// ParseDescriptionDuration extracts the last "for <N>s" clause from a description
func ParseDescriptionDuration(description string) (float64, bool) {
	matches := descriptionDurationPattern.FindAllStringSubmatch(description, -1)
	if len(matches) == 0 {
		return 0, false
	}

	last := matches[len(matches)-1]
	secs, err := strconv.ParseFloat(last[1], 64)
	if err != nil {
		return 0, false
	}
	return secs, true
}
