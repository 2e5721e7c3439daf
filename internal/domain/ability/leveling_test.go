package ability_test

import (
	"encoding/json"
	"testing"

	"github.com/KirkDiggler/raidplan/internal/domain/ability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	table := ability.LevelTable[float64]{22: 0.10, 98: 0.20}

	tests := []struct {
		name  string
		table ability.LevelTable[float64]
		level int
		want  float64
	}{
		{name: "below every key returns base", table: table, level: 10, want: 0.05},
		{name: "exact key", table: table, level: 22, want: 0.10},
		{name: "between keys picks lower", table: table, level: 90, want: 0.10},
		{name: "above every key picks highest", table: table, level: 100, want: 0.20},
		{name: "unset level returns base", table: table, level: 0, want: 0.05},
		{name: "negative level returns base", table: table, level: -4, want: 0.05},
		{name: "nil table returns base", table: nil, level: 90, want: 0.05},
		{name: "empty table returns base", table: ability.LevelTable[float64]{}, level: 90, want: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ability.Resolve(tt.table, tt.level, 0.05))
		})
	}
}

func TestDefinition_LevelHelpers(t *testing.T) {
	def := &ability.Definition{
		ID:              "rampart",
		Name:            "Rampart",
		Description:     "Reduces damage taken by 20% for 20s",
		Cooldown:        90,
		Duration:        20,
		MitigationValue: ability.Scalar(0.20),
		LevelCooldowns:  ability.LevelTable[float64]{94: 60},
		LevelDescriptions: ability.LevelTable[string]{
			94: "Reduces damage taken by 20% and increases HP recovered by 15% for 20s",
		},
		LevelMitigationValues: ability.LevelTable[ability.MitigationValue]{
			22: ability.Scalar(0.10),
			98: ability.Scalar(0.10),
		},
	}

	t.Run("cooldown", func(t *testing.T) {
		assert.Equal(t, 90.0, def.CooldownAt(90))
		assert.Equal(t, 60.0, def.CooldownAt(100))
	})

	t.Run("description", func(t *testing.T) {
		assert.Equal(t, "Reduces damage taken by 20% for 20s", def.DescriptionAt(90))
		assert.Contains(t, def.DescriptionAt(94), "HP recovered")
	})

	t.Run("mitigation picks key 22 at level 90", func(t *testing.T) {
		v, ok := def.MitigationAt(90).ScalarValue()
		require.True(t, ok)
		assert.Equal(t, 0.10, v)
	})

	t.Run("mitigation below every key is base", func(t *testing.T) {
		v, ok := def.MitigationAt(10).ScalarValue()
		require.True(t, ok)
		assert.Equal(t, 0.20, v)
	})
}

func TestDefinition_DurationAt(t *testing.T) {
	t.Run("level table wins over description", func(t *testing.T) {
		def := &ability.Definition{
			Description:    "Creates a barrier for 30s",
			Duration:       15,
			LevelDurations: ability.LevelTable[float64]{50: 10},
		}
		assert.Equal(t, 10.0, def.DurationAt(80))
		assert.Equal(t, 15.0, def.DurationAt(40))
		assert.False(t, def.UsesDescriptionDuration(80))
	})

	t.Run("description fallback", func(t *testing.T) {
		def := &ability.Definition{
			Description: "Reduces damage taken by 10% for 15s",
			Duration:    10,
		}
		assert.Equal(t, 15.0, def.DurationAt(100))
		assert.True(t, def.UsesDescriptionDuration(100))
	})

	t.Run("level specific description feeds the fallback", func(t *testing.T) {
		def := &ability.Definition{
			Description:       "Reduces damage taken by 10% for 10s",
			LevelDescriptions: ability.LevelTable[string]{88: "Reduces damage taken by 10% for 15s"},
			Duration:          10,
		}
		assert.Equal(t, 10.0, def.DurationAt(80))
		assert.Equal(t, 15.0, def.DurationAt(90))
	})

	t.Run("no match uses base duration", func(t *testing.T) {
		def := &ability.Definition{Description: "Restores HP", Duration: 0}
		assert.Equal(t, 0.0, def.DurationAt(100))
		assert.False(t, def.UsesDescriptionDuration(100))
	})
}

func TestParseDescriptionDuration(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{in: "Reduces damage taken by 10% for 15s", want: 15, wantOK: true},
		{in: "Grants a barrier for 12.5s.", want: 12.5, wantOK: true},
		{in: "Heals for 5s then for 10s", want: 10, wantOK: true},
		{in: "FOR 8S", want: 8, wantOK: true},
		{in: "Lasts forever", wantOK: false},
		{in: "", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := ability.ParseDescriptionDuration(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestMitigationValue_JSON(t *testing.T) {
	var def ability.Definition
	raw := `{
		"id": "feint",
		"mitigationValue": {"physical": 0.10, "magical": 0.05},
		"levelMitigationValues": {"98": 0.15}
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &def))

	phys, mag, ok := def.MitigationValue.SplitValues()
	require.True(t, ok)
	assert.Equal(t, 0.10, phys)
	assert.Equal(t, 0.05, mag)

	upgraded, ok := def.MitigationAt(100).ScalarValue()
	require.True(t, ok)
	assert.Equal(t, 0.15, upgraded)

	var bad ability.MitigationValue
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &bad))
}

func TestMitigationValue_For(t *testing.T) {
	split := ability.Split(0.10, 0.05)
	assert.Equal(t, 0.10, split.For(ability.DamageTypePhysical))
	assert.Equal(t, 0.05, split.For(ability.DamageTypeMagical))
	assert.InDelta(t, 0.075, split.For(ability.DamageTypeBoth), 1e-9)

	scalar := ability.Scalar(0.2)
	assert.Equal(t, 0.2, scalar.For(ability.DamageTypeMagical))

	assert.True(t, ability.Scalar(0).IsZero())
	assert.True(t, ability.MitigationValue{}.IsZero())
	assert.False(t, split.IsZero())
}

func TestDamageType_AppliesTo(t *testing.T) {
	assert.True(t, ability.DamageTypeBoth.AppliesTo(ability.DamageTypePhysical))
	assert.True(t, ability.DamageTypePhysical.AppliesTo(ability.DamageTypePhysical))
	assert.False(t, ability.DamageTypePhysical.AppliesTo(ability.DamageTypeMagical))
	assert.True(t, ability.DamageTypeMagical.AppliesTo(ability.DamageTypeBoth))
	assert.True(t, ability.DamageType("").AppliesTo(ability.DamageTypeMagical))
}
