package ability

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MitigationKind tags which shape a MitigationValue holds
type MitigationKind int

const (
	MitigationNone MitigationKind = iota
	MitigationScalar
	MitigationSplit
)

// MitigationValue is either a single fraction or a physical/magical split
type MitigationValue struct {
	kind     MitigationKind
	scalar   float64
	physical float64
	magical  float64
}

// Scalar builds a value that applies the same fraction to every damage type
func Scalar(v float64) MitigationValue {
	return MitigationValue{kind: MitigationScalar, scalar: v}
}

// Split builds a value with distinct physical and magical fractions
func Split(physical, magical float64) MitigationValue {
	return MitigationValue{kind: MitigationSplit, physical: physical, magical: magical}
}

// Kind returns the variant tag
func (m MitigationValue) Kind() MitigationKind {
	return m.kind
}

// ScalarValue returns the fraction when the value is a scalar
func (m MitigationValue) ScalarValue() (float64, bool) {
	return m.scalar, m.kind == MitigationScalar
}

// SplitValues returns both components when the value is a split
func (m MitigationValue) SplitValues() (physical, magical float64, ok bool) {
	return m.physical, m.magical, m.kind == MitigationSplit
}

// For returns the fraction that applies to one damage component.
// Asking a split for both averages the two components.
func (m MitigationValue) For(damageType DamageType) float64 {
	switch m.kind {
	case MitigationScalar:
		return m.scalar
	case MitigationSplit:
		switch damageType.Normalize() {
		case DamageTypePhysical:
			return m.physical
		case DamageTypeMagical:
			return m.magical
		default:
			return (m.physical + m.magical) / 2
		}
	default:
		return 0
	}
}

// IsZero returns true for pure barrier or heal abilities that reduce nothing
func (m MitigationValue) IsZero() bool {
	switch m.kind {
	case MitigationScalar:
		return m.scalar == 0
	case MitigationSplit:
		return m.physical == 0 && m.magical == 0
	default:
		return true
	}
}

// Max returns the largest component
func (m MitigationValue) Max() float64 {
	switch m.kind {
	case MitigationScalar:
		return m.scalar
	case MitigationSplit:
		return max(m.physical, m.magical)
	default:
		return 0
	}
}

// Min returns the smallest component
func (m MitigationValue) Min() float64 {
	switch m.kind {
	case MitigationScalar:
		return m.scalar
	case MitigationSplit:
		return min(m.physical, m.magical)
	default:
		return 0
	}
}

func (m MitigationValue) String() string {
	switch m.kind {
	case MitigationScalar:
		return fmt.Sprintf("%g", m.scalar)
	case MitigationSplit:
		return fmt.Sprintf("physical %g / magical %g", m.physical, m.magical)
	default:
		return "none"
	}
}

type splitJSON struct {
	Physical float64 `json:"physical"`
	Magical  float64 `json:"magical"`
}

// MarshalJSON writes a scalar as a number and a split as {physical, magical}
func (m MitigationValue) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case MitigationScalar:
		return json.Marshal(m.scalar)
	case MitigationSplit:
		return json.Marshal(splitJSON{Physical: m.physical, Magical: m.magical})
	default:
		return []byte("0"), nil
	}
}

// UnmarshalJSON accepts a number, a {physical, magical} object, or null
func (m *MitigationValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = MitigationValue{}
		return nil
	}

	if data[0] == '{' {
		var s splitJSON
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid split mitigation value: %w", err)
		}
		*m = Split(s.Physical, s.Magical)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid mitigation value %s: %w", string(data), err)
	}
	*m = Scalar(v)
	return nil
}
