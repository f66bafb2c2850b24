package analysis

import (
	"strings"
)

// Role selects the stress-scoring F0 baseline. It has no other effect
// on the analysis.
type Role int

const (
	// RoleDefault is used for any speaker whose voice category is
	// unknown or unrecognized
	RoleDefault Role = iota
	RoleMale
	RoleFemale
)

// f0Baselines maps each role to its expected fundamental-frequency
// center (Hz). The values are scoring calibration, not population
// statistics.
var f0Baselines = map[Role]float64{
	RoleDefault: 165.0,
	RoleMale:    140.0,
	RoleFemale:  200.0,
}

// F0Baseline returns the expected F0 center for the role
func (r Role) F0Baseline() float64 {
	if baseline, ok := f0Baselines[r]; ok {
		return baseline
	}
	return f0Baselines[RoleDefault]
}

func (r Role) String() string {
	switch r {
	case RoleMale:
		return "male"
	case RoleFemale:
		return "female"
	default:
		return "default"
	}
}

// ParseRole maps a free-text role label to a Role. Matching is by
// case-insensitive containment ("First Officer (Female)" matches
// RoleFemale); any label without a recognizable voice category maps to
// RoleDefault.
func ParseRole(label string) Role {
	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "female"):
		return RoleFemale
	case strings.Contains(lower, "male"):
		return RoleMale
	default:
		return RoleDefault
	}
}
