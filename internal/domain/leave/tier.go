package leave

import (
	"fmt"
	"strings"
)

// Tier is an approval role that must sign off a leave request.
type Tier string

const (
	TierKaur  Tier = "KAUR"
	TierKanit Tier = "KANIT"
	TierKadiv Tier = "KADIV"
	// TierNone has no approval authority.
	TierNone Tier = "NONE"
)

// Tiers returns the signing tiers in canonical order.
func Tiers() []Tier {
	return []Tier{TierKaur, TierKanit, TierKadiv}
}

// ParseTier parses a signing tier name. NONE is not a signing tier and is rejected.
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToUpper(strings.TrimSpace(s))); t {
	case TierKaur, TierKanit, TierKadiv:
		return t, nil
	default:
		return TierNone, fmt.Errorf("unknown approval tier %q", s)
	}
}

// RoleClassifier maps an organizational role name to an approval tier.
type RoleClassifier interface {
	Classify(roleName string) Tier
}
