package leave

import (
	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"github.com/audyningrum27/simtrendi/internal/fixtures"
)

// RoleClassifier resolves role titles through a static tier table.
type RoleClassifier struct {
	tiers map[string]leave.Tier
}

var _ leave.RoleClassifier = (*RoleClassifier)(nil)

func NewRoleClassifier(table fixtures.TierTable) *RoleClassifier {
	tiers := make(map[string]leave.Tier)
	for tier, roles := range table {
		for _, role := range roles {
			tiers[fixtures.NormalizeRoleName(role)] = tier
		}
	}
	return &RoleClassifier{tiers: tiers}
}

// Classify returns the tier of roleName, or TierNone when it carries no approval authority.
func (c *RoleClassifier) Classify(roleName string) leave.Tier {
	if tier, ok := c.tiers[fixtures.NormalizeRoleName(roleName)]; ok {
		return tier
	}
	return leave.TierNone
}
