package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/audyningrum27/simtrendi/internal/domain/leave"
	"gopkg.in/yaml.v3"
)

//go:embed approval_tiers.yaml
var defaultApprovalTiers []byte

// TierTable lists, per approval tier, the role titles belonging to it.
type TierTable map[leave.Tier][]string

type tierFile struct {
	Tiers map[string][]string `yaml:"tiers"`
}

// DefaultTierTable returns the institution's built-in tier table.
func DefaultTierTable() (TierTable, error) {
	return ParseTierTable(defaultApprovalTiers)
}

// LoadTierTable reads a tier table from a YAML file. An empty path yields the default table.
func LoadTierTable(path string) (TierTable, error) {
	if path == "" {
		return DefaultTierTable()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tier table %s: %w", path, err)
	}
	return ParseTierTable(data)
}

// ParseTierTable decodes YAML of the form `tiers: {KAUR: [...], ...}`.
// A role title may belong to at most one tier.
func ParseTierTable(data []byte) (TierTable, error) {
	var f tierFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode tier table: %w", err)
	}
	if len(f.Tiers) == 0 {
		return nil, fmt.Errorf("tier table is empty")
	}

	table := make(TierTable, len(f.Tiers))
	owner := make(map[string]leave.Tier)
	for name, roles := range f.Tiers {
		tier, err := leave.ParseTier(name)
		if err != nil {
			return nil, err
		}
		for _, role := range roles {
			key := NormalizeRoleName(role)
			if key == "" {
				continue
			}
			if prev, ok := owner[key]; ok && prev != tier {
				return nil, fmt.Errorf("role %q listed under both %s and %s", role, prev, tier)
			}
			owner[key] = tier
			table[tier] = append(table[tier], role)
		}
	}

	return table, nil
}

// NormalizeRoleName is the comparison key for role titles.
func NormalizeRoleName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
