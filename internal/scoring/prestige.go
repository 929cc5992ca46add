package scoring

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

// PrestigeEntry is one row of the curated organization table.
type PrestigeEntry struct {
	Match string  `yaml:"match"`
	Score float64 `yaml:"score"`
}

// PrestigeTable is static, versioned data: a curated list of high-prestige
// organizations. Matching is case-insensitive substring matching; the first
// matching entry wins, so order is significant.
type PrestigeTable struct {
	entries []PrestigeEntry
}

// DefaultPrestigeTable returns the built-in curated table.
func DefaultPrestigeTable() *PrestigeTable {
	return &PrestigeTable{entries: []PrestigeEntry{
		{Match: "creative capital", Score: 10},
		{Match: "macarthur", Score: 10},
		{Match: "guggenheim", Score: 10},
		{Match: "national endowment", Score: 9},
		{Match: "mellon", Score: 9},
		{Match: "ford foundation", Score: 9},
		{Match: "sundance", Score: 9},
		{Match: "yaddo", Score: 8},
		{Match: "macdowell", Score: 8},
		{Match: "fulbright", Score: 8},
		{Match: "headlands", Score: 7},
		{Match: "tin house", Score: 7},
	}}
}

// LoadPrestigeTable reads a table override from a YAML file of
// {organizations: [{match, score}, ...]} entries.
func LoadPrestigeTable(path string) (*PrestigeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prestige table: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("prestige table: %w", err)
	}

	var entries []PrestigeEntry
	cfg := &mapstructure.DecoderConfig{
		Result:  &entries,
		TagName: "yaml",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, fmt.Errorf("prestige table: %w", err)
	}
	if err := decoder.Decode(raw["organizations"]); err != nil {
		return nil, fmt.Errorf("prestige table: %w", err)
	}

	for i, entry := range entries {
		if strings.TrimSpace(entry.Match) == "" {
			return nil, fmt.Errorf("prestige table: entry %d has an empty match", i)
		}
		if entry.Score < 1 || entry.Score > 10 {
			return nil, fmt.Errorf("prestige table: entry %q score %v outside [1,10]", entry.Match, entry.Score)
		}
	}

	return &PrestigeTable{entries: entries}, nil
}

// Lookup returns the score for the first entry whose match string occurs in
// the organization name, case-insensitively.
func (t *PrestigeTable) Lookup(organization string) (float64, bool) {
	org := strings.ToLower(strings.TrimSpace(organization))
	if org == "" {
		return 0, false
	}
	for _, entry := range t.entries {
		if strings.Contains(org, strings.ToLower(entry.Match)) {
			return entry.Score, true
		}
	}
	return 0, false
}

// strategicBase is the per-category fallback when the organization is not in
// the curated table.
var strategicBase = map[opportunity.Category]float64{
	opportunity.CategoryJob:        5,
	opportunity.CategoryGrant:      6,
	opportunity.CategoryResidency:  6,
	opportunity.CategoryFellowship: 7,
	opportunity.CategoryWriting:    5,
	opportunity.CategoryEmergency:  3,
	opportunity.CategoryPrize:      6,
	opportunity.CategoryProgram:    5,
	opportunity.CategoryConsulting: 4,
}
