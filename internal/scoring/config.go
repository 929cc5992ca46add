// Package scoring turns heterogeneous opportunity data into a single
// comparable number and an apply/skip decision. Everything here is pure given
// a record snapshot; nothing writes back.
package scoring

import (
	"fmt"
	"math"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

// Weights maps each dimension to its share of the composite. A table must
// sum to exactly 1.0; NewEngine refuses to start otherwise.
type Weights map[opportunity.Dimension]float64

// Config carries every tunable the engine consumes. Thresholds and weights
// are explicit values rather than package state so tests can run alternative
// tables.
type Config struct {
	CreativeWeights  Weights
	JobWeights       Weights
	JobThreshold     float64 `mapstructure:"job-threshold"`
	DefaultThreshold float64 `mapstructure:"default-threshold"`
	// PortalDefault is the portal_friction score for an unrecognized
	// submission channel.
	PortalDefault float64 `mapstructure:"portal-default"`
}

// DefaultConfig returns the production weight tables and thresholds.
//
// The job table front-loads the human-judgment dimensions and de-emphasizes
// deadline and portal friction; the creative table is flatter. Jobs also get
// a stricter threshold: far more candidates compete in the same score band.
func DefaultConfig() Config {
	return Config{
		CreativeWeights: Weights{
			opportunity.DimMissionAlignment:    0.25,
			opportunity.DimEvidenceMatch:       0.20,
			opportunity.DimTrackRecordFit:      0.15,
			opportunity.DimFinancialAlignment:  0.10,
			opportunity.DimEffortToValue:       0.10,
			opportunity.DimStrategicValue:      0.10,
			opportunity.DimDeadlineFeasibility: 0.05,
			opportunity.DimPortalFriction:      0.05,
		},
		JobWeights: Weights{
			opportunity.DimMissionAlignment:    0.35,
			opportunity.DimEvidenceMatch:       0.25,
			opportunity.DimTrackRecordFit:      0.15,
			opportunity.DimStrategicValue:      0.10,
			opportunity.DimFinancialAlignment:  0.05,
			opportunity.DimEffortToValue:       0.05,
			opportunity.DimDeadlineFeasibility: 0.03,
			opportunity.DimPortalFriction:      0.02,
		},
		JobThreshold:     5.5,
		DefaultThreshold: 5.0,
		PortalDefault:    6,
	}
}

// Validate checks the startup invariants: both weight tables cover every
// dimension with non-negative weights summing to 1.0.
func (c Config) Validate() error {
	for name, table := range map[string]Weights{"creative": c.CreativeWeights, "job": c.JobWeights} {
		sum := 0.0
		for _, dim := range opportunity.Dimensions() {
			w, ok := table[dim]
			if !ok {
				return fmt.Errorf("%s weight table: missing dimension %s", name, dim)
			}
			if w < 0 {
				return fmt.Errorf("%s weight table: negative weight for %s", name, dim)
			}
			sum += w
		}
		if math.Abs(sum-1.0) > 1e-9 {
			return fmt.Errorf("%s weight table sums to %v, want 1.0", name, sum)
		}
	}
	if c.JobThreshold <= 0 || c.DefaultThreshold <= 0 {
		return fmt.Errorf("thresholds must be positive")
	}
	return nil
}

// Threshold returns the qualification bar for a category.
func (c Config) Threshold(category opportunity.Category) float64 {
	if category == opportunity.CategoryJob {
		return c.JobThreshold
	}
	return c.DefaultThreshold
}

// weightsFor selects the table. Only the job category uses the job table.
func (c Config) weightsFor(category opportunity.Category) Weights {
	if category == opportunity.CategoryJob {
		return c.JobWeights
	}
	return c.CreativeWeights
}
