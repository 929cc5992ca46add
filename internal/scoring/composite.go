package scoring

import (
	"math"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

// missingDimensionScore stands in for a dimension absent from the map.
// Neutral, never zero: partial data should not crater the composite.
const missingDimensionScore = 5

// Composite reduces the dimension map to one weighted number in [1,10],
// rounded to one decimal. The table is selected solely by category == job.
func (e *Engine) Composite(dims map[opportunity.Dimension]float64, category opportunity.Category) float64 {
	weights := e.cfg.weightsFor(category)

	sum := 0.0
	for _, dim := range opportunity.Dimensions() {
		value, ok := dims[dim]
		if !ok {
			value = missingDimensionScore
		}
		sum += weights[dim] * value
	}

	return math.Round(sum*10) / 10
}
