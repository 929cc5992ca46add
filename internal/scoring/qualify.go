package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

// weakDimensionCount is how many of the lowest-scoring dimensions a skip
// reason names.
const weakDimensionCount = 3

// Qualification is the gate's decision for one record.
type Qualification struct {
	Apply     bool
	Composite float64
	Threshold float64
	Reason    string
	// Weakest names the lowest-scoring dimensions when the record is
	// skipped, ascending, ties broken by declared dimension order.
	Weakest []opportunity.Dimension
}

// Qualify scores the record, reduces it to a composite, and compares against
// the category threshold. A skip decision names the weakest dimensions so the
// caller sees why without recomputing.
func (e *Engine) Qualify(r *opportunity.Record) Qualification {
	dims := e.Score(r)
	composite := e.Composite(dims, r.Category)
	threshold := e.cfg.Threshold(r.Category)

	if composite >= threshold {
		return Qualification{
			Apply:     true,
			Composite: composite,
			Threshold: threshold,
			Reason:    fmt.Sprintf("composite %.1f meets threshold %.1f", composite, threshold),
		}
	}

	weakest := weakestDimensions(dims, weakDimensionCount)
	named := make([]string, 0, len(weakest))
	for _, dim := range weakest {
		named = append(named, fmt.Sprintf("%s (%.1f)", dim, dims[dim]))
	}

	return Qualification{
		Apply:     false,
		Composite: composite,
		Threshold: threshold,
		Weakest:   weakest,
		Reason: fmt.Sprintf("composite %.1f below threshold %.1f; weakest: %s",
			composite, threshold, strings.Join(named, ", ")),
	}
}

// weakestDimensions returns the n lowest-scoring dimensions. The sort is
// stable over the declared dimension order, so equal scores resolve in
// enumeration order.
func weakestDimensions(dims map[opportunity.Dimension]float64, n int) []opportunity.Dimension {
	ordered := opportunity.Dimensions()
	sort.SliceStable(ordered, func(i, j int) bool {
		return dims[ordered[i]] < dims[ordered[j]]
	})
	if n > len(ordered) {
		n = len(ordered)
	}
	return ordered[:n]
}
