package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

func TestQualifyStrongGrant(t *testing.T) {
	engine := testEngine(t)

	r := &opportunity.Record{
		ID:           "cc-award",
		Name:         "Creative Capital Award",
		Category:     opportunity.CategoryGrant,
		Status:       opportunity.StatusResearch,
		Organization: "Creative Capital",
		Deadline:     opportunity.Deadline{Type: opportunity.DeadlineRolling},
		Amount:       opportunity.Amount{Value: 0, Type: opportunity.AmountLumpSum},
		Fit: opportunity.Fit{
			Score:   8,
			Framing: "Direct extension of the oral-history archive work from last year.",
		},
		Submission: opportunity.Submission{MaterialsCount: 5},
	}

	q := engine.Qualify(r)
	assert.True(t, q.Apply)
	assert.Equal(t, 8.8, q.Composite)
	assert.Equal(t, 5.0, q.Threshold)
	assert.Equal(t, "composite 8.8 meets threshold 5.0", q.Reason)
	assert.Empty(t, q.Weakest)
}

func TestQualifyExpiredJob(t *testing.T) {
	engine := testEngine(t)

	r := &opportunity.Record{
		ID:           "bigco-swe",
		Name:         "Senior Engineer",
		Category:     opportunity.CategoryJob,
		Status:       opportunity.StatusResearch,
		Organization: "BigCo",
		Deadline:     opportunity.Deadline{Date: date(t, "2026-02-01"), Type: opportunity.DeadlineHard},
		Amount:       opportunity.Amount{Value: 300_000, Type: opportunity.AmountSalary},
		Fit:          opportunity.Fit{Score: 1},
		Submission:   opportunity.Submission{PortalFrictionHint: "slideroom"},
	}

	q := engine.Qualify(r)
	assert.False(t, q.Apply)
	assert.Equal(t, 2.1, q.Composite)
	assert.Equal(t, 5.5, q.Threshold)

	// A high salary cannot rescue a record a person rated a bad fit: the
	// weakest dimensions are the deadline and the human-judgment estimates.
	require.Len(t, q.Weakest, 3)
	assert.Contains(t, q.Weakest, opportunity.DimDeadlineFeasibility)
	assert.Contains(t, q.Reason, "below threshold 5.5")
	assert.Contains(t, q.Reason, "deadline_feasibility (1.0)")
}

func TestQualifyThresholdBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultThreshold = 8.8
	engine, err := NewEngine(cfg, nil, nil)
	require.NoError(t, err)
	engine = engine.WithNow(func() time.Time { return testNow })

	r := &opportunity.Record{
		ID:           "cc-award",
		Category:     opportunity.CategoryGrant,
		Organization: "Creative Capital",
		Deadline:     opportunity.Deadline{Type: opportunity.DeadlineRolling},
		Fit: opportunity.Fit{
			Score:   8,
			Framing: "Direct extension of the oral-history archive work from last year.",
		},
		Submission: opportunity.Submission{MaterialsCount: 5},
	}

	// Composite 8.8 against threshold 8.8: meeting the bar exactly passes.
	q := engine.Qualify(r)
	assert.True(t, q.Apply)

	cfg.DefaultThreshold = 8.9
	engine, err = NewEngine(cfg, nil, nil)
	require.NoError(t, err)
	q = engine.WithNow(func() time.Time { return testNow }).Qualify(r)
	assert.False(t, q.Apply)
}

func TestWeakestDimensionsTieBreak(t *testing.T) {
	dims := map[opportunity.Dimension]float64{}
	for _, dim := range opportunity.Dimensions() {
		dims[dim] = 5
	}
	dims[opportunity.DimPortalFriction] = 2
	dims[opportunity.DimTrackRecordFit] = 2

	// Equal scores resolve in declared dimension order, so among the 5.0
	// ties deadline_feasibility comes first.
	got := weakestDimensions(dims, 3)
	assert.Equal(t, []opportunity.Dimension{
		opportunity.DimPortalFriction,
		opportunity.DimTrackRecordFit,
		opportunity.DimDeadlineFeasibility,
	}, got)
}

func TestWeakestDimensionsCapped(t *testing.T) {
	dims := map[opportunity.Dimension]float64{
		opportunity.DimPortalFriction: 1,
	}
	got := weakestDimensions(dims, 100)
	assert.Len(t, got, len(opportunity.Dimensions()))
}
