package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

func day(t *testing.T, s string) opportunity.Date {
	t.Helper()
	d, err := opportunity.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestLatestMilestone(t *testing.T) {
	t.Run("empty timeline", func(t *testing.T) {
		r := &opportunity.Record{}
		_, _, ok := LatestMilestone(r)
		assert.False(t, ok)
	})

	t.Run("highest date wins", func(t *testing.T) {
		r := &opportunity.Record{
			Timeline: opportunity.Timeline{
				Researched: day(t, "2026-01-05"),
				Qualified:  day(t, "2026-01-20"),
				Submitted:  day(t, "2026-02-10"),
			},
		}
		m, d, ok := LatestMilestone(r)
		require.True(t, ok)
		assert.Equal(t, opportunity.MilestoneSubmitted, m)
		assert.Equal(t, "2026-02-10", d.String())
	})

	t.Run("same-day milestones resolve to the later one", func(t *testing.T) {
		r := &opportunity.Record{
			Timeline: opportunity.Timeline{
				Qualified:      day(t, "2026-01-20"),
				MaterialsReady: day(t, "2026-01-20"),
			},
		}
		m, _, ok := LatestMilestone(r)
		require.True(t, ok)
		assert.Equal(t, opportunity.MilestoneMaterialsReady, m)
	})
}

func TestValidateConsistency(t *testing.T) {
	tests := []struct {
		name     string
		record   opportunity.Record
		problems int
	}{
		{
			name:   "no milestones is vacuously consistent",
			record: opportunity.Record{Status: opportunity.StatusInterview},
		},
		{
			name: "status matches latest milestone",
			record: opportunity.Record{
				Status: opportunity.StatusSubmitted,
				Timeline: opportunity.Timeline{
					Researched: day(t, "2026-01-05"),
					Submitted:  day(t, "2026-02-10"),
				},
			},
		},
		{
			name: "status ahead of milestone is fine",
			record: opportunity.Record{
				Status: opportunity.StatusInterview,
				Timeline: opportunity.Timeline{
					Submitted: day(t, "2026-02-10"),
				},
			},
		},
		{
			name: "status behind a submitted milestone",
			record: opportunity.Record{
				Status: opportunity.StatusResearch,
				Timeline: opportunity.Timeline{
					Submitted: day(t, "2026-02-10"),
				},
			},
			problems: 1,
		},
		{
			name: "drafting loop can sit behind materials_ready",
			record: opportunity.Record{
				Status: opportunity.StatusDrafting,
				Timeline: opportunity.Timeline{
					MaterialsReady: day(t, "2026-02-01"),
				},
			},
		},
		{
			name: "outcome milestone pins the record terminal",
			record: opportunity.Record{
				Status: opportunity.StatusSubmitted,
				Timeline: opportunity.Timeline{
					Submitted:   day(t, "2026-02-10"),
					OutcomeDate: day(t, "2026-03-01"),
				},
			},
			problems: 1,
		},
		{
			name: "withdrawn is reachable from anywhere live",
			record: opportunity.Record{
				Status: opportunity.StatusWithdrawn,
				Timeline: opportunity.Timeline{
					Interview: day(t, "2026-02-20"),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateConsistency(&tt.record)
			assert.Len(t, errs, tt.problems)
		})
	}
}

func TestValidateConsistencyErrorNamesTheMilestone(t *testing.T) {
	r := &opportunity.Record{
		Status: opportunity.StatusResearch,
		Timeline: opportunity.Timeline{
			Submitted: day(t, "2026-02-10"),
		},
	}
	errs := ValidateConsistency(r)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "latest milestone submitted")
	assert.Contains(t, errs[0].Error(), `implies "submitted"`)
}

func TestMilestoneFor(t *testing.T) {
	m, ok := MilestoneFor(opportunity.StatusStaged)
	require.True(t, ok)
	assert.Equal(t, opportunity.MilestoneMaterialsReady, m)

	for _, status := range []opportunity.Status{
		opportunity.StatusDrafting, opportunity.StatusDeferred, opportunity.StatusWithdrawn,
	} {
		_, ok := MilestoneFor(status)
		assert.False(t, ok, "status %s should leave no milestone", status)
	}
}
