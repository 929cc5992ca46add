package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from  opportunity.Status
		to    opportunity.Status
		legal bool
	}{
		{opportunity.StatusResearch, opportunity.StatusQualified, true},
		{opportunity.StatusResearch, opportunity.StatusWithdrawn, true},
		{opportunity.StatusResearch, opportunity.StatusSubmitted, false},
		{opportunity.StatusQualified, opportunity.StatusDrafting, true},
		{opportunity.StatusQualified, opportunity.StatusStaged, true},
		{opportunity.StatusQualified, opportunity.StatusDeferred, true},
		{opportunity.StatusDrafting, opportunity.StatusQualified, true},
		{opportunity.StatusStaged, opportunity.StatusSubmitted, true},
		{opportunity.StatusStaged, opportunity.StatusDrafting, true},
		{opportunity.StatusStaged, opportunity.StatusResearch, false},
		{opportunity.StatusSubmitted, opportunity.StatusOutcome, true},
		{opportunity.StatusSubmitted, opportunity.StatusStaged, false},
		{opportunity.StatusAcknowledged, opportunity.StatusInterview, true},
		{opportunity.StatusInterview, opportunity.StatusOutcome, true},
		{opportunity.StatusInterview, opportunity.StatusAcknowledged, false},
		{opportunity.StatusDeferred, opportunity.StatusStaged, true},
		{opportunity.StatusOutcome, opportunity.StatusResearch, false},
		{opportunity.StatusOutcome, opportunity.StatusWithdrawn, false},
		{opportunity.StatusWithdrawn, opportunity.StatusResearch, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.legal, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStatusesReachNothing(t *testing.T) {
	assert.Empty(t, Targets(opportunity.StatusOutcome))
	assert.Empty(t, Targets(opportunity.StatusWithdrawn))
	assert.Empty(t, Reachable(opportunity.StatusOutcome))
	assert.Empty(t, Reachable(opportunity.StatusWithdrawn))
}

func TestEveryStatusCanReachATerminal(t *testing.T) {
	for from := range transitions {
		if from.Terminal() {
			continue
		}
		reached := Reachable(from)
		assert.True(t, reached[opportunity.StatusWithdrawn], "from %s", from)
		assert.True(t, reached[opportunity.StatusOutcome], "from %s", from)
	}
}

func TestReachableFollowsMultiHopPaths(t *testing.T) {
	reached := Reachable(opportunity.StatusResearch)

	// research -> qualified -> ... reaches every other status.
	for _, status := range []opportunity.Status{
		opportunity.StatusQualified, opportunity.StatusDrafting,
		opportunity.StatusStaged, opportunity.StatusSubmitted,
		opportunity.StatusAcknowledged, opportunity.StatusInterview,
		opportunity.StatusOutcome, opportunity.StatusDeferred,
		opportunity.StatusWithdrawn,
	} {
		assert.True(t, reached[status], "research should reach %s", status)
	}
	// The graph never loops back into research.
	assert.False(t, reached[opportunity.StatusResearch])

	// submitted is past the drafting loop.
	reached = Reachable(opportunity.StatusSubmitted)
	assert.False(t, reached[opportunity.StatusDrafting])
	assert.False(t, reached[opportunity.StatusStaged])
}

func TestReachableReturnsACopy(t *testing.T) {
	first := Reachable(opportunity.StatusResearch)
	first[opportunity.StatusResearch] = true

	second := Reachable(opportunity.StatusResearch)
	assert.False(t, second[opportunity.StatusResearch])
}

func TestDraftingLoopIsACycle(t *testing.T) {
	// qualified <-> drafting <-> staged can circulate, so each reaches the
	// others and itself.
	for _, status := range []opportunity.Status{
		opportunity.StatusQualified, opportunity.StatusDrafting, opportunity.StatusStaged,
	} {
		reached := Reachable(status)
		assert.True(t, reached[status], "%s should reach itself via the loop", status)
	}
}
