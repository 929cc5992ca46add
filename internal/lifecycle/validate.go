package lifecycle

import (
	"fmt"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

// milestoneStatus maps each timeline milestone to the status it witnesses.
var milestoneStatus = map[opportunity.Milestone]opportunity.Status{
	opportunity.MilestoneResearched:     opportunity.StatusResearch,
	opportunity.MilestoneQualified:      opportunity.StatusQualified,
	opportunity.MilestoneMaterialsReady: opportunity.StatusStaged,
	opportunity.MilestoneSubmitted:      opportunity.StatusSubmitted,
	opportunity.MilestoneAcknowledged:   opportunity.StatusAcknowledged,
	opportunity.MilestoneInterview:      opportunity.StatusInterview,
	opportunity.MilestoneOutcomeDate:    opportunity.StatusOutcome,
}

// statusMilestone is the inverse: the milestone the executor stamps when a
// record advances into a status. drafting, deferred, and withdrawn leave no
// milestone.
var statusMilestone = map[opportunity.Status]opportunity.Milestone{
	opportunity.StatusResearch:     opportunity.MilestoneResearched,
	opportunity.StatusQualified:    opportunity.MilestoneQualified,
	opportunity.StatusStaged:       opportunity.MilestoneMaterialsReady,
	opportunity.StatusSubmitted:    opportunity.MilestoneSubmitted,
	opportunity.StatusAcknowledged: opportunity.MilestoneAcknowledged,
	opportunity.StatusInterview:    opportunity.MilestoneInterview,
	opportunity.StatusOutcome:      opportunity.MilestoneOutcomeDate,
}

// MilestoneFor returns the timeline milestone stamped when a record enters
// the given status, if the status has one.
func MilestoneFor(status opportunity.Status) (opportunity.Milestone, bool) {
	m, ok := statusMilestone[status]
	return m, ok
}

// LatestMilestone returns the highest-dated milestone in the record's
// timeline. When two milestones share a date, the one further along the
// lifecycle wins.
func LatestMilestone(r *opportunity.Record) (opportunity.Milestone, opportunity.Date, bool) {
	var (
		latest     opportunity.Milestone
		latestDate opportunity.Date
		found      bool
	)
	for _, m := range opportunity.Milestones() {
		d := r.Timeline.Get(m)
		if d.IsZero() {
			continue
		}
		if !found || !d.Before(latestDate.Time) {
			latest, latestDate, found = m, d, true
		}
	}
	return latest, latestDate, found
}

// ValidateConsistency cross-checks the record's declared status against its
// milestone history: the status must equal the status implied by the
// highest-dated milestone, or be reachable from it. An inconsistency is
// reported, never auto-corrected.
func ValidateConsistency(r *opportunity.Record) []error {
	milestone, _, ok := LatestMilestone(r)
	if !ok {
		return nil
	}

	implied := milestoneStatus[milestone]
	if r.Status == implied || reachable(implied, r.Status) {
		return nil
	}

	return []error{fmt.Errorf(
		"status %q not reachable from timeline: latest milestone %s implies %q",
		r.Status, milestone, implied,
	)}
}
