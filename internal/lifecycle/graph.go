// Package lifecycle enforces the application state machine: which status
// moves are legal, which statuses are reachable from where, and whether a
// record's declared status is supported by its own milestone history.
package lifecycle

import (
	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

// transitions is the legal lifecycle graph. outcome and withdrawn are
// terminal. deferred fans back out to the drafting-side states because a
// deferral is re-entered from wherever it was parked.
var transitions = map[opportunity.Status][]opportunity.Status{
	opportunity.StatusResearch: {
		opportunity.StatusQualified, opportunity.StatusWithdrawn,
	},
	opportunity.StatusQualified: {
		opportunity.StatusDrafting, opportunity.StatusStaged,
		opportunity.StatusWithdrawn, opportunity.StatusDeferred,
	},
	opportunity.StatusDrafting: {
		opportunity.StatusStaged, opportunity.StatusQualified,
		opportunity.StatusWithdrawn,
	},
	opportunity.StatusStaged: {
		opportunity.StatusSubmitted, opportunity.StatusDrafting,
		opportunity.StatusWithdrawn,
	},
	opportunity.StatusSubmitted: {
		opportunity.StatusAcknowledged, opportunity.StatusInterview,
		opportunity.StatusOutcome, opportunity.StatusWithdrawn,
	},
	opportunity.StatusAcknowledged: {
		opportunity.StatusInterview, opportunity.StatusOutcome,
		opportunity.StatusWithdrawn,
	},
	opportunity.StatusInterview: {
		opportunity.StatusOutcome, opportunity.StatusWithdrawn,
	},
	opportunity.StatusDeferred: {
		opportunity.StatusQualified, opportunity.StatusDrafting,
		opportunity.StatusStaged, opportunity.StatusWithdrawn,
	},
	opportunity.StatusOutcome:   {},
	opportunity.StatusWithdrawn: {},
}

// reachability is precomputed for every status at init; the graph is static
// and tiny.
var reachability = buildReachability()

func buildReachability() map[opportunity.Status]map[opportunity.Status]bool {
	all := make(map[opportunity.Status]map[opportunity.Status]bool, len(transitions))
	for from := range transitions {
		all[from] = bfs(from)
	}
	return all
}

// bfs collects every status reachable from start via one or more legal
// transitions. start itself is included only if a cycle returns to it.
func bfs(start opportunity.Status) map[opportunity.Status]bool {
	reached := make(map[opportunity.Status]bool)
	queue := append([]opportunity.Status(nil), transitions[start]...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if reached[current] {
			continue
		}
		reached[current] = true
		queue = append(queue, transitions[current]...)
	}
	return reached
}

// CanTransition reports whether target is a direct legal move from current.
func CanTransition(current, target opportunity.Status) bool {
	for _, next := range transitions[current] {
		if next == target {
			return true
		}
	}
	return false
}

// Targets returns the direct legal moves out of a status.
func Targets(from opportunity.Status) []opportunity.Status {
	return append([]opportunity.Status(nil), transitions[from]...)
}

// Reachable returns the set of statuses obtainable from the given status via
// one or more legal transitions. Terminal statuses reach nothing.
func Reachable(from opportunity.Status) map[opportunity.Status]bool {
	set := make(map[opportunity.Status]bool, len(reachability[from]))
	for status := range reachability[from] {
		set[status] = true
	}
	return set
}

func reachable(from, to opportunity.Status) bool {
	return reachability[from][to]
}
