package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
	"github.com/pursuit-cli/pursuit/internal/store"
)

var (
	// ErrIllegalTransition is returned when the requested move is not an
	// edge of the lifecycle graph. Nothing is written.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrInconsistent is returned when the record's declared status is not
	// supported by its timeline. Advance refuses to act until the record
	// is corrected.
	ErrInconsistent = errors.New("record inconsistent with timeline")
	// ErrOutcomeRequired is returned when advancing into the outcome
	// status without saying which outcome it was.
	ErrOutcomeRequired = errors.New("outcome value required")
)

// Executor is the sole writer of status and timeline. Scoring never touches
// them; collaborators outside this core only force terminal states.
type Executor struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewExecutor(s *store.Store, logger *zap.Logger) *Executor {
	return &Executor{store: s, logger: logger, now: time.Now}
}

// WithNow pins the executor clock for tests.
func (e *Executor) WithNow(now func() time.Time) *Executor {
	e.now = now
	return e
}

// Advance moves the record to the target status: status, milestone date, and
// last_touched change together in one store update, or not at all. An
// advance into outcome must carry the outcome value so the record never
// claims an outcome status without one.
func (e *Executor) Advance(r *opportunity.Record, target opportunity.Status, outcome opportunity.Outcome) error {
	if !target.IsValid() {
		return fmt.Errorf("record %s: unknown status %q", r.ID, target)
	}
	if !CanTransition(r.Status, target) {
		return fmt.Errorf("record %s: %s -> %s: %w", r.ID, r.Status, target, ErrIllegalTransition)
	}
	if errs := ValidateConsistency(r); len(errs) > 0 {
		return fmt.Errorf("record %s: %w: %v", r.ID, ErrInconsistent, errs[0])
	}

	if target == opportunity.StatusOutcome {
		if outcome == "" {
			return fmt.Errorf("record %s: advancing to outcome: %w", r.ID, ErrOutcomeRequired)
		}
		if !outcome.IsValid() {
			return fmt.Errorf("record %s: unknown outcome %q", r.ID, outcome)
		}
	} else if outcome != "" {
		return fmt.Errorf("record %s: outcome %q only applies when advancing to outcome", r.ID, outcome)
	}

	today := opportunity.NewDate(e.now())
	fields := map[string]interface{}{
		"status":       string(target),
		"last_touched": today.String(),
	}
	milestone, hasMilestone := MilestoneFor(target)
	if hasMilestone {
		fields["timeline."+string(milestone)] = today.String()
	}
	if target == opportunity.StatusOutcome {
		fields["outcome"] = string(outcome)
	}

	if err := e.store.Update(r.ID, fields); err != nil {
		return err
	}

	// Mirror the write so callers holding the record see the new state.
	from := r.Status
	r.Status = target
	r.LastTouched = today
	if hasMilestone {
		r.Timeline.Set(milestone, today)
	}
	if target == opportunity.StatusOutcome {
		r.Outcome = outcome
	}

	e.logger.Info("advanced record",
		zap.String("id", r.ID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)
	return nil
}

// BatchResult is the outcome of one record in a batch advance.
type BatchResult struct {
	Record    *opportunity.Record
	From      opportunity.Status
	To        opportunity.Status
	Milestone opportunity.Milestone
	Err       error
	// Applied is false in dry-run mode and for failed records.
	Applied bool
}

// AdvanceBatch applies the transition to every record sequentially. One
// record failing never stops the rest; the caller gets a full result list to
// summarize. In dry-run mode every change is checked and reported but
// nothing is written.
func (e *Executor) AdvanceBatch(records *opportunity.Records, target opportunity.Status, outcome opportunity.Outcome, dryRun bool) []BatchResult {
	results := make([]BatchResult, 0, records.Len())

	for _, r := range records.Items {
		result := BatchResult{Record: r, From: r.Status, To: target}
		if m, ok := MilestoneFor(target); ok {
			result.Milestone = m
		}

		switch {
		case dryRun:
			result.Err = e.check(r, target, outcome)
		default:
			result.Err = e.Advance(r, target, outcome)
			result.Applied = result.Err == nil
		}

		results = append(results, result)
	}

	return results
}

// check runs Advance's preconditions without writing.
func (e *Executor) check(r *opportunity.Record, target opportunity.Status, outcome opportunity.Outcome) error {
	if !CanTransition(r.Status, target) {
		return fmt.Errorf("record %s: %s -> %s: %w", r.ID, r.Status, target, ErrIllegalTransition)
	}
	if errs := ValidateConsistency(r); len(errs) > 0 {
		return fmt.Errorf("record %s: %w: %v", r.ID, ErrInconsistent, errs[0])
	}
	if target == opportunity.StatusOutcome && outcome == "" {
		return fmt.Errorf("record %s: advancing to outcome: %w", r.ID, ErrOutcomeRequired)
	}
	return nil
}
