package opportunity

import "fmt"

// Validate checks the record against the schema: required fields present,
// enum values recognized, numeric scores in range, outcome consistent with
// status. It returns every violation found, not just the first. Unknown enum
// values are errors, never silently accepted.
func (r *Record) Validate() []error {
	var errs []error

	if r.ID == "" {
		errs = append(errs, fmt.Errorf("id is required"))
	}
	if r.Name == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}

	if r.Category == "" {
		errs = append(errs, fmt.Errorf("category is required"))
	} else if !r.Category.IsValid() {
		errs = append(errs, fmt.Errorf("unknown category: %q", r.Category))
	}

	if r.Status == "" {
		errs = append(errs, fmt.Errorf("status is required"))
	} else if !r.Status.IsValid() {
		errs = append(errs, fmt.Errorf("unknown status: %q", r.Status))
	}

	if r.Outcome != "" && !r.Outcome.IsValid() {
		errs = append(errs, fmt.Errorf("unknown outcome: %q", r.Outcome))
	}
	if r.Outcome != "" && r.Status != StatusOutcome {
		errs = append(errs, fmt.Errorf("outcome %q set while status is %q", r.Outcome, r.Status))
	}
	if r.Outcome == "" && r.Status == StatusOutcome {
		errs = append(errs, fmt.Errorf("status is outcome but no outcome recorded"))
	}

	if r.Deadline.Type != "" && !r.Deadline.Type.IsValid() {
		errs = append(errs, fmt.Errorf("unknown deadline type: %q", r.Deadline.Type))
	}
	if r.Amount.Type != "" && !r.Amount.Type.IsValid() {
		errs = append(errs, fmt.Errorf("unknown amount type: %q", r.Amount.Type))
	}
	if r.Amount.Value < 0 {
		errs = append(errs, fmt.Errorf("amount value is negative: %v", r.Amount.Value))
	}
	if r.Submission.EffortLevel != "" && !r.Submission.EffortLevel.IsValid() {
		errs = append(errs, fmt.Errorf("unknown effort level: %q", r.Submission.EffortLevel))
	}
	if r.Submission.MaterialsCount < 0 {
		errs = append(errs, fmt.Errorf("materials count is negative: %d", r.Submission.MaterialsCount))
	}

	if r.Fit.Score != 0 && (r.Fit.Score < 1 || r.Fit.Score > 10) {
		errs = append(errs, fmt.Errorf("fit score %v outside [1,10]", r.Fit.Score))
	}
	for dim, score := range r.Fit.Dimensions {
		if !dim.IsValid() {
			errs = append(errs, fmt.Errorf("unknown dimension: %q", dim))
			continue
		}
		if score == nil {
			continue
		}
		if score.Value < 1 || score.Value > 10 {
			errs = append(errs, fmt.Errorf("dimension %s value %v outside [1,10]", dim, score.Value))
		}
	}

	return errs
}
