package opportunity

// Category is the opportunity type. It selects the weight table and the
// qualification threshold.
type Category string

const (
	CategoryJob        Category = "job"
	CategoryGrant      Category = "grant"
	CategoryResidency  Category = "residency"
	CategoryFellowship Category = "fellowship"
	CategoryWriting    Category = "writing"
	CategoryEmergency  Category = "emergency"
	CategoryPrize      Category = "prize"
	CategoryProgram    Category = "program"
	CategoryConsulting Category = "consulting"
)

// Categories lists all known categories in declaration order.
func Categories() []Category {
	return []Category{
		CategoryJob, CategoryGrant, CategoryResidency, CategoryFellowship,
		CategoryWriting, CategoryEmergency, CategoryPrize, CategoryProgram,
		CategoryConsulting,
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryJob, CategoryGrant, CategoryResidency, CategoryFellowship,
		CategoryWriting, CategoryEmergency, CategoryPrize, CategoryProgram,
		CategoryConsulting:
		return true
	}
	return false
}

// Status is the lifecycle state of a record. Only the lifecycle executor may
// change it; scoring never touches it.
type Status string

const (
	StatusResearch     Status = "research"
	StatusQualified    Status = "qualified"
	StatusDrafting     Status = "drafting"
	StatusStaged       Status = "staged"
	StatusSubmitted    Status = "submitted"
	StatusAcknowledged Status = "acknowledged"
	StatusInterview    Status = "interview"
	StatusOutcome      Status = "outcome"
	StatusDeferred     Status = "deferred"
	StatusWithdrawn    Status = "withdrawn"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusResearch, StatusQualified, StatusDrafting, StatusStaged,
		StatusSubmitted, StatusAcknowledged, StatusInterview, StatusOutcome,
		StatusDeferred, StatusWithdrawn:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s Status) Terminal() bool {
	return s == StatusOutcome || s == StatusWithdrawn
}

// Outcome is the final result of a record. Non-empty only once the record
// reaches the outcome status.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeRejected  Outcome = "rejected"
	OutcomeWithdrawn Outcome = "withdrawn"
	OutcomeExpired   Outcome = "expired"
)

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeAccepted, OutcomeRejected, OutcomeWithdrawn, OutcomeExpired:
		return true
	}
	return false
}

// DeadlineType qualifies the deadline date. Rolling and tba deadlines never
// expire.
type DeadlineType string

const (
	DeadlineHard    DeadlineType = "hard"
	DeadlineFixed   DeadlineType = "fixed"
	DeadlineRolling DeadlineType = "rolling"
	DeadlineWindow  DeadlineType = "window"
	DeadlineTBA     DeadlineType = "tba"
)

func (d DeadlineType) IsValid() bool {
	switch d {
	case DeadlineHard, DeadlineFixed, DeadlineRolling, DeadlineWindow, DeadlineTBA:
		return true
	}
	return false
}

// NeverExpires reports whether the deadline type is open-ended.
func (d DeadlineType) NeverExpires() bool {
	return d == DeadlineRolling || d == DeadlineTBA
}

// AmountType classifies the money attached to an opportunity.
type AmountType string

const (
	AmountLumpSum  AmountType = "lump_sum"
	AmountStipend  AmountType = "stipend"
	AmountSalary   AmountType = "salary"
	AmountFee      AmountType = "fee"
	AmountInKind   AmountType = "in_kind"
	AmountVariable AmountType = "variable"
)

func (a AmountType) IsValid() bool {
	switch a {
	case AmountLumpSum, AmountStipend, AmountSalary, AmountFee, AmountInKind, AmountVariable:
		return true
	}
	return false
}

// EffortLevel estimates how heavy the submission is.
type EffortLevel string

const (
	EffortQuick    EffortLevel = "quick"
	EffortStandard EffortLevel = "standard"
	EffortDeep     EffortLevel = "deep"
	EffortComplex  EffortLevel = "complex"
)

func (e EffortLevel) IsValid() bool {
	switch e {
	case EffortQuick, EffortStandard, EffortDeep, EffortComplex:
		return true
	}
	return false
}
