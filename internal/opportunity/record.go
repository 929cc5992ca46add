package opportunity

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the wire format for all dates in record files. Records are
// hand-edited, so a date-only form beats RFC3339.
const DateLayout = "2006-01-02"

// Date is a calendar day. The zero value means "not set" and is omitted from
// serialized records.
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to the day in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalYAML() (interface{}, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "" || value.Tag == "!!null" {
		*d = Date{}
		return nil
	}
	parsed, err := time.Parse(DateLayout, value.Value)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", value.Value, err)
	}
	*d = Date{parsed}
	return nil
}

// Deadline is the date an opportunity closes, plus how firm that date is.
type Deadline struct {
	Date Date         `yaml:"date,omitempty"`
	Type DeadlineType `yaml:"type"`
}

// Amount is the money attached to an opportunity. Note carries free-text
// flags such as benefits-cliff risk.
type Amount struct {
	Value    float64    `yaml:"value"`
	Currency string     `yaml:"currency,omitempty"`
	Type     AmountType `yaml:"type"`
	Note     string     `yaml:"note,omitempty"`
}

// Fit holds the composite score, the per-dimension breakdown, and advisory
// fields consumed only by external collaborators (drafting, reporting).
type Fit struct {
	Score            float64                       `yaml:"score,omitempty"`
	Dimensions       map[Dimension]*DimensionScore `yaml:"dimensions,omitempty"`
	IdentityPosition string                        `yaml:"identity_position,omitempty"`
	Framing          string                        `yaml:"framing,omitempty"`
}

// Submission describes how the application is delivered.
type Submission struct {
	EffortLevel        EffortLevel `yaml:"effort_level"`
	MaterialsCount     int         `yaml:"materials_count,omitempty"`
	PortalFrictionHint string      `yaml:"portal_friction_hint,omitempty"`
}

// Timeline is the per-record map of lifecycle milestone dates. It is used
// only to audit the declared status, never to derive it.
type Timeline struct {
	Researched     Date `yaml:"researched,omitempty"`
	Qualified      Date `yaml:"qualified,omitempty"`
	MaterialsReady Date `yaml:"materials_ready,omitempty"`
	Submitted      Date `yaml:"submitted,omitempty"`
	Acknowledged   Date `yaml:"acknowledged,omitempty"`
	Interview      Date `yaml:"interview,omitempty"`
	OutcomeDate    Date `yaml:"outcome_date,omitempty"`
}

// Milestone names the timeline fields.
type Milestone string

const (
	MilestoneResearched     Milestone = "researched"
	MilestoneQualified      Milestone = "qualified"
	MilestoneMaterialsReady Milestone = "materials_ready"
	MilestoneSubmitted      Milestone = "submitted"
	MilestoneAcknowledged   Milestone = "acknowledged"
	MilestoneInterview      Milestone = "interview"
	MilestoneOutcomeDate    Milestone = "outcome_date"
)

// Milestones lists all timeline milestones in lifecycle order.
func Milestones() []Milestone {
	return []Milestone{
		MilestoneResearched, MilestoneQualified, MilestoneMaterialsReady,
		MilestoneSubmitted, MilestoneAcknowledged, MilestoneInterview,
		MilestoneOutcomeDate,
	}
}

// Get returns the date recorded for the milestone.
func (t *Timeline) Get(m Milestone) Date {
	switch m {
	case MilestoneResearched:
		return t.Researched
	case MilestoneQualified:
		return t.Qualified
	case MilestoneMaterialsReady:
		return t.MaterialsReady
	case MilestoneSubmitted:
		return t.Submitted
	case MilestoneAcknowledged:
		return t.Acknowledged
	case MilestoneInterview:
		return t.Interview
	case MilestoneOutcomeDate:
		return t.OutcomeDate
	}
	return Date{}
}

// Set records a date for the milestone.
func (t *Timeline) Set(m Milestone, d Date) {
	switch m {
	case MilestoneResearched:
		t.Researched = d
	case MilestoneQualified:
		t.Qualified = d
	case MilestoneMaterialsReady:
		t.MaterialsReady = d
	case MilestoneSubmitted:
		t.Submitted = d
	case MilestoneAcknowledged:
		t.Acknowledged = d
	case MilestoneInterview:
		t.Interview = d
	case MilestoneOutcomeDate:
		t.OutcomeDate = d
	}
}

// Record is one tracked opportunity. Its ID doubles as the storage key: the
// record lives in <data-dir>/<category>/<id>.yaml.
type Record struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	Category     Category   `yaml:"category"`
	Status       Status     `yaml:"status"`
	Outcome      Outcome    `yaml:"outcome,omitempty"`
	Organization string     `yaml:"organization,omitempty"`
	Deadline     Deadline   `yaml:"deadline"`
	Amount       Amount     `yaml:"amount"`
	Fit          Fit        `yaml:"fit,omitempty"`
	Submission   Submission `yaml:"submission"`
	Timeline     Timeline   `yaml:"timeline,omitempty"`
	LastTouched  Date       `yaml:"last_touched,omitempty"`
}

// DimensionValue returns the stored score for a dimension, if any.
func (r *Record) DimensionValue(d Dimension) (float64, bool) {
	if r.Fit.Dimensions == nil {
		return 0, false
	}
	score, ok := r.Fit.Dimensions[d]
	if !ok || score == nil {
		return 0, false
	}
	return score.Value, true
}

// HasOverride reports whether a person pinned the dimension value.
func (r *Record) HasOverride(d Dimension) bool {
	if r.Fit.Dimensions == nil {
		return false
	}
	score, ok := r.Fit.Dimensions[d]
	return ok && score != nil && score.Override
}
