package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/pursuit-cli/pursuit/internal/opportunity"
)

// Benefits-cliff thresholds for non-job money. Income above these bands
// progressively endangers benefits eligibility, so bigger awards score lower.
const (
	cliffThresholdLow  = 10_000
	cliffThresholdMid  = 25_000
	cliffThresholdHigh = 50_000
)

// Salary bands for the job category, where the relationship inverts: cliff
// risk does not apply and more money is simply better.
const (
	salaryBandLow  = 50_000
	salaryBandMid  = 100_000
	salaryBandHigh = 150_000
)

// cliffNoteScore is forced when the amount note flags benefits-cliff risk,
// regardless of the amount itself.
const cliffNoteScore = 2

// framingMinLen is the shortest framing text that counts as non-trivial.
const framingMinLen = 30

// portalFrictionScores maps submission channels to how painful they are to
// push an application through. Direct email is the easiest; legacy multi-step
// web portals are the worst.
var portalFrictionScores = map[string]float64{
	"email":        9,
	"direct_email": 9,
	"google_form":  8,
	"simple_form":  7,
	"submittable":  6,
	"portal":       5,
	"workday":      4,
	"slideroom":    4,
	"legacy_form":  4,
}

// effortBase is the per-category starting point for effort_to_value.
var effortBase = map[opportunity.Category]float64{
	opportunity.CategoryJob:        4,
	opportunity.CategoryGrant:      6,
	opportunity.CategoryResidency:  5,
	opportunity.CategoryFellowship: 6,
	opportunity.CategoryWriting:    7,
	opportunity.CategoryEmergency:  8,
	opportunity.CategoryPrize:      7,
	opportunity.CategoryProgram:    5,
	opportunity.CategoryConsulting: 4,
}

// Engine computes dimension scores, composites, and qualification decisions.
type Engine struct {
	cfg      Config
	prestige *PrestigeTable
	evidence EvidenceSource
	now      func() time.Time
}

// NewEngine validates the config and builds an engine. A weight table not
// summing to 1.0 is fatal here, before any record is touched.
func NewEngine(cfg Config, prestige *PrestigeTable, evidence EvidenceSource) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	if prestige == nil {
		prestige = DefaultPrestigeTable()
	}
	if evidence == nil {
		evidence = RecordEvidence()
	}
	return &Engine{
		cfg:      cfg,
		prestige: prestige,
		evidence: evidence,
		now:      time.Now,
	}, nil
}

// WithNow pins the engine clock. Tests use it; production keeps time.Now.
func (e *Engine) WithNow(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Score computes all eight dimensions for a record. Pure given the record
// snapshot: calling it twice on an unchanged record yields identical values.
//
// The five auto-derived dimensions are always recomputed from current field
// values; stale overrides on them are ignored. The three human-judgment
// dimensions are preserved verbatim when a person pinned them, and estimated
// from the record's own signals otherwise.
func (e *Engine) Score(r *opportunity.Record) map[opportunity.Dimension]float64 {
	coverage := e.evidence.MaterialsCount(r)

	dims := map[opportunity.Dimension]float64{
		opportunity.DimDeadlineFeasibility: e.deadlineFeasibility(r.Deadline),
		opportunity.DimFinancialAlignment:  financialAlignment(r.Amount, r.Category),
		opportunity.DimPortalFriction:      e.portalFriction(r.Submission.PortalFrictionHint),
		opportunity.DimEffortToValue:       effortToValue(r.Category, coverage, r.Amount.Value),
		opportunity.DimStrategicValue:      e.strategicValue(r.Organization, r.Category),
	}

	prior := r.Fit.Score
	if prior == 0 {
		prior = 5
	}

	for _, dim := range opportunity.Dimensions() {
		if !dim.HumanJudgment() {
			continue
		}
		if r.HasOverride(dim) {
			value, _ := r.DimensionValue(dim)
			dims[dim] = clamp(value)
			continue
		}
		switch dim {
		case opportunity.DimMissionAlignment:
			dims[dim] = estimateMission(prior, r.Fit.Framing)
		case opportunity.DimEvidenceMatch:
			dims[dim] = estimateEvidence(prior, coverage)
		case opportunity.DimTrackRecordFit:
			// No category-specific penalty here; the weight tables
			// already de-emphasize this dimension for jobs.
			dims[dim] = clamp(prior)
		}
	}

	return dims
}

// deadlineFeasibility is a step function of days remaining. Rolling and tba
// deadlines never expire and score 9; an already-expired deadline scores 1.
func (e *Engine) deadlineFeasibility(d opportunity.Deadline) float64 {
	if d.Type.NeverExpires() {
		return 9
	}
	if d.Date.IsZero() {
		// Dated deadline type without a date yet. Neutral until known.
		return 5
	}

	today := opportunity.NewDate(e.now())
	days := int(d.Date.Sub(today.Time).Hours() / 24)
	switch {
	case days < 0:
		return 1
	case days <= 1:
		return 2
	case days <= 3:
		return 3
	case days <= 7:
		return 5
	case days <= 14:
		return 6
	case days <= 30:
		return 8
	default:
		return 9
	}
}

// financialAlignment scores the money. For non-job categories the curve is an
// inverted U anchored at zero: no money is the safest, and amounts climbing
// through the cliff thresholds degrade the score to a floor of 3. An explicit
// cliff-risk note in the amount overrides everything. Jobs invert the curve.
func financialAlignment(amount opportunity.Amount, category opportunity.Category) float64 {
	if strings.Contains(strings.ToLower(amount.Note), "cliff") {
		return cliffNoteScore
	}

	if category == opportunity.CategoryJob {
		switch {
		case amount.Value == 0:
			return 5
		case amount.Value < salaryBandLow:
			return 4
		case amount.Value < salaryBandMid:
			return 6
		case amount.Value < salaryBandHigh:
			return 8
		default:
			return 9
		}
	}

	switch {
	case amount.Value == 0:
		return 10
	case amount.Value <= cliffThresholdLow:
		return 8
	case amount.Value <= cliffThresholdMid:
		return 6
	case amount.Value <= cliffThresholdHigh:
		return 4
	default:
		return 3
	}
}

func (e *Engine) portalFriction(hint string) float64 {
	if score, ok := portalFrictionScores[strings.ToLower(strings.TrimSpace(hint))]; ok {
		return score
	}
	return e.cfg.PortalDefault
}

// effortToValue starts from a per-category base, adds a capped bonus for
// evidence coverage (reusable materials make the submission cheaper), and
// adjusts for the amount at stake.
func effortToValue(category opportunity.Category, coverage int, amount float64) float64 {
	score, ok := effortBase[category]
	if !ok {
		score = 5
	}

	bonus := float64(coverage) * 0.4
	if bonus > 2 {
		bonus = 2
	}
	score += bonus

	switch {
	case amount >= cliffThresholdHigh:
		score += 2
	case amount >= cliffThresholdLow:
		score++
	case amount > 0 && amount < 1_000:
		score--
	}

	return clamp(score)
}

func (e *Engine) strategicValue(organization string, category opportunity.Category) float64 {
	if score, ok := e.prestige.Lookup(organization); ok {
		return score
	}
	if base, ok := strategicBase[category]; ok {
		return base
	}
	return 5
}

func estimateMission(prior float64, framing string) float64 {
	if len(strings.TrimSpace(framing)) > framingMinLen {
		return clamp(prior + 1)
	}
	return clamp(prior - 1)
}

func estimateEvidence(prior float64, coverage int) float64 {
	switch {
	case coverage >= 5:
		prior++
	case coverage == 0:
		prior -= 2
	case coverage <= 2:
		prior--
	}
	return clamp(prior)
}

func clamp(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
