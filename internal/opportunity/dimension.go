package opportunity

// Dimension is one of the eight named sub-scores contributing to the
// composite fit score. The five auto-derived dimensions come first, then the
// three human-judgment ones.
type Dimension string

const (
	DimDeadlineFeasibility Dimension = "deadline_feasibility"
	DimFinancialAlignment  Dimension = "financial_alignment"
	DimPortalFriction      Dimension = "portal_friction"
	DimEffortToValue       Dimension = "effort_to_value"
	DimStrategicValue      Dimension = "strategic_value"
	DimMissionAlignment    Dimension = "mission_alignment"
	DimEvidenceMatch       Dimension = "evidence_match"
	DimTrackRecordFit      Dimension = "track_record_fit"
)

// Dimensions lists the eight dimensions in declaration order. The order is
// load-bearing: it is the tie-breaker when the qualification gate names the
// weakest dimensions.
func Dimensions() []Dimension {
	return []Dimension{
		DimDeadlineFeasibility, DimFinancialAlignment, DimPortalFriction,
		DimEffortToValue, DimStrategicValue,
		DimMissionAlignment, DimEvidenceMatch, DimTrackRecordFit,
	}
}

func (d Dimension) IsValid() bool {
	switch d {
	case DimDeadlineFeasibility, DimFinancialAlignment, DimPortalFriction,
		DimEffortToValue, DimStrategicValue,
		DimMissionAlignment, DimEvidenceMatch, DimTrackRecordFit:
		return true
	}
	return false
}

// HumanJudgment reports whether the dimension is one of the three estimated
// from human-authored signals. Only these keep a human override; the
// auto-derived five are always recomputed from current field values.
func (d Dimension) HumanJudgment() bool {
	switch d {
	case DimMissionAlignment, DimEvidenceMatch, DimTrackRecordFit:
		return true
	}
	return false
}

// DimensionScore is a stored dimension value with its provenance. A value set
// by a person carries Override=true and survives recomputation.
type DimensionScore struct {
	Value    float64 `yaml:"value"`
	Override bool    `yaml:"override,omitempty"`
}
