package receipt

// Penalty applied for each validation failure or OCR correction. Scoring
// starts at 1.0 and only ever decreases; the final value is clamped to
// [0, 1].
const (
	PenaltyEstablishmentMissing = 0.20
	PenaltyTaxIDMissing         = 0.15
	PenaltyTaxIDInvalid         = 0.10
	PenaltyDateMissing          = 0.20
	PenaltyDateCorrected        = 0.05
	PenaltyItemCorrected        = 0.05 // per corrected item
	PenaltyTotalMissing         = 0.30 // the most load-bearing field
	PenaltyTotalApproximate     = 0.10
	PenaltyInconsistentSum      = 0.05
)

// scorer accumulates confidence penalties for one processing run.
type scorer struct {
	value float64
}

func newScorer() scorer {
	return scorer{value: 1.0}
}

func (s *scorer) penalize(penalty float64) {
	s.value -= penalty
}

// final clamps the accumulated score to [0, 1].
func (s *scorer) final() float64 {
	if s.value < 0 {
		return 0
	}
	if s.value > 1 {
		return 1
	}
	return s.value
}
