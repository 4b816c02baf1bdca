package calculation

import (
	"github.com/sthanna/UsTaxesFree/internal/domain"
)

// ScheduleBResult carries the Schedule B totals consumed by Form 1040
// lines 2b and 3b, alongside the presentational lines.
type ScheduleBResult struct {
	TotalInterest  float64
	TotalDividends float64
	Lines          []domain.TaxLine
}

// CalculateScheduleB slots the pre-aggregated interest and dividend totals
// into the Schedule B line-numbering contract. Per-payer aggregation across
// 1099-INT/DIV documents happens upstream; this schedule only echoes the
// sums under the line numbers downstream code expects.
func CalculateScheduleB(input *domain.TaxInput) ScheduleBResult {
	totalInterest := input.TaxableInterest
	totalDividends := input.OrdinaryDividends

	lines := []domain.TaxLine{
		{
			ID:          "SchB_4",
			Description: "Total Interest",
			Value:       totalInterest,
			Form:        "Schedule B",
			LineNumber:  "4",
		},
		{
			ID:          "SchB_6",
			Description: "Total Ordinary Dividends",
			Value:       totalDividends,
			Form:        "Schedule B",
			LineNumber:  "6",
		},
	}

	return ScheduleBResult{
		TotalInterest:  totalInterest,
		TotalDividends: totalDividends,
		Lines:          lines,
	}
}
