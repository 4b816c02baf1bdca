package calculation

import (
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/pkg/taxmath"
)

// CapitalLossFloor is the most negative allowable capital loss reported to
// Form 1040. Applied flat for every filing status; real law halves it for
// Married Filing Separately, so keep it a single constant until that
// correction is commissioned.
const CapitalLossFloor = -3000.0

// ScheduleDResult carries the capital gain/loss figures for Form 1040
// line 7 alongside the presentational lines. AllowableGainLoss is the
// post-limitation value the 1040 consumes.
type ScheduleDResult struct {
	NetShortTerm      float64
	NetLongTerm       float64
	AllowableGainLoss float64
	Lines             []domain.TaxLine
}

// CalculateScheduleD partitions the 1099-B transactions into short-term and
// long-term, nets proceeds against basis per partition, and applies the
// capital-loss limitation to the combined net.
func CalculateScheduleD(input *domain.TaxInput) ScheduleDResult {
	var stProceeds, stBasis, ltProceeds, ltBasis float64
	for _, tx := range input.CapitalGainsTransactions {
		if tx.IsLongTerm {
			ltProceeds = taxmath.Add(ltProceeds, tx.Proceeds)
			ltBasis = taxmath.Add(ltBasis, tx.CostBasis)
		} else {
			stProceeds = taxmath.Add(stProceeds, tx.Proceeds)
			stBasis = taxmath.Add(stBasis, tx.CostBasis)
		}
	}

	netShortTerm := taxmath.Sub(stProceeds, stBasis)
	netLongTerm := taxmath.Sub(ltProceeds, ltBasis)
	netGainLoss := taxmath.Add(netShortTerm, netLongTerm)

	// A net loss is deductible only up to the floor; gains pass through.
	allowable := netGainLoss
	if netGainLoss < 0 {
		allowable = taxmath.Max(netGainLoss, CapitalLossFloor)
	}

	lines := []domain.TaxLine{
		{
			ID:          "SchD_NetST",
			Description: "Net Short-Term Capital Gain/Loss",
			Value:       netShortTerm,
			Form:        "Schedule D",
			LineNumber:  "7",
		},
		{
			ID:          "SchD_NetLT",
			Description: "Net Long-Term Capital Gain/Loss",
			Value:       netLongTerm,
			Form:        "Schedule D",
			LineNumber:  "15",
		},
		{
			// Flows to Form 1040 line 7.
			ID:          "SchD_Allowable",
			Description: "Allowable Capital Gain/Loss",
			Value:       allowable,
			Form:        "Schedule D",
			LineNumber:  "16",
		},
	}

	return ScheduleDResult{
		NetShortTerm:      netShortTerm,
		NetLongTerm:       netLongTerm,
		AllowableGainLoss: allowable,
		Lines:             lines,
	}
}
