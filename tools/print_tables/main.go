// Command print_tables dumps the computed 1040 skeleton for a fixed
// wage across every supported year, status and state. Handy for eyeball
// checks against the published tables after a constants update.
package main

import (
	"fmt"
	"log"

	"github.com/sthanna/UsTaxesFree/internal/calculation"
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/internal/output"
)

const sampleWages = 85000.0

func main() {
	engine := calculation.NewCalculationEngine()
	registry := engine.Registry

	statuses := []domain.FilingStatus{
		domain.FilingStatusSingle,
		domain.FilingStatusMarriedJoint,
		domain.FilingStatusMarriedSeparate,
		domain.FilingStatusHeadOfHousehold,
		domain.FilingStatusWidow,
	}

	for _, year := range registry.SupportedYears() {
		for _, state := range registry.SupportedStates() {
			fmt.Printf("=== %d / %s ===\n", year, state)
			for _, status := range statuses {
				input := &domain.TaxInput{
					W2s:           []domain.W2Form{{ID: "w1", Employer: "Sample", Wages: sampleWages}},
					ResidentState: state,
				}

				result, err := engine.Run(input, status, year)
				if err != nil {
					log.Fatal(err)
				}

				fmt.Printf("%-20s deduction=%-12s taxable=%-12s tax=%-12s state=%s\n",
					status,
					output.FormatCurrency(domain.LineValue(result.Lines, "1040", "12")),
					output.FormatCurrency(domain.LineValue(result.Lines, "1040", "15")),
					output.FormatCurrency(domain.LineValue(result.Lines, "1040", "16")),
					output.FormatCurrency(result.StateResult.TotalTax),
				)
			}
			fmt.Println()
		}
	}
}
