package output

import (
	"bytes"
	"fmt"

	"github.com/sthanna/UsTaxesFree/internal/domain"
)

// Form 1040 line groups rendered as summary sections, in form order.
var summarySections = []struct {
	title       string
	lineNumbers []string
}{
	{"Income", []string{"1z", "2b", "3b", "7", "8", "9", "11"}},
	{"Deductions", []string{"12", "15"}},
	{"Tax and Credits", []string{"16", "19", "24"}},
	{"Payments", []string{"25d", "26", "33"}},
}

// ConsoleFormatter renders the line-by-line return as a sectioned text summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TAX RETURN SUMMARY %d\n", result.TaxYear)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Filing Status: %s\n", result.FilingStatus)
	fmt.Fprintln(&buf)

	for _, section := range summarySections {
		fmt.Fprintf(&buf, "%s:\n", section.title)
		for _, lineNumber := range section.lineNumbers {
			if line, ok := domain.FindLine(result.Lines, "1040", lineNumber); ok {
				fmt.Fprintf(&buf, "  %-4s %-55s %14s\n", line.LineNumber, line.Description, FormatCurrency(line.Value))
			}
		}
		fmt.Fprintln(&buf)
	}

	if result.StateResult != nil {
		fmt.Fprintf(&buf, "State (%s):\n", result.StateResult.State)
		for _, line := range result.StateResult.Lines {
			fmt.Fprintf(&buf, "  %-4s %-55s %14s\n", line.LineNumber, line.Description, FormatCurrency(line.Value))
		}
		fmt.Fprintln(&buf)
	}

	if result.Refund > 0 {
		fmt.Fprintf(&buf, "REFUND: %s\n", FormatCurrency(result.Refund))
	} else if result.AmountOwed > 0 {
		fmt.Fprintf(&buf, "AMOUNT YOU OWE: %s\n", FormatCurrency(result.AmountOwed))
	} else {
		fmt.Fprintln(&buf, "BALANCED: no refund, nothing owed")
	}

	return buf.Bytes(), nil
}
