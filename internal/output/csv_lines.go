package output

import (
	"bytes"
	"encoding/csv"

	"github.com/sthanna/UsTaxesFree/internal/domain"
)

// CSVLineExporter writes one row per emitted tax line, federal then state.
type CSVLineExporter struct{}

func (c CSVLineExporter) Name() string { return "csv" }

func (c CSVLineExporter) Format(result *domain.CalculationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Form", "Line", "Description", "Value"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	lines := append([]domain.TaxLine(nil), result.Lines...)
	if result.StateResult != nil {
		lines = append(lines, result.StateResult.Lines...)
	}
	for _, line := range lines {
		row := []string{line.Form, line.LineNumber, line.Description, FormatAmount(line.Value)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
