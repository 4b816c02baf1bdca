package output

import (
	"encoding/json"

	"github.com/sthanna/UsTaxesFree/internal/domain"
)

// JSONFormatter serializes the calculation result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
