package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sthanna/UsTaxesFree/internal/calculation"
	"github.com/sthanna/UsTaxesFree/internal/config"
	"github.com/sthanna/UsTaxesFree/internal/domain"
	"github.com/sthanna/UsTaxesFree/internal/output"
)

// writeExampleReturn round-trips the built-in example through YAML so the
// test exercises the same path as a real return file.
func writeExampleReturn(t *testing.T) string {
	t.Helper()

	example := config.NewInputParser().CreateExampleReturn()
	data, err := yaml.Marshal(example)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "return.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestEndToEndCalculation(t *testing.T) {
	parser := config.NewInputParser()
	ret, err := parser.LoadFromFile(writeExampleReturn(t))
	require.NoError(t, err)
	assert.Equal(t, 2025, ret.TaxYear)

	engine := calculation.NewCalculationEngine()
	result, err := engine.Run(&ret.Input, ret.FilingStatus, ret.TaxYear)
	require.NoError(t, err)
	require.NotNil(t, result)

	// The example carries two W-2s, interest, dividends, mixed-term
	// sales and one qualifying child.
	assert.Equal(t, 157000.0, domain.LineValue(result.Lines, "1040", "1z"))
	assert.Equal(t, 2000.0, domain.LineValue(result.Lines, "1040", "19"))
	assert.Greater(t, domain.LineValue(result.Lines, "1040", "24"), 0.0)
	require.NotNil(t, result.StateResult)
	assert.Equal(t, "NY", result.StateResult.State)

	// Exactly one of refund / owed is set.
	assert.True(t, (result.Refund > 0) != (result.AmountOwed > 0) ||
		(result.Refund == 0 && result.AmountOwed == 0))
}

func TestOutputGeneration(t *testing.T) {
	parser := config.NewInputParser()
	ret, err := parser.LoadFromFile(writeExampleReturn(t))
	require.NoError(t, err)

	engine := calculation.NewCalculationEngine()
	result, err := engine.Run(&ret.Input, ret.FilingStatus, ret.TaxYear)
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		formatter := output.GetFormatterByName(name)
		require.NotNil(t, formatter, name)

		data, err := formatter.Format(result)
		assert.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestReturnValidationRejectsBadFile(t *testing.T) {
	parser := config.NewInputParser()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tax_year: 2025\nfiling_status: NOT_A_STATUS\n"), 0o644))

	_, err := parser.LoadFromFile(path)
	assert.Error(t, err)
}
