package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sthanna/UsTaxesFree/internal/calculation"
	"github.com/sthanna/UsTaxesFree/internal/config"
	"github.com/sthanna/UsTaxesFree/internal/logger"
	"github.com/sthanna/UsTaxesFree/internal/output"
)

var (
	calcFormat string
	calcToFile bool
)

// calcCmd runs a one-shot calculation from a YAML return file.
var calcCmd = &cobra.Command{
	Use:   "calc <return-file.yaml>",
	Short: "Calculate a return from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		ret, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}

		engine := calculation.NewCalculationEngine()
		if verbose {
			zl, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = zl.Sync() }()
			engine.SetLogger(logger.NewEngineLogger(zl))
		}

		result, err := engine.Run(&ret.Input, ret.FilingStatus, ret.TaxYear)
		if err != nil {
			return err
		}

		formatter := output.GetFormatterByName(calcFormat)
		if formatter == nil {
			return fmt.Errorf("unknown format %q (available: %s)",
				calcFormat, strings.Join(output.AvailableFormatterNames(), ", "))
		}

		if calcToFile {
			filename, err := output.WriteFormatted(formatter, result, formatter.Name())
			if err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", filename)
			return nil
		}

		data, err := formatter.Format(result)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

// initCmd writes an example return file to start from.
var initCmd = &cobra.Command{
	Use:   "init <return-file.yaml>",
	Short: "Write an example return file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err == nil {
			return fmt.Errorf("%s already exists", args[0])
		}

		example := config.NewInputParser().CreateExampleReturn()
		data, err := yaml.Marshal(example)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote example return to %s\n", args[0])
		return nil
	},
}

func init() {
	calcCmd.Flags().StringVarP(&calcFormat, "format", "f", "console",
		"output format (console, json, csv)")
	calcCmd.Flags().BoolVar(&calcToFile, "to-file", false,
		"write output to a timestamped file instead of stdout")
}
