package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/xrechnung-processor/internal/messages"
	"github.com/rezonia/xrechnung-processor/internal/model"
	"github.com/rezonia/xrechnung-processor/internal/processor"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate XRechnung files",
	Long: `Validate one or more XRechnung files against the core field rules.

Checks performed:
  - Document parses as well-formed XML
  - Root element identifies a known dialect (UBL Invoice, UBL CreditNote, CII)
  - Invoice ID present
  - Issue date matches YYYY-MM-DD or YYYYMMDD
  - Currency code is a three-letter code

The command exits non-zero when any file is invalid.

Examples:
  xrechnung-processor validate invoice.xml
  xrechnung-processor validate *.xml --locale en`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	pipeline := processor.NewPipeline()
	results := make([]*ValidateResult, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(pipeline, file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Printf("  - [%s] %s (%s)\n", e.Code, e.Message, e.Location)
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("  ⚠ [%s] %s (%s)\n", w.Code, w.Message, w.Location)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}

	return nil
}

func validateFile(pipeline *processor.Pipeline, filePath string) *ValidateResult {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := &ValidateResult{
		File:     filePath,
		Errors:   []model.Finding{},
		Warnings: []model.Finding{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Errors = append(result.Errors, model.Finding{
			Code:     model.CodeParseError,
			Message:  fmt.Sprintf("failed to read file: %v", err),
			Location: "document",
			Severity: model.SeverityCritical,
		})
		return result
	}

	validation := messages.LocalizeResult(pipeline.Validate(ctx, data), locale)
	result.Valid = validation.IsValid()
	result.Errors = validation.Errors
	result.Warnings = validation.Warnings
	return result
}

// ValidateResult holds the validation outcome for a single file
type ValidateResult struct {
	File     string          `json:"file"`
	Valid    bool            `json:"valid"`
	Errors   []model.Finding `json:"errors,omitempty"`
	Warnings []model.Finding `json:"warnings,omitempty"`
}
