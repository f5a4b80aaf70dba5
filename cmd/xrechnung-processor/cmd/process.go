package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/xrechnung-processor/internal/messages"
	"github.com/rezonia/xrechnung-processor/internal/model"
	"github.com/rezonia/xrechnung-processor/internal/processor"
)

var (
	outputFile string
	timeout    time.Duration
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Extract invoice data from XRechnung files",
	Long: `Process one or more XRechnung files and extract structured data.

Supported documents:
  - UBL Invoice
  - UBL CreditNote
  - UN/CEFACT Cross Industry Invoice (CII)

Extraction always runs together with validation; the output carries the
invoice record and the validation findings side by side. A document that
fails validation still yields its extracted record.

Examples:
  xrechnung-processor process invoice.xml
  xrechnung-processor process *.xml -o results.json
  xrechnung-processor process invoices/ -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	processCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Processing timeout per file")
}

func runProcess(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to process")
	}

	logger.Debug().Int("count", len(files)).Msg("collected input files")

	pipeline := processor.NewPipeline()

	results := make([]*ProcessResult, 0, len(files))
	for _, file := range files {
		logger.Debug().Str("file", file).Msg("processing")

		result := processFile(pipeline, file)
		results = append(results, result)

		if result.Error != "" {
			logger.Debug().Str("file", file).Str("error", result.Error).Msg("hard failure")
		}
	}

	return outputResults(results)
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isXMLFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if !info.IsDir() && isXMLFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isXMLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}

func processFile(pipeline *processor.Pipeline, filePath string) *ProcessResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result := &ProcessResult{
		File: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	pipelineResult := pipeline.Process(ctx, data)
	result.Dialect = string(pipelineResult.Dialect)

	if pipelineResult.Error != nil {
		result.Error = pipelineResult.Error.Error()
	}
	result.Invoice = pipelineResult.Invoice
	if pipelineResult.Validation != nil {
		localized := messages.LocalizeResult(pipelineResult.Validation, locale)
		result.Valid = localized.IsValid()
		result.Findings = append(localized.Errors, localized.Warnings...)
	}

	return result
}

func outputResults(results []*ProcessResult) error {
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "table":
		return outputTable(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w *os.File, results []*ProcessResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func outputTable(w *os.File, results []*ProcessResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tID\tDATE\tCURRENCY\tPAYABLE\tDIALECT\tVALID")
	fmt.Fprintln(tw, "----\t--\t----\t--------\t-------\t-------\t-----")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\n", r.File, r.Error)
			continue
		}

		if r.Invoice != nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
				r.File,
				r.Invoice.ID,
				r.Invoice.IssueDate,
				r.Invoice.CurrencyCode,
				r.Invoice.Totals.PayableAmount.String(),
				r.Dialect,
				r.Valid,
			)
		}
	}

	return tw.Flush()
}

// ProcessResult holds the result of processing a single file
type ProcessResult struct {
	File     string          `json:"file"`
	Invoice  *model.Invoice  `json:"invoice,omitempty"`
	Dialect  string          `json:"dialect,omitempty"`
	Valid    bool            `json:"valid"`
	Findings []model.Finding `json:"findings,omitempty"`
	Error    string          `json:"error,omitempty"`
}
