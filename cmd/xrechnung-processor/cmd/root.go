package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	locale       string

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "xrechnung-processor",
	Short: "Process XRechnung e-invoices (UBL and CII)",
	Long: `XRechnung Processor extracts and validates German e-invoices.

Supports:
  - UBL Invoice and UBL CreditNote documents
  - UN/CEFACT Cross Industry Invoice (CII) documents
  - Embedded attachment extraction

Examples:
  # Extract a single invoice
  xrechnung-processor process invoice.xml

  # Validate invoices
  xrechnung-processor validate *.xml

  # List embedded attachments
  xrechnung-processor attachments invoice.xml

  # Start the HTTP API
  xrechnung-processor serve`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "de", "Locale for validation messages (de, en)")

	cobra.OnInitialize(initLogger)
}

func initLogger() {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
