package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/xrechnung-processor/internal/model"
	xmlparser "github.com/rezonia/xrechnung-processor/internal/parser/xml"
	"github.com/rezonia/xrechnung-processor/internal/render"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about XRechnung files",
	Long: `Display classification details for XRechnung files without full
processing.

Shows:
  - Detected dialect (UBL Invoice, UBL CreditNote, CII)
  - Syntax family and visualization stylesheets
  - File metadata

Examples:
  xrechnung-processor info invoice.xml
  xrechnung-processor info *.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	for _, file := range files {
		printFileInfo(file)
		fmt.Println()
	}

	return nil
}

func printFileInfo(filePath string) {
	fmt.Printf("File: %s\n", filePath)

	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Size: %d bytes\n", info.Size())
	fmt.Printf("  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Printf("  Error reading file: %v\n", err)
		return
	}

	stripped := xmlparser.StripTrailingPDF(data)
	if len(stripped) < len(data) {
		fmt.Printf("  Trailing PDF payload: %d bytes removed\n", len(data)-len(stripped))
	}

	_, dialect, err := xmlparser.Classify(stripped)
	if err != nil {
		fmt.Printf("  Dialect: unknown (%v)\n", err)
		return
	}

	fmt.Printf("  Dialect: %s\n", dialectName(dialect))
	fmt.Printf("  Syntax: %s\n", dialect.Syntax())

	if html, err := render.Stylesheet(dialect, render.FormatHTML); err == nil {
		fmt.Printf("  HTML stylesheet: %s\n", html)
	}
	if pdf, err := render.Stylesheet(dialect, render.FormatPDF); err == nil {
		fmt.Printf("  PDF stylesheet: %s\n", pdf)
	}
}

func dialectName(d model.Dialect) string {
	switch d {
	case model.DialectUBLInvoice:
		return "UBL Invoice"
	case model.DialectUBLCreditNote:
		return "UBL CreditNote"
	case model.DialectCII:
		return "UN/CEFACT Cross Industry Invoice"
	default:
		return "Unknown"
	}
}
