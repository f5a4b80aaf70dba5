package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/xrechnung-processor/internal/attachment"
	"github.com/rezonia/xrechnung-processor/internal/processor"
)

var (
	extractDir string
	checkPDF   bool
)

var attachmentsCmd = &cobra.Command{
	Use:   "attachments [files...]",
	Short: "List or extract embedded attachments",
	Long: `List the documents embedded in XRechnung files, optionally writing
them to disk.

XRechnung documents may carry base64-encoded attachments such as the
original PDF invoice or timesheets. With --extract the decoded payloads
are written next to each other in the target directory; with --check-pdf
every PDF attachment is additionally validated for structural integrity.

Examples:
  xrechnung-processor attachments invoice.xml
  xrechnung-processor attachments invoice.xml --extract ./out
  xrechnung-processor attachments *.xml --check-pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAttachments,
}

func init() {
	rootCmd.AddCommand(attachmentsCmd)

	attachmentsCmd.Flags().StringVar(&extractDir, "extract", "", "Write decoded attachments into this directory")
	attachmentsCmd.Flags().BoolVar(&checkPDF, "check-pdf", false, "Validate PDF attachment structure")
}

func runAttachments(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	if extractDir != "" {
		if err := os.MkdirAll(extractDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	pipeline := processor.NewPipeline()

	for _, file := range files {
		if err := listAttachments(pipeline, file); err != nil {
			return err
		}
	}

	return nil
}

func listAttachments(pipeline *processor.Pipeline, filePath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	result := pipeline.Process(ctx, data)
	if result.Error != nil {
		return fmt.Errorf("%s: %w", filePath, result.Error)
	}

	fmt.Printf("File: %s\n", filePath)
	if len(result.Invoice.Attachments) == 0 {
		fmt.Println("  No embedded attachments")
		return nil
	}

	for _, a := range result.Invoice.Attachments {
		info, err := attachment.Inspect(a)
		if err != nil {
			fmt.Printf("  %s: decode failed: %v\n", a.Filename, err)
			continue
		}
		fmt.Printf("  %s (%s, %d bytes)\n", info.Filename, info.MimeType, info.Size)

		if checkPDF && attachment.IsPDF(a) {
			if err := attachment.CheckPDF(a); err != nil {
				fmt.Printf("    PDF check: FAILED (%v)\n", err)
			} else {
				fmt.Println("    PDF check: OK")
			}
		}

		if extractDir != "" {
			payload, err := attachment.Decode(a)
			if err != nil {
				continue
			}
			target := filepath.Join(extractDir, filepath.Base(info.Filename))
			if err := os.WriteFile(target, payload, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			fmt.Printf("    Written to %s\n", target)
		}
	}

	return nil
}
