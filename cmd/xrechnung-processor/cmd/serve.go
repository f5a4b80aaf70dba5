package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rezonia/xrechnung-processor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API for processing XRechnung documents.

Endpoints:
  - POST /api/v1/invoices     - Extract and validate a document
  - POST /api/v1/validate     - Validate only
  - POST /api/v1/render       - Select visualization stylesheet
  - POST /api/v1/attachments  - List embedded attachments
  - GET  /health              - Health check

Every flag can also be set through the environment with the XR_ prefix,
e.g. XR_ADDRESS=:9090 or XR_DEBUG=true.

Examples:
  # Start server on default port
  xrechnung-processor serve

  # Start on custom port in debug mode
  xrechnung-processor serve --address :8080 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("address", ":8080", "Server listen address")
	serveCmd.Flags().Bool("debug", false, "Enable debug mode")
	serveCmd.Flags().Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	serveCmd.Flags().Int64("max-upload-size", server.DefaultMaxUploadSize, "Maximum upload size in bytes")

	viper.SetEnvPrefix("XR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(serveCmd.Flags())
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:       viper.GetString("address"),
		MaxUploadSize: viper.GetInt64("max-upload-size"),
		ReadTimeout:   viper.GetDuration("read-timeout"),
		WriteTimeout:  viper.GetDuration("write-timeout"),
		Debug:         viper.GetBool("debug"),
	}

	srv := server.NewServer(config, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", config.Address)
	return srv.Run()
}
