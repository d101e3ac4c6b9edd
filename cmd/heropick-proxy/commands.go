package main

import (
	"github.com/spf13/cobra"
)

var (
	envFile   string
	healthURL string

	rootCmd = &cobra.Command{
		Use:          "heropick-proxy",
		Short:        "Signs and forwards character searches to the upstream API",
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the search proxy",
		Args:  cobra.NoArgs,
		RunE:  runServe, // Defined in cmd_serve.go
	}

	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Query a running proxy's health endpoint",
		Args:  cobra.NoArgs,
		RunE:  runHealth, // Defined in cmd_health.go
	}
)

func init() {
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file with MARVEL_PUBLIC and MARVEL_PRIVATE")
	healthCmd.Flags().StringVar(&healthURL, "url", "http://localhost:8787", "base URL of the proxy")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
}
