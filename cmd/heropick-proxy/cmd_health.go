package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"heropick/internal/proxyclient"
)

func runHealth(cmd *cobra.Command, args []string) error {
	client, err := proxyclient.New(healthURL, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(health)
}
