// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// SourceOptions captures where the venue document is loaded from.
type SourceOptions struct {
	// Endpoints overrides the configured data endpoints.
	Endpoints []string
	// NoCache skips the snapshot cache fallback.
	NoCache bool
}

// AddSourceArgs wires data source flags on the provided command.
func AddSourceArgs(cmd *cobra.Command, o *SourceOptions) {
	cmd.Flags().StringArrayVarP(&o.Endpoints, "data", "d", nil,
		"Data endpoint (URL or file), tried in order. Repeatable.")
	cmd.Flags().BoolVar(&o.NoCache, "no-cache", false,
		"Do not fall back to the cached snapshot.")
}
