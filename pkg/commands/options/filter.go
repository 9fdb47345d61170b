package options

import (
	"github.com/spf13/cobra"
)

// FilterOptions captures the visibility filters shared by headless commands.
type FilterOptions struct {
	Query      string
	Categories []string
	Featured   bool
}

// AddFilterArgs wires filter flags on the provided command.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Query, "query", "q", "",
		"Substring match against name, booth, address, category and description.")
	cmd.Flags().StringArrayVarP(&o.Categories, "category", "c", nil,
		"Show only these category ids. Repeatable.")
	cmd.Flags().BoolVar(&o.Featured, "featured", false,
		"Show only featured locations.")
}
