package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/fairmap/pkg/commands/options"
	"tableflip.dev/fairmap/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	so := &options.SourceOptions{}
	location := ""

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive venue map",
		Example: `
fairmap ui
fairmap ui --location vendor-42
fairmap ui --data https://example.com/locations.json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadDocument(context.Background(), so)
			if err != nil {
				return err
			}
			i := ui.UI{
				Document:  res.Document,
				FromCache: res.FromCache,
				Location:  location,
			}
			return i.Do(context.Background())
		},
	}

	options.AddSourceArgs(cmd, so)
	cmd.Flags().StringVarP(&location, "location", "l", "",
		"Open with this location id selected.")

	topLevel.AddCommand(cmd)
}
