package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/fairmap/pkg/commands/options"
	"tableflip.dev/fairmap/pkg/runner/categories"
)

func addCategories(topLevel *cobra.Command) {
	so := &options.SourceOptions{}

	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats", "legend"},
		Short:   "show the category legend with counts",
		Example: `
fairmap categories
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadDocument(context.Background(), so)
			if err != nil {
				return err
			}
			s := categories.Categories{Document: res.Document}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddSourceArgs(cmd, so)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
