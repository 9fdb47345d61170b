package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/fairmap/pkg/commands/options"
	"tableflip.dev/fairmap/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	so := &options.SourceOptions{}
	fo := &options.FilterOptions{}
	showID := false

	cmd := &cobra.Command{
		Use:   "get [query]",
		Short: "list locations matching the map's filters",
		Example: `
fairmap get
fairmap get taco
fairmap get --category food-trucks --featured
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if fo.Query != "" {
					fo.Query = fo.Query + " " + strings.Join(args, " ")
				} else {
					fo.Query = strings.Join(args, " ")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadDocument(context.Background(), so)
			if err != nil {
				return err
			}
			s := get.Get{
				Document:   res.Document,
				Query:      fo.Query,
				Categories: fo.Categories,
				Featured:   fo.Featured,
				ShowID:     showID,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddSourceArgs(cmd, so)
	options.AddFilterArgs(cmd, fo)
	cmd.Flags().BoolVar(&showID, "id", false, "Show location ids.")

	flagName := "category"
	_ = cmd.RegisterFlagCompletionFunc(flagName, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
