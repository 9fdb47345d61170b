package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/fairmap/pkg/commands/options"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(fairmap completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(fairmap completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// categoryCompletions suggests category ids from the configured data source.
// Completion is best-effort: any load failure just yields no suggestions.
func categoryCompletions(toComplete string) []string {
	res, err := loadDocument(context.Background(), &options.SourceOptions{})
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(res.Document.Categories))
	for _, c := range res.Document.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
