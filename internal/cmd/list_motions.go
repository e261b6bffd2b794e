package cmd

import (
	"fmt"

	"github.com/Iron-Ham/oxdebate/internal/debate"
	"github.com/Iron-Ham/oxdebate/internal/tui/styles"
	"github.com/spf13/cobra"
)

var listMotionsCmd = &cobra.Command{
	Use:   "list-motions",
	Short: "Print the example debate motions",
	Args:  cobra.NoArgs,
	RunE:  runListMotions,
}

func init() {
	rootCmd.AddCommand(listMotionsCmd)
}

func runListMotions(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, styles.Title.Render("Example motions"))
	for i, m := range debate.ExampleMotions() {
		fmt.Fprintf(out, "%2d. %s\n", i+1, m)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Muted.Render(`Use one with: oxdebate generate --motion "<motion>"`))
	return nil
}
