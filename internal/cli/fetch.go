package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch NAME",
	Short: "Download and extract a dataset",
	Long:  `Download and extract wikitext-2 or wikitext-103 unless its split files are already installed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		paths, err := store.Fetch(cmd.Context(), name)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !store.Installed(name) {
			fmt.Fprintln(out, errorStyle.Render(name+" could not be installed; see the log above"))
			return fmt.Errorf("%s is not installed", name)
		}
		fmt.Fprintln(out, successStyle.Render(name+" is installed"))
		for _, p := range paths.All() {
			fmt.Fprintln(out, dimStyle.Render("  "+p))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
