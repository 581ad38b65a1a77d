package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dgallion1/wikitext/internal/dataset"
	"github.com/dgallion1/wikitext/internal/wikitext"
	"github.com/spf13/cobra"
)

var loadSplit string
var loadJSON bool

var loadCmd = &cobra.Command{
	Use:   "load NAME",
	Short: "Parse a dataset into paragraphs",
	Long: `Fetch a dataset if needed and parse its token files into paragraphs.

Without --split all three splits are parsed. By default a summary is printed;
--json writes the paragraphs instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		var splits map[dataset.Split][]wikitext.Paragraph
		if loadSplit == "" {
			var err error
			splits, err = store.Load(cmd.Context(), name)
			if err != nil {
				return err
			}
		} else {
			paragraphs, err := store.LoadSplit(cmd.Context(), name, loadSplit)
			if err != nil {
				return err
			}
			if loadJSON {
				return writeJSON(cmd, paragraphs)
			}
			splits = map[dataset.Split][]wikitext.Paragraph{dataset.Split(loadSplit): paragraphs}
		}

		if loadJSON {
			return writeJSON(cmd, splits)
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatSummary(name, splits))
		return nil
	},
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	loadCmd.Flags().StringVarP(&loadSplit, "split", "s", "", "Only parse this split (train, valid, test)")
	loadCmd.Flags().BoolVar(&loadJSON, "json", false, "Write paragraphs as JSON")
	rootCmd.AddCommand(loadCmd)
}
