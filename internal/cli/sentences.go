package cli

import (
	"bufio"
	"fmt"

	"github.com/dgallion1/wikitext/internal/wikitext"
	"github.com/spf13/cobra"
)

var sentencesSplit string

var sentencesCmd = &cobra.Command{
	Use:   "sentences NAME",
	Short: "Print the content lines of a split, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paragraphs, err := store.LoadSplit(cmd.Context(), args[0], sentencesSplit)
		if err != nil {
			return err
		}

		w := bufio.NewWriter(cmd.OutOrStdout())
		for _, s := range wikitext.Sentences(paragraphs) {
			fmt.Fprintln(w, s)
		}
		return w.Flush()
	},
}

func init() {
	sentencesCmd.Flags().StringVarP(&sentencesSplit, "split", "s", "train", "Split to print (train, valid, test)")
	rootCmd.AddCommand(sentencesCmd)
}
