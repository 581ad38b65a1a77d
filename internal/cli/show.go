package cli

import (
	"fmt"

	"github.com/dgallion1/wikitext/internal/render"
	"github.com/dgallion1/wikitext/internal/wikitext"
	"github.com/spf13/cobra"
)

var showSplit string
var showDoc int
var showPlain bool
var showWidth int

var showCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Render one document of a split",
	Long:  `Render a document as Markdown in the terminal. --plain prints the raw Markdown.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paragraphs, err := store.LoadSplit(cmd.Context(), args[0], showSplit)
		if err != nil {
			return err
		}

		docs := wikitext.Documents(paragraphs)
		if showDoc < 0 || showDoc >= len(docs) {
			return fmt.Errorf("document %d out of range, %s has %d documents", showDoc, showSplit, len(docs))
		}
		doc := docs[showDoc]

		if showPlain {
			fmt.Fprint(cmd.OutOrStdout(), render.Markdown(doc))
			return nil
		}
		out, err := render.Terminal(doc, "", showWidth)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showSplit, "split", "s", "train", "Split to read (train, valid, test)")
	showCmd.Flags().IntVarP(&showDoc, "doc", "d", 0, "Position of the document within the split")
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Print Markdown without terminal styling")
	showCmd.Flags().IntVar(&showWidth, "width", 100, "Wrap width for terminal rendering")
	rootCmd.AddCommand(showCmd)
}
