package cli

import (
	"encoding/json"

	"github.com/dgallion1/wikitext/internal/chunker"
	"github.com/dgallion1/wikitext/internal/wikitext"
	"github.com/spf13/cobra"
)

var chunksSplit string
var chunkSize int
var chunkOverlap int

var chunksCmd = &cobra.Command{
	Use:   "chunks NAME",
	Short: "Write token-budgeted chunks of a split as JSON lines",
	Long: `Split every document of a split into chunks of roughly --size tokens that
never cross a section heading, one JSON object per line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paragraphs, err := store.LoadSplit(cmd.Context(), args[0], chunksSplit)
		if err != nil {
			return err
		}

		ccfg := chunker.DefaultConfig()
		ccfg.ChunkSize = cfg.DefaultChunkSize
		ccfg.ChunkOverlap = cfg.DefaultChunkOverlap
		if cmd.Flags().Changed("size") {
			ccfg.ChunkSize = chunkSize
		}
		if cmd.Flags().Changed("overlap") {
			ccfg.ChunkOverlap = chunkOverlap
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, c := range chunker.ChunkDocuments(wikitext.Documents(paragraphs), ccfg) {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	chunksCmd.Flags().StringVarP(&chunksSplit, "split", "s", "train", "Split to chunk (train, valid, test)")
	chunksCmd.Flags().IntVar(&chunkSize, "size", 0, "Target chunk size in tokens (default from config)")
	chunksCmd.Flags().IntVar(&chunkOverlap, "overlap", 0, "Overlap between chunks in tokens (default from config)")
	rootCmd.AddCommand(chunksCmd)
}
