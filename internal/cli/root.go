package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/wikitext/internal/config"
	"github.com/dgallion1/wikitext/internal/corpus"
	"github.com/dgallion1/wikitext/internal/download"
	"github.com/spf13/cobra"
)

var rootFlag string
var quiet bool

// Loaded in PersistentPreRunE for every subcommand.
var (
	cfg   config.Config
	log   *slog.Logger
	store *corpus.Store
)

var rootCmd = &cobra.Command{
	Use:   "wikitext",
	Short: "Download and parse the WikiText language modeling corpora",
	Long: `wikitext fetches the wikitext-2 and wikitext-103 archives, extracts them,
and parses the token files into titled paragraphs.

Data lives under <root>/data; set the root with --root, WIKITEXT_ROOT or the
config file at $XDG_CONFIG_HOME/wikitext/config.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if rootFlag != "" {
			cfg.Root = rootFlag
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))

		dl := download.NewClient(cfg.UserAgent, cfg.DownloadTimeout, log)
		if !quiet {
			dl.OnProgress(styledProgress(cmd.ErrOrStderr()))
		}
		store = corpus.NewStore(cfg.Root, dl, log,
			corpus.WithMirror(cfg.MirrorURL),
			corpus.WithNotice(cmd.ErrOrStderr()),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Installation root (overrides WIKITEXT_ROOT)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Hide the download progress bar")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func logLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
