package corpus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/wikitext/internal/archive"
	"github.com/dgallion1/wikitext/internal/dataset"
	"github.com/dgallion1/wikitext/internal/wikitext"
)

// Downloader fetches a URL to a local path and reports success.
type Downloader interface {
	Fetch(ctx context.Context, url, dest string) bool
}

// Store manages datasets installed under a root directory.
type Store struct {
	root      string
	mirrorURL string
	dl        Downloader
	notice    io.Writer
	log       *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithMirror replaces the archive host: archives are fetched from
// <mirror>/<name>-v1.zip.
func WithMirror(base string) Option {
	return func(s *Store) { s.mirrorURL = strings.TrimRight(base, "/") }
}

// WithNotice sets where the license notice is written. Defaults to stdout.
func WithNotice(w io.Writer) Option {
	return func(s *Store) { s.notice = w }
}

func NewStore(root string, dl Downloader, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		root:   root,
		dl:     dl,
		notice: os.Stdout,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the installation root.
func (s *Store) Root() string {
	return s.root
}

// lookup validates name and prints the license notice.
func (s *Store) lookup(name string) (dataset.Dataset, error) {
	ds, err := dataset.Lookup(name)
	if err != nil {
		return ds, err
	}
	fmt.Fprint(s.notice, dataset.License+"\n")
	return ds, nil
}

func (s *Store) archiveURL(ds dataset.Dataset) string {
	if s.mirrorURL != "" {
		return s.mirrorURL + "/" + ds.ArchiveName()
	}
	return ds.URL
}

// Installed reports whether all three split files of name are on disk.
func (s *Store) Installed(name string) bool {
	ds, err := dataset.Lookup(name)
	if err != nil {
		return false
	}
	return allExist(ds.PathsUnder(s.root).All())
}

// Fetch makes sure the split files of name are on disk, downloading and
// extracting the archive when they are not. The only error it returns is for
// an unknown name; download and extraction failures are logged and surface
// later as missing files.
func (s *Store) Fetch(ctx context.Context, name string) (dataset.Paths, error) {
	ds, err := s.lookup(name)
	if err != nil {
		return dataset.Paths{}, err
	}
	paths := ds.PathsUnder(s.root)

	if allExist(paths.All()) {
		return paths, nil
	}

	s.log.Info("dataset not installed", "dataset", ds.Name, "root", s.root)
	if !exists(paths.Archive) {
		url := s.archiveURL(ds)
		s.log.Info("downloading archive", "dataset", ds.Name, "url", url)
		if !s.dl.Fetch(ctx, url, paths.Archive) {
			s.log.Warn("archive download failed", "dataset", ds.Name)
		}
	}
	if exists(paths.Archive) {
		s.log.Info("extracting archive", "dataset", ds.Name, "archive", paths.Archive)
		if !archive.Unzip(paths.Archive, paths.DataDir, s.log) {
			s.log.Warn("archive extraction failed", "dataset", ds.Name)
		}
	}

	return paths, nil
}

// Load fetches name and parses all three splits.
func (s *Store) Load(ctx context.Context, name string) (map[dataset.Split][]wikitext.Paragraph, error) {
	paths, err := s.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	out := make(map[dataset.Split][]wikitext.Paragraph, len(dataset.Splits))
	for _, sp := range dataset.Splits {
		paragraphs, err := wikitext.ParseFile(paths.Split(sp))
		if err != nil {
			return nil, fmt.Errorf("load %s %s: %w", name, sp, err)
		}
		out[sp] = paragraphs
	}
	return out, nil
}

// LoadSplit fetches name and parses one split. The split is validated before
// any I/O happens.
func (s *Store) LoadSplit(ctx context.Context, name, split string) ([]wikitext.Paragraph, error) {
	if _, err := dataset.Lookup(name); err != nil {
		return nil, err
	}
	sp, err := dataset.ParseSplit(split)
	if err != nil {
		return nil, err
	}

	paths, err := s.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	paragraphs, err := wikitext.ParseFile(paths.Split(sp))
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", name, sp, err)
	}
	return paragraphs, nil
}

func allExist(paths []string) bool {
	for _, p := range paths {
		if !exists(p) {
			return false
		}
	}
	return true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
