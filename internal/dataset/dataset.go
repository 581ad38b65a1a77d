package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidArgument is returned for unknown dataset names and split identifiers.
var ErrInvalidArgument = errors.New("invalid argument")

// Dataset describes one downloadable WikiText corpus.
type Dataset struct {
	Name string
	URL  string
}

// Split is one of the three partitions shipped in every archive.
type Split string

const (
	Train Split = "train"
	Valid Split = "valid"
	Test  Split = "test"
)

// Splits lists the partitions in archive order.
var Splits = []Split{Train, Valid, Test}

var available = map[string]Dataset{
	"wikitext-2": {
		Name: "wikitext-2",
		URL:  "https://s3.amazonaws.com/research.metamind.io/wikitext/wikitext-2-v1.zip",
	},
	"wikitext-103": {
		Name: "wikitext-103",
		URL:  "https://s3.amazonaws.com/research.metamind.io/wikitext/wikitext-103-v1.zip",
	},
}

// Names returns the known dataset names, sorted.
func Names() []string {
	names := make([]string, 0, len(available))
	for name := range available {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the descriptor for name.
func Lookup(name string) (Dataset, error) {
	ds, ok := available[name]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: unknown dataset %q, available: %s",
			ErrInvalidArgument, name, strings.Join(Names(), ", "))
	}
	return ds, nil
}

// ParseSplit validates a split identifier.
func ParseSplit(s string) (Split, error) {
	for _, sp := range Splits {
		if string(sp) == s {
			return sp, nil
		}
	}
	return "", fmt.Errorf("%w: unknown split %q, available: train, valid, test", ErrInvalidArgument, s)
}

// ArchiveName is the file name of the downloaded zip.
func (d Dataset) ArchiveName() string {
	return d.Name + "-v1.zip"
}

// Paths are the local locations of a dataset relative to an installation root.
type Paths struct {
	DataDir string // <root>/data, the extraction target
	Archive string
	Train   string
	Valid   string
	Test    string
}

// PathsUnder resolves the on-disk layout of d under root.
func (d Dataset) PathsUnder(root string) Paths {
	dataDir := filepath.Join(root, "data")
	tokens := func(sp Split) string {
		return filepath.Join(dataDir, d.Name, "wiki."+string(sp)+".tokens")
	}
	return Paths{
		DataDir: dataDir,
		Archive: filepath.Join(dataDir, d.ArchiveName()),
		Train:   tokens(Train),
		Valid:   tokens(Valid),
		Test:    tokens(Test),
	}
}

// Split returns the token file for sp.
func (p Paths) Split(sp Split) string {
	switch sp {
	case Train:
		return p.Train
	case Valid:
		return p.Valid
	case Test:
		return p.Test
	}
	return ""
}

// All returns the three token files in train, valid, test order.
func (p Paths) All() []string {
	return []string{p.Train, p.Valid, p.Test}
}
