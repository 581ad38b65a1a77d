package chunker

import (
	"strings"

	"github.com/dgallion1/wikitext/internal/wikitext"
)

// Config controls chunking behavior. Sizes are in estimated tokens.
type Config struct {
	ChunkSize    int // Target chunk size.
	ChunkOverlap int // Trailing lines carried into the next chunk of a section.
	MinChunk     int // Smaller chunks are dropped.
}

func DefaultConfig() Config {
	return Config{
		ChunkSize:    512,
		ChunkOverlap: 64,
		MinChunk:     16,
	}
}

// Chunk is a sized run of content lines from one section of one document.
type Chunk struct {
	Index      int      `json:"index"`
	DocIndex   int      `json:"doc_idx"`
	Breadcrumb []string `json:"breadcrumb"` // Heading path, e.g. ["Valkyria Chronicles III", "Gameplay"]
	Text       string   `json:"text"`
	Tokens     int      `json:"tokens"`
}

// ChunkDocuments splits each document into chunks that never cross a section
// boundary. A line longer than ChunkSize becomes a chunk of its own.
func ChunkDocuments(docs []wikitext.Document, cfg Config) []Chunk {
	def := DefaultConfig()
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = 0
	}
	if cfg.MinChunk <= 0 {
		cfg.MinChunk = def.MinChunk
	}

	var chunks []Chunk
	for _, doc := range docs {
		var headings []string // headings[d-1] is the open heading at depth d
		var section []string
		var crumb []string

		for i, p := range doc.Paragraphs {
			headings = openHeading(headings, p.Depth, p.Title)
			if i > 0 && !sameSection(doc.Paragraphs[i-1], p) {
				chunks = splitSection(chunks, doc.Index, crumb, section, cfg)
				section = nil
			}
			crumb = compact(headings)
			section = append(section, p.Texts...)
		}
		chunks = splitSection(chunks, doc.Index, crumb, section, cfg)
	}
	return chunks
}

func sameSection(a, b wikitext.Paragraph) bool {
	return a.Title == b.Title && a.Depth == b.Depth
}

// openHeading records title at depth and closes every deeper heading.
func openHeading(headings []string, depth int, title string) []string {
	depth = max(depth, 1)
	for len(headings) < depth {
		headings = append(headings, "")
	}
	headings = headings[:depth]
	headings[depth-1] = title
	return headings
}

// compact copies the heading path, skipping levels the file jumped over.
func compact(headings []string) []string {
	out := make([]string, 0, len(headings))
	for _, h := range headings {
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}

func splitSection(chunks []Chunk, docIdx int, crumb, lines []string, cfg Config) []Chunk {
	var (
		current []string
		tokens  int
		fresh   int // lines in current that were not carried over as overlap
	)

	emit := func() {
		if fresh > 0 && tokens >= cfg.MinChunk {
			chunks = append(chunks, Chunk{
				Index:      len(chunks),
				DocIndex:   docIdx,
				Breadcrumb: crumb,
				Text:       strings.Join(current, "\n"),
				Tokens:     tokens,
			})
		}
		current, tokens = overlapTail(current, cfg.ChunkOverlap)
		fresh = 0
	}

	for _, line := range lines {
		n := EstimateTokens(line)
		if fresh > 0 && tokens+n > cfg.ChunkSize {
			emit()
		}
		if tokens+n > cfg.ChunkSize {
			// Drop overlap that would push a fresh line over budget.
			current, tokens = nil, 0
		}
		current = append(current, line)
		tokens += n
		fresh++
	}
	if fresh > 0 {
		emit()
	}
	return chunks
}

// overlapTail returns the longest run of trailing lines within budget tokens.
func overlapTail(lines []string, budget int) ([]string, int) {
	tokens, start := 0, len(lines)
	for start > 0 {
		n := EstimateTokens(lines[start-1])
		if tokens+n > budget {
			break
		}
		tokens += n
		start--
	}
	if start == len(lines) {
		return nil, 0
	}
	return append([]string(nil), lines[start:]...), tokens
}
