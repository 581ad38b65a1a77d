package wikitext

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// maxLineBytes bounds a single line; wikitext-103 has lines well over 64KB.
const maxLineBytes = 16 * 1024 * 1024

// ParseFile opens path and parses it. Errors are returned to the caller as-is
// apart from wrapping.
func ParseFile(path string) ([]Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	paragraphs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return paragraphs, nil
}

// Parse scans wikitext token lines and groups them into paragraphs.
//
// A trimmed line starting with "= " is a heading whose depth is half the
// number of '=' characters. Depth-1 headings start a new document. Content
// lines accumulate under the current heading until a blank line or the next
// heading; a paragraph is only emitted once it has a title and at least one line.
func Parse(r io.Reader) ([]Paragraph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		paragraphs []Paragraph
		docIdx     = -1
		depth      int
		title      string
		texts      []string
	)

	// flush emits the pending paragraph and resets the line buffer. Title and
	// depth carry over to the paragraphs that follow under the same heading.
	flush := func() {
		if title != "" && len(texts) > 0 {
			paragraphs = append(paragraphs, Paragraph{
				DocIndex: max(docIdx, 0),
				Index:    len(paragraphs),
				Title:    title,
				Depth:    depth,
				Texts:    texts,
			})
		}
		texts = nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("line %d: invalid UTF-8", lineNo)
		}
		line := strings.TrimSpace(string(raw))

		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "= "):
			flush()
			depth = headingDepth(line)
			title = headingTitle(line)
			if depth == 1 {
				docIdx++
			}
		default:
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return paragraphs, nil
}

// headingDepth counts the '=' markers on both sides of the title.
func headingDepth(line string) int {
	isMarker := func(r rune) bool { return r == '=' || r == ' ' }
	title := strings.TrimFunc(line, isMarker)
	if title == "" {
		return strings.Count(line, "=") / 2
	}
	start := strings.Index(line, title)
	left := strings.Count(line[:start], "=")
	right := strings.Count(line[start+len(title):], "=")
	return (left + right) / 2
}

func headingTitle(line string) string {
	return strings.TrimSpace(strings.Trim(line, "= "))
}
