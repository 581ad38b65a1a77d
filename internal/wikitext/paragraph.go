package wikitext

// Paragraph is a titled group of content lines from a token file.
type Paragraph struct {
	DocIndex int      `json:"doc_idx"`       // Incremented at each top-level heading
	Index    int      `json:"paragraph_idx"` // Sequence number within the file
	Title    string   `json:"title"`
	Depth    int      `json:"depth"` // Depth of the heading that titled this paragraph
	Texts    []string `json:"texts"`
}

// Document is a run of paragraphs that share a DocIndex.
type Document struct {
	Index      int         `json:"doc_idx"`
	Title      string      `json:"title"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Sentences flattens paragraphs into their content lines, in order.
func Sentences(paragraphs []Paragraph) []string {
	sents := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		sents = append(sents, p.Texts...)
	}
	return sents
}

// Documents groups paragraphs by DocIndex. The document title is the title of
// its first paragraph.
func Documents(paragraphs []Paragraph) []Document {
	var docs []Document
	for _, p := range paragraphs {
		if n := len(docs); n == 0 || docs[n-1].Index != p.DocIndex {
			docs = append(docs, Document{Index: p.DocIndex, Title: p.Title})
		}
		last := &docs[len(docs)-1]
		last.Paragraphs = append(last.Paragraphs, p)
	}
	return docs
}
