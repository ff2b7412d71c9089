package models

// Document is the text of a single PDF page. Source is the uploaded
// filename and Page is 1-based.
type Document struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Page   int    `json:"page"`
}

// DocumentChunk is an overlapping segment of a Document, the unit of
// embedding and retrieval. Source and Page are inherited from the
// originating document; chunks are never mutated after creation.
type DocumentChunk struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Source string `json:"source"`
	Page   int    `json:"page"`
	Index  int    `json:"index"`
}
