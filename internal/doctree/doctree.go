package doctree

// DocTree is the section outline of a scanned document.
type DocTree struct {
	Title      string         `json:"title"`          // Document title (from metadata or filename)
	Meta       map[string]any `json:"meta,omitempty"` // Front matter metadata, if any
	TotalLines int            `json:"total_lines"`    // Line count of the scanned text
	Children   []*DocNode     `json:"children"`       // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title     string     `json:"title"`              // Plain header text (empty for leading body text)
	Level     int        `json:"level"`              // Header level, 0 for leading body text
	Line      int        `json:"line"`               // Header line, -1 for leading body text
	StartLine int        `json:"start_line"`         // First line of the section
	EndLine   int        `json:"end_line"`           // Last line of the section, including subsections
	Text      string     `json:"text,omitempty"`     // Body text up to the next header
	Children  []*DocNode `json:"children,omitempty"` // Subsections
}

// Chunk is a sized text segment with structural context.
type Chunk struct {
	Text       string   `json:"text"`       // Chunk text content
	Index      int      `json:"index"`      // Sequence number within document
	Breadcrumb []string `json:"breadcrumb"` // Heading hierarchy, e.g. ["Install", "Linux", "Debian"]
	StartLine  int      `json:"start_line"` // 0-based, inclusive
	EndLine    int      `json:"end_line"`   // 0-based, inclusive
	Tokens     int      `json:"tokens"`     // Estimated token count
}
