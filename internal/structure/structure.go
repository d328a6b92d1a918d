// Package structure scans Markdown text into a line-indexed structural index:
// headers, fenced code blocks, tables, lists and paragraphs.
package structure

// Header is a single ATX header occurrence.
type Header struct {
	Line  int    `json:"line" yaml:"line"`
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// Span is an inclusive, 0-based line range.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of lines covered by the span.
func (s Span) Len() int { return s.End - s.Start + 1 }

// ListSpan is a list block. Items holds the lines that matched the list-item
// pattern; continuation lines extend the span but are not items.
type ListSpan struct {
	Start int   `json:"start" yaml:"start"`
	Items []int `json:"items" yaml:"items"`
	End   int   `json:"end" yaml:"end"`
}

// Index is the structural index of one document.
type Index struct {
	Headers    []Header   `json:"headers" yaml:"headers"`
	CodeBlocks []Span     `json:"code_blocks" yaml:"code_blocks"`
	Tables     []Span     `json:"tables" yaml:"tables"`
	Lists      []ListSpan `json:"lists" yaml:"lists"`
	Paragraphs []Span     `json:"paragraphs" yaml:"paragraphs"`
	TotalLines int        `json:"total_lines" yaml:"total_lines"`
}

func newIndex(totalLines int) Index {
	return Index{
		Headers:    []Header{},
		CodeBlocks: []Span{},
		Tables:     []Span{},
		Lists:      []ListSpan{},
		Paragraphs: []Span{},
		TotalLines: totalLines,
	}
}

// HeaderCounts returns the number of headers per level.
func (idx Index) HeaderCounts() map[int]int {
	counts := make(map[int]int, 6)
	for _, h := range idx.Headers {
		counts[h.Level]++
	}
	return counts
}

// Kind identifies which structure owns a line.
type Kind uint8

const (
	KindNone Kind = iota
	KindFrontMatter
	KindHeader
	KindCodeBlock
	KindTable
	KindList
	KindParagraph
)

var kindNames = [...]string{
	KindNone:        "none",
	KindFrontMatter: "front_matter",
	KindHeader:      "header",
	KindCodeBlock:   "code_block",
	KindTable:       "table",
	KindList:        "list",
	KindParagraph:   "paragraph",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Block is one structure occurrence in document order. Headers are blocks
// with Start == End.
type Block struct {
	Kind  Kind `json:"kind"`
	Start int  `json:"start"`
	End   int  `json:"end"`
	// Level is set for headers only.
	Level int `json:"level,omitempty"`
	// Unterminated marks a code block whose closing fence never appeared.
	// Such blocks are not part of Index.CodeBlocks.
	Unterminated bool `json:"unterminated,omitempty"`
}
