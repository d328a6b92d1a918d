package structure

import (
	"regexp"
	"strings"
)

const (
	codeFence         = "```"
	frontMatterMarker = "---"
)

var (
	headerPattern   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	tablePattern    = regexp.MustCompile(`^\|.+\|`)
	listItemPattern = regexp.MustCompile(`^\s*[-*+]\s+|^\s*\d+\.\s+`)
)

// Document is the result of a single scan: the split lines, the structural
// index and the owner of every line.
type Document struct {
	Lines []string
	Index Index
	Kinds []Kind

	// Start of a code block still open at end of input, or -1.
	unclosedCode int
}

// Analyze scans content and returns its structural index. It never fails;
// malformed Markdown degrades to paragraphs.
func Analyze(content string) Index {
	return Scan(content).Index
}

// Scan splits content on '\n' (carriage returns are kept) and classifies
// every line in one pass. Lines are claimed in priority order: front matter,
// code block interior, header, code fence, table, list, paragraph.
func Scan(content string) *Document {
	lines := strings.Split(content, "\n")
	s := &scanner{
		doc: &Document{
			Lines:        lines,
			Index:        newIndex(len(lines)),
			Kinds:        make([]Kind, len(lines)),
			unclosedCode: -1,
		},
	}
	for i, line := range lines {
		s.scanLine(i, line)
	}
	s.finish(len(lines) - 1)
	return s.doc
}

type scanner struct {
	doc *Document

	inFrontMatter bool
	inCode        bool
	codeStart     int
	inTable       bool
	tableStart    int
	list          *ListSpan
	paragraph     *Span
}

func (s *scanner) scanLine(i int, line string) {
	trimmed := strings.TrimSpace(line)

	if !s.inCode && trimmed == frontMatterMarker {
		if !s.inFrontMatter {
			s.closeOpen(i - 1)
		}
		s.inFrontMatter = !s.inFrontMatter
		s.claim(i, KindFrontMatter)
		return
	}
	if s.inFrontMatter {
		s.claim(i, KindFrontMatter)
		return
	}

	if s.inCode {
		s.claim(i, KindCodeBlock)
		if strings.HasPrefix(trimmed, codeFence) {
			s.doc.Index.CodeBlocks = append(s.doc.Index.CodeBlocks, Span{Start: s.codeStart, End: i})
			s.inCode = false
		}
		return
	}

	if m := headerPattern.FindStringSubmatch(line); m != nil {
		s.closeOpen(i - 1)
		s.doc.Index.Headers = append(s.doc.Index.Headers, Header{
			Line:  i,
			Level: len(m[1]),
			Text:  strings.TrimSpace(m[2]),
		})
		s.claim(i, KindHeader)
		return
	}

	if strings.HasPrefix(trimmed, codeFence) {
		s.closeOpen(i - 1)
		s.inCode = true
		s.codeStart = i
		s.claim(i, KindCodeBlock)
		return
	}

	if tablePattern.MatchString(line) {
		if !s.inTable {
			s.closeParagraph()
			s.closeList(i - 1)
			s.inTable = true
			s.tableStart = i
		}
		s.claim(i, KindTable)
		return
	}
	if s.inTable {
		if trimmed == "" {
			s.closeTable(i - 1)
			return
		}
		s.claim(i, KindTable)
		return
	}

	if listItemPattern.MatchString(line) {
		if s.list == nil {
			s.closeParagraph()
			s.list = &ListSpan{Start: i, Items: []int{}}
		}
		s.list.Items = append(s.list.Items, i)
		s.claim(i, KindList)
		return
	}
	if s.list != nil {
		if indented(line) {
			s.claim(i, KindList)
			return
		}
		s.closeList(i - 1)
	}

	if trimmed == "" {
		s.closeParagraph()
		return
	}
	if s.paragraph == nil {
		s.paragraph = &Span{Start: i, End: i}
	} else {
		s.paragraph.End = i
	}
	s.claim(i, KindParagraph)
}

// finish closes whatever end of input left open. An unterminated code block
// is not recorded in the index.
func (s *scanner) finish(last int) {
	if s.inCode {
		s.doc.unclosedCode = s.codeStart
	}
	s.closeOpen(last)
}

func (s *scanner) claim(i int, k Kind) {
	s.doc.Kinds[i] = k
}

// closeOpen closes any open table, list and paragraph so that the next
// structure owns its lines exclusively.
func (s *scanner) closeOpen(end int) {
	s.closeParagraph()
	s.closeTable(end)
	s.closeList(end)
}

func (s *scanner) closeParagraph() {
	if s.paragraph == nil {
		return
	}
	s.doc.Index.Paragraphs = append(s.doc.Index.Paragraphs, *s.paragraph)
	s.paragraph = nil
}

func (s *scanner) closeTable(end int) {
	if !s.inTable {
		return
	}
	s.doc.Index.Tables = append(s.doc.Index.Tables, Span{Start: s.tableStart, End: end})
	s.inTable = false
}

func (s *scanner) closeList(end int) {
	if s.list == nil {
		return
	}
	s.list.End = end
	s.doc.Index.Lists = append(s.doc.Index.Lists, *s.list)
	s.list = nil
}

func indented(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}
