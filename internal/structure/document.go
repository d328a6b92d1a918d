package structure

import (
	"sort"
	"strings"
)

// Blocks returns every header and span of the document ordered by start
// line. A code block left open at end of input is included with
// Unterminated set and runs to the last line.
func (d *Document) Blocks() []Block {
	idx := d.Index
	blocks := make([]Block, 0, len(idx.Headers)+len(idx.CodeBlocks)+len(idx.Tables)+len(idx.Lists)+len(idx.Paragraphs)+1)

	for _, h := range idx.Headers {
		blocks = append(blocks, Block{Kind: KindHeader, Start: h.Line, End: h.Line, Level: h.Level})
	}
	for _, s := range idx.CodeBlocks {
		blocks = append(blocks, Block{Kind: KindCodeBlock, Start: s.Start, End: s.End})
	}
	for _, s := range idx.Tables {
		blocks = append(blocks, Block{Kind: KindTable, Start: s.Start, End: s.End})
	}
	for _, l := range idx.Lists {
		blocks = append(blocks, Block{Kind: KindList, Start: l.Start, End: l.End})
	}
	for _, s := range idx.Paragraphs {
		blocks = append(blocks, Block{Kind: KindParagraph, Start: s.Start, End: s.End})
	}
	if d.unclosedCode >= 0 {
		blocks = append(blocks, Block{
			Kind:         KindCodeBlock,
			Start:        d.unclosedCode,
			End:          len(d.Lines) - 1,
			Unterminated: true,
		})
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Start < blocks[j].Start })
	return blocks
}

// Text joins the lines of the inclusive range [start, end]. Out-of-range
// bounds are clamped.
func (d *Document) Text(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end >= len(d.Lines) {
		end = len(d.Lines) - 1
	}
	if start > end {
		return ""
	}
	return strings.Join(d.Lines[start:end+1], "\n")
}

// HeaderAt returns the header on the given line, if any.
func (d *Document) HeaderAt(line int) (Header, bool) {
	i := sort.Search(len(d.Index.Headers), func(i int) bool { return d.Index.Headers[i].Line >= line })
	if i < len(d.Index.Headers) && d.Index.Headers[i].Line == line {
		return d.Index.Headers[i], true
	}
	return Header{}, false
}
