package doctree

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var titleParser = goldmark.New().Parser()

// PlainTitle strips inline Markdown (emphasis, code spans, links, closing
// hashes) from header text. The text is parsed as an ATX heading so list or
// quote markers at its start stay literal.
func PlainTitle(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	src := []byte("# " + raw)
	doc := titleParser.Parse(text.NewReader(src))

	var buf strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})

	out := strings.Join(strings.Fields(buf.String()), " ")
	if out == "" {
		return raw
	}
	return out
}
