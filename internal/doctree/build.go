package doctree

import (
	"strings"

	"github.com/dgallion1/mdstruct/internal/structure"
)

// Build nests the document's headers into a section tree. A section runs
// from its header to the line before the next header of the same or a
// higher level. Text before the first header becomes an untitled node.
func Build(doc *structure.Document, title string) *DocTree {
	tree := &DocTree{
		Title:      title,
		TotalLines: doc.Index.TotalLines,
	}
	last := len(doc.Lines) - 1
	headers := doc.Index.Headers

	firstHeader := len(doc.Lines)
	if len(headers) > 0 {
		firstHeader = headers[0].Line
	}
	if body := bodyText(doc, 0, firstHeader-1); body != "" {
		tree.Children = append(tree.Children, &DocNode{
			Line:      -1,
			StartLine: 0,
			EndLine:   firstHeader - 1,
			Text:      body,
		})
	}

	// Stack of open sections; root is level 0 so every header nests under it.
	type stackEntry struct {
		node  *DocNode
		level int
	}
	root := &DocNode{}
	stack := []stackEntry{{node: root, level: 0}}

	for i, h := range headers {
		next := last + 1
		if i+1 < len(headers) {
			next = headers[i+1].Line
		}
		node := &DocNode{
			Title:     PlainTitle(h.Text),
			Level:     h.Level,
			Line:      h.Line,
			StartLine: h.Line,
			EndLine:   sectionEnd(headers, i, last),
			Text:      bodyText(doc, h.Line+1, next-1),
		}

		for len(stack) > 1 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, node)
		stack = append(stack, stackEntry{node: node, level: h.Level})
	}

	tree.Children = append(tree.Children, root.Children...)
	return tree
}

// Walk visits every node depth-first, passing the titles of its ancestors.
func (t *DocTree) Walk(fn func(node *DocNode, path []string)) {
	var walk func(nodes []*DocNode, path []string)
	walk = func(nodes []*DocNode, path []string) {
		for _, n := range nodes {
			fn(n, path)
			if len(n.Children) > 0 {
				walk(n.Children, append(path[:len(path):len(path)], n.Title))
			}
		}
	}
	walk(t.Children, nil)
}

func sectionEnd(headers []structure.Header, i, last int) int {
	for _, h := range headers[i+1:] {
		if h.Level <= headers[i].Level {
			return h.Line - 1
		}
	}
	return last
}

// bodyText joins the non-front-matter lines of [start, end], trimmed.
func bodyText(doc *structure.Document, start, end int) string {
	if start > end {
		return ""
	}
	var lines []string
	for i := start; i <= end && i < len(doc.Lines); i++ {
		if doc.Kinds[i] == structure.KindFrontMatter {
			continue
		}
		lines = append(lines, strings.TrimRight(doc.Lines[i], "\r"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
