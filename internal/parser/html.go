package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLParser converts HTML files to Markdown. Headings, paragraphs, lists,
// preformatted blocks and tables are kept; navigation chrome is dropped.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Source, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	src := &Source{
		Title:    titleFromFilename(filename),
		Filename: filename,
	}

	// Extract title from <title> tag if present.
	if title := findTitle(doc); title != "" {
		src.Title = title
	}

	var blocks []string
	add := func(b string) {
		if b != "" {
			blocks = append(blocks, b)
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				if t := textContent(n); t != "" {
					add(heading(level, t))
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header", "noscript", "template":
				return
			case "p", "blockquote":
				add(textContent(n))
				return
			case "pre":
				add(codeBlock(n))
				return
			case "ul", "ol":
				var lines []string
				listLines(n, 0, &lines)
				add(strings.Join(lines, "\n"))
				return
			case "table":
				add(tableBlock(n))
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	if len(blocks) > 0 {
		src.Markdown = strings.Join(blocks, "\n\n") + "\n"
	}
	return src, nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// textContent returns the node's text with runs of whitespace collapsed.
func textContent(n *html.Node) string {
	return strings.Join(strings.Fields(rawText(n, false)), " ")
}

// rawText concatenates text nodes below n. With skipLists set, nested
// ul and ol subtrees are left out.
func rawText(n *html.Node, skipLists bool) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if skipLists && c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
				continue
			}
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func codeBlock(n *html.Node) string {
	body := strings.TrimRight(rawText(n, false), "\n ")
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return "```\n" + body + "\n```"
}

// listLines renders list items, indenting nested lists two spaces per level.
func listLines(n *html.Node, depth int, lines *[]string) {
	ordered := n.Data == "ol"
	num := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		num++
		marker := "-"
		if ordered {
			marker = fmt.Sprintf("%d.", num)
		}
		text := strings.Join(strings.Fields(rawText(c, true)), " ")
		*lines = append(*lines, strings.Repeat("  ", depth)+marker+" "+text)

		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			if gc.Type == html.ElementNode && (gc.Data == "ul" || gc.Data == "ol") {
				listLines(gc, depth+1, lines)
			}
		}
	}
}

// tableBlock renders a table as a pipe table whose first row is the header.
func tableBlock(n *html.Node) string {
	var rows [][]string
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				var cells []string
				for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
					if cell.Type == html.ElementNode && (cell.Data == "td" || cell.Data == "th") {
						cells = append(cells, textContent(cell))
					}
				}
				rows = append(rows, cells)
			default:
				collect(c)
			}
		}
	}
	collect(n)

	if len(rows) == 0 {
		return ""
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(tableRow(rows[0], width))
	sb.WriteString(tableRow(separatorRow(width), width))
	for _, row := range rows[1:] {
		sb.WriteString(tableRow(row, width))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
