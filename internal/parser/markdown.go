package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// MarkdownParser passes Markdown through unchanged and decodes its YAML
// front matter, if any. The scanner skips front matter lines itself, so the
// body is not stripped.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Source, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &Source{
		Title:    titleFromFilename(filename),
		Filename: filename,
		Markdown: string(src),
	}

	if meta := parseFrontMatter(src); len(meta) > 0 {
		doc.Meta = meta
		if title, ok := meta["title"].(string); ok && strings.TrimSpace(title) != "" {
			doc.Title = strings.TrimSpace(title)
		}
	}

	return doc, nil
}

// yaml.v3 decodes nested mappings as map[string]any, which stays JSON
// encodable.
var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// parseFrontMatter returns nil when there is no front matter or it does not
// decode; a bad header never fails the document.
func parseFrontMatter(src []byte) map[string]any {
	var meta map[string]any
	if _, err := frontmatter.Parse(bytes.NewReader(src), &meta, yamlFrontMatter); err != nil {
		return nil
	}
	return meta
}
