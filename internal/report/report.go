// Package report renders a structural index for people and for machines.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/mdstruct/internal/structure"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by Write for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown report format")

// Formats lists the names accepted by Write.
var Formats = []string{"text", "json", "yaml"}

// Write renders idx in the named format.
func Write(w io.Writer, idx structure.Index, name, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		return Text(w, idx, name)
	case "json":
		return JSON(w, idx)
	case "yaml", "yml":
		return YAML(w, idx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// JSON writes idx as indented JSON. Non-ASCII text is written as-is.
func JSON(w io.Writer, idx structure.Index) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(idx)
}

// YAML writes idx as a YAML document.
func YAML(w io.Writer, idx structure.Index) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(idx); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

const rule = "============================================================"

// Text writes a human-readable report: totals, the header outline and the
// positions of every code block, table and list.
func Text(w io.Writer, idx structure.Index, name string) error {
	p := &printer{w: w}

	p.printf("\n%s\n", rule)
	p.printf("Document structure: %s\n", name)
	p.printf("%s\n\n", rule)

	p.printf("Total lines: %d\n\n", idx.TotalLines)

	p.printf("Headers: %d\n", len(idx.Headers))
	if len(idx.Headers) > 0 {
		p.printf("\nOutline:\n")
		for _, h := range idx.Headers {
			indent := strings.Repeat("  ", h.Level-1)
			p.printf("  %sL%d [%4d] %s\n", indent, h.Level, h.Line, h.Text)
		}
	}
	p.printf("\n")

	p.spans("Code blocks", idx.CodeBlocks)
	p.spans("Tables", idx.Tables)

	p.printf("Lists: %d\n", len(idx.Lists))
	if len(idx.Lists) > 0 {
		p.printf("\nPositions:\n")
		for i, l := range idx.Lists {
			p.printf("  [%d] lines %d - %d (%d items)\n", i+1, l.Start, l.End, len(l.Items))
		}
	}
	p.printf("\n")

	counts := idx.HeaderCounts()
	p.printf("%s\n", rule)
	p.printf("Overview:\n")
	p.printf("%s\n", rule)
	for level := 1; level <= 3; level++ {
		p.printf("  - H%d headers: %d\n", level, counts[level])
	}
	p.printf("  - Code blocks: %d\n", len(idx.CodeBlocks))
	p.printf("  - Tables: %d\n", len(idx.Tables))
	p.printf("  - Lists: %d\n", len(idx.Lists))
	p.printf("  - Paragraphs: %d\n", len(idx.Paragraphs))
	p.printf("%s\n\n", rule)

	return p.err
}

// printer keeps the first write error so report code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) spans(title string, spans []structure.Span) {
	p.printf("%s: %d\n", title, len(spans))
	if len(spans) > 0 {
		p.printf("\nPositions:\n")
		for i, s := range spans {
			p.printf("  [%d] lines %d - %d (%d lines)\n", i+1, s.Start, s.End, s.Len())
		}
	}
	p.printf("\n")
}
