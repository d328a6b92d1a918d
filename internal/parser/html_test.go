package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_ConvertsStructure(t *testing.T) {
	input := `<html><head><title>Doc Title</title></head><body>
<nav><a href="/">Home</a></nav>
<h1>Main</h1>
<p>Hello <b>world</b>.</p>
<ul><li>one</li><li>two<ul><li>nested</li></ul></li></ul>
<ol><li>first</li><li>second</li></ol>
<pre>x := 1
y := 2</pre>
<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>
<script>bad()</script>
</body></html>`

	p := &HTMLParser{}
	src, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.Title != "Doc Title" {
		t.Errorf("expected title %q, got %q", "Doc Title", src.Title)
	}
	want := "# Main\n\n" +
		"Hello world.\n\n" +
		"- one\n- two\n  - nested\n\n" +
		"1. first\n2. second\n\n" +
		"```\nx := 1\ny := 2\n```\n\n" +
		"| a | b |\n| --- | --- |\n| 1 | 2 |\n"
	if src.Markdown != want {
		t.Errorf("unexpected markdown:\nwant %q\ngot  %q", want, src.Markdown)
	}
	if strings.Contains(src.Markdown, "Home") || strings.Contains(src.Markdown, "bad()") {
		t.Errorf("expected nav and script content dropped, got %q", src.Markdown)
	}
}

func TestHTMLParser_TitleFallsBackToFilename(t *testing.T) {
	p := &HTMLParser{}
	src, err := p.Parse(strings.NewReader("<p>just text</p>"), "dir/index.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Title != "index" {
		t.Errorf("expected title %q, got %q", "index", src.Title)
	}
	if src.Markdown != "just text\n" {
		t.Errorf("expected %q, got %q", "just text\n", src.Markdown)
	}
}

func TestHTMLParser_EmptyDocument(t *testing.T) {
	p := &HTMLParser{}
	src, err := p.Parse(strings.NewReader(""), "empty.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Markdown != "" {
		t.Errorf("expected empty markdown, got %q", src.Markdown)
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := map[string]int{"h1": 1, "h6": 6, "h7": 0, "hr": 0, "p": 0}
	for tag, want := range tests {
		if got := headingLevel(tag); got != want {
			t.Errorf("headingLevel(%q): expected %d, got %d", tag, want, got)
		}
	}
}
