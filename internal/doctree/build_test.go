package doctree

import (
	"strings"
	"testing"

	"github.com/dgallion1/mdstruct/internal/structure"
)

func TestBuild_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	tree := Build(structure.Scan(input), "doc")

	if tree.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level child (h1), got %d", len(tree.Children))
	}

	h1 := tree.Children[0]
	if h1.Title != "Title" {
		t.Errorf("expected h1 title %q, got %q", "Title", h1.Title)
	}
	if h1.Text != "Intro text." {
		t.Errorf("expected h1 text %q, got %q", "Intro text.", h1.Text)
	}
	if h1.StartLine != 0 || h1.EndLine != 15 {
		t.Errorf("expected h1 lines 0-15, got %d-%d", h1.StartLine, h1.EndLine)
	}
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 h2 children, got %d", len(h1.Children))
	}

	secA := h1.Children[0]
	if secA.Title != "Section A" {
		t.Errorf("expected %q, got %q", "Section A", secA.Title)
	}
	if secA.EndLine != 11 {
		t.Errorf("expected section A to end at line 11, got %d", secA.EndLine)
	}
	if len(secA.Children) != 1 || secA.Children[0].Title != "Subsection A1" {
		t.Fatalf("expected one h3 child %q under Section A, got %+v", "Subsection A1", secA.Children)
	}

	secB := h1.Children[1]
	if secB.Line != 12 || secB.Level != 2 {
		t.Errorf("expected Section B at line 12 level 2, got line %d level %d", secB.Line, secB.Level)
	}
	if secB.Text != "Section B content." {
		t.Errorf("expected %q, got %q", "Section B content.", secB.Text)
	}
}

func TestBuild_NoHeadings(t *testing.T) {
	tree := Build(structure.Scan("Just some plain text.\n\nAnother paragraph here."), "plain")

	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 child for headingless markdown, got %d", len(tree.Children))
	}
	node := tree.Children[0]
	if node.Line != -1 || node.Title != "" {
		t.Errorf("expected untitled leading node, got %+v", node)
	}
	if !strings.Contains(node.Text, "Another paragraph here.") {
		t.Errorf("expected text to contain second paragraph, got %q", node.Text)
	}
}

func TestBuild_LeadingTextAndFrontMatter(t *testing.T) {
	input := "---\ntitle: x\n---\npreface\n# One\nbody"
	tree := Build(structure.Scan(input), "fm")

	if len(tree.Children) != 2 {
		t.Fatalf("expected leading node plus one section, got %d", len(tree.Children))
	}
	if tree.Children[0].Text != "preface" {
		t.Errorf("expected front matter excluded from leading text, got %q", tree.Children[0].Text)
	}
	if tree.Children[0].EndLine != 3 {
		t.Errorf("expected leading node to end at line 3, got %d", tree.Children[0].EndLine)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	tree := Build(structure.Scan(""), "empty")
	if len(tree.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Children))
	}
	if tree.TotalLines != 1 {
		t.Errorf("expected 1 total line, got %d", tree.TotalLines)
	}
}

func TestBuild_LevelJumps(t *testing.T) {
	tree := Build(structure.Scan("### deep\n# top\n## mid"), "jumps")

	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(tree.Children))
	}
	if tree.Children[0].Title != "deep" || tree.Children[1].Title != "top" {
		t.Errorf("unexpected top-level titles: %q, %q", tree.Children[0].Title, tree.Children[1].Title)
	}
	if len(tree.Children[1].Children) != 1 {
		t.Errorf("expected mid nested under top, got %d children", len(tree.Children[1].Children))
	}
}

func TestDocTree_Walk(t *testing.T) {
	tree := Build(structure.Scan("# A\n## B\n### C\n## D"), "walk")

	var got []string
	tree.Walk(func(n *DocNode, path []string) {
		got = append(got, strings.Join(append(path, n.Title), "/"))
	})
	want := []string{"A", "A/B", "A/B/C", "A/D"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPlainTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Title", "Title"},
		{"**Bold** and `code`", "Bold and code"},
		{"[Link text](https://example.com)", "Link text"},
		{"1. Numbered", "1. Numbered"},
		{"Closing hashes ##", "Closing hashes"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PlainTitle(tt.in); got != tt.want {
			t.Errorf("PlainTitle(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
