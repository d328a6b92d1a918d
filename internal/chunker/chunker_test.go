package chunker

import (
	"strings"
	"testing"

	"github.com/dgallion1/mdstruct/internal/structure"
)

func chunk(input string, cfg Config) []string {
	var out []string
	for _, c := range ChunkDocument(structure.Scan(input), cfg) {
		out = append(out, c.Text)
	}
	return out
}

func TestChunkDocument_SmallDocumentFitsOneChunk(t *testing.T) {
	input := "# Section\n\n" + strings.Repeat("word ", 200)
	chunks := ChunkDocument(structure.Scan(input), Config{ChunkSize: 1500, ChunkOverlap: 200, MinChunk: 50})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
	if !strings.HasPrefix(chunks[0].Text, "# Section\n\nword") {
		t.Errorf("expected chunk to start with the header, got %q", chunks[0].Text[:20])
	}
	if chunks[0].StartLine != 0 || chunks[0].EndLine != 2 {
		t.Errorf("expected lines 0-2, got %d-%d", chunks[0].StartLine, chunks[0].EndLine)
	}
	if chunks[0].Tokens != EstimateTokens(chunks[0].Text) {
		t.Errorf("expected tokens %d, got %d", EstimateTokens(chunks[0].Text), chunks[0].Tokens)
	}
}

func TestChunkDocument_LargeDocumentKeepsCodeBlocksWhole(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("# Guide\n\n")
	for range 30 {
		sb.WriteString(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 5))
		sb.WriteString("\n\n```go\nfmt.Println(\"block\")\nreturn nil\n```\n\n")
	}

	cfg := Config{ChunkSize: 300, ChunkOverlap: 20, MinChunk: 10}
	chunks := ChunkDocument(structure.Scan(sb.String()), cfg)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
		if n := strings.Count(c.Text, "```"); n%2 != 0 {
			t.Errorf("chunk %d: code block split across chunks (%d fences)", i, n)
		}
		if c.Tokens > cfg.ChunkSize*2 {
			t.Errorf("chunk %d: %d tokens exceeds 2x target %d", i, c.Tokens, cfg.ChunkSize)
		}
		if len(c.Breadcrumb) != 1 || c.Breadcrumb[0] != "Guide" {
			t.Errorf("chunk %d: expected breadcrumb [Guide], got %v", i, c.Breadcrumb)
		}
		if i > 0 && c.StartLine <= chunks[i-1].EndLine {
			t.Errorf("chunk %d: starts at %d, before previous end %d", i, c.StartLine, chunks[i-1].EndLine)
		}
	}
}

func TestChunkDocument_OversizeTableIsItsOwnChunk(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("intro paragraph\n\n| name | description |\n|---|---|\n")
	for range 100 {
		sb.WriteString("| row | some descriptive words for the row |\n")
	}
	sb.WriteString("\nclosing paragraph\n")

	cfg := Config{ChunkSize: 200, ChunkOverlap: 10, MinChunk: 10}
	chunks := ChunkDocument(structure.Scan(sb.String()), cfg)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks (intro, table, closing), got %d", len(chunks))
	}
	table := chunks[1]
	if strings.Count(table.Text, "\n")+1 != 102 {
		t.Errorf("expected the whole table (102 lines) in one chunk, got %d lines", strings.Count(table.Text, "\n")+1)
	}
	if table.StartLine != 2 || table.EndLine != 103 {
		t.Errorf("expected table lines 2-103, got %d-%d", table.StartLine, table.EndLine)
	}
}

func TestChunkDocument_OversizeParagraphIsSplitBySentences(t *testing.T) {
	input := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 300)
	cfg := Config{ChunkSize: 500, ChunkOverlap: 50, MinChunk: 10}
	chunks := ChunkDocument(structure.Scan(input), cfg)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks for large text, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.StartLine != 0 || c.EndLine != 0 {
			t.Errorf("chunk %d: expected line range 0-0, got %d-%d", i, c.StartLine, c.EndLine)
		}
		if c.Tokens > cfg.ChunkSize*2 {
			t.Errorf("chunk %d: %d tokens exceeds 2x target %d", i, c.Tokens, cfg.ChunkSize)
		}
	}
}

func TestChunkDocument_BreadcrumbPropagation(t *testing.T) {
	input := "# Chapter 1\n\n## Section 1.1\n\n" + strings.Repeat("content ", 200)
	chunks := ChunkDocument(structure.Scan(input), Config{ChunkSize: 2000, ChunkOverlap: 100, MinChunk: 10})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	want := []string{"Chapter 1", "Section 1.1"}
	bc := chunks[0].Breadcrumb
	if len(bc) != len(want) {
		t.Fatalf("expected breadcrumb %v, got %v", want, bc)
	}
	for i := range want {
		if bc[i] != want[i] {
			t.Errorf("breadcrumb[%d]: expected %q, got %q", i, want[i], bc[i])
		}
	}
}

func TestChunkDocument_BreadcrumbIsolation(t *testing.T) {
	input := "# A\n\n" + strings.Repeat("alpha ", 200) + "\n\n# B\n\n" + strings.Repeat("beta ", 200)
	chunks := ChunkDocument(structure.Scan(input), Config{ChunkSize: 2000, ChunkOverlap: 100, MinChunk: 10})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if len(chunks[0].Breadcrumb) != 1 || chunks[0].Breadcrumb[0] != "A" {
		t.Errorf("chunk 0 breadcrumb: expected [A], got %v", chunks[0].Breadcrumb)
	}
	if len(chunks[1].Breadcrumb) != 1 || chunks[1].Breadcrumb[0] != "B" {
		t.Errorf("chunk 1 breadcrumb: expected [B], got %v", chunks[1].Breadcrumb)
	}
	if chunks[1].StartLine != 4 {
		t.Errorf("expected chunk 1 to start at header line 4, got %d", chunks[1].StartLine)
	}
}

func TestChunkDocument_SmallSectionsAreMerged(t *testing.T) {
	got := chunk("# A\n\nshort\n\n# B\n\nalso short", Config{ChunkSize: 1500, ChunkOverlap: 200, MinChunk: 100})

	if len(got) != 1 {
		t.Fatalf("expected small sections merged into 1 chunk, got %d: %q", len(got), got)
	}
	if got[0] != "# A\n\nshort\n\n# B\n\nalso short" {
		t.Errorf("unexpected merged text %q", got[0])
	}
}

func TestChunkDocument_FrontMatterIsSkipped(t *testing.T) {
	got := chunk("---\ntitle: secret\n---\n# Visible\n\nbody", DefaultConfig())

	if len(got) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(got))
	}
	if strings.Contains(got[0], "secret") {
		t.Errorf("expected front matter to be excluded, got %q", got[0])
	}
}

func TestChunkDocument_UnterminatedCodeBlockIsKept(t *testing.T) {
	got := chunk("text\n\n```\nleft open\n", DefaultConfig())

	if len(got) != 1 || !strings.Contains(got[0], "left open") {
		t.Errorf("expected unterminated code block text in output, got %q", got)
	}
}

func TestChunkDocument_EmptyDocument(t *testing.T) {
	chunks := ChunkDocument(structure.Scan(""), DefaultConfig())
	if len(chunks) != 0 {
		t.Errorf("expected 0 chunks, got %d", len(chunks))
	}
}

func TestChunkDocument_DefaultConfigFallback(t *testing.T) {
	chunks := ChunkDocument(structure.Scan(strings.Repeat("word ", 200)), Config{})
	if len(chunks) != 1 {
		t.Errorf("expected 1 chunk with zero config (defaults applied), got %d", len(chunks))
	}
}

func TestChunkDocument_OverlapSetting(t *testing.T) {
	input := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 300)
	tests := []struct {
		name        string
		cfg         Config
		wantOverlap bool
	}{
		{"zero disables overlap", Config{ChunkSize: 500, ChunkOverlap: 0, MinChunk: 10}, false},
		{"negative uses default", Config{ChunkSize: 500, ChunkOverlap: -1, MinChunk: 10}, true},
		{"explicit overlap", Config{ChunkSize: 500, ChunkOverlap: 100, MinChunk: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunk(input, tt.cfg)
			if len(got) < 2 {
				t.Fatalf("expected at least 2 chunks, got %d", len(got))
			}
			for i, c := range got[1:] {
				startsAtSentence := strings.HasPrefix(c, "The quick")
				if startsAtSentence == tt.wantOverlap {
					t.Errorf("chunk %d: overlap %v, got text starting %q", i+1, tt.wantOverlap, c[:20])
				}
			}
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	tests := []struct {
		in   Config
		want Config
	}{
		{Config{}, DefaultConfig()},
		{Config{ChunkSize: 800}, Config{ChunkSize: 800, ChunkOverlap: 0, MinChunk: 100}},
		{Config{ChunkSize: 800, ChunkOverlap: -1}, Config{ChunkSize: 800, ChunkOverlap: 200, MinChunk: 100}},
		{Config{ChunkOverlap: 50, MinChunk: -3}, Config{ChunkSize: 1500, ChunkOverlap: 50, MinChunk: 100}},
	}
	for _, tt := range tests {
		if got := tt.in.withDefaults(); got != tt.want {
			t.Errorf("%+v.withDefaults(): expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{strings.Repeat("word ", 100), 133},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q): expected %d, got %d", tt.text, tt.want, got)
		}
	}
}
