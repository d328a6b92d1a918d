package chunker

import (
	"strings"

	"github.com/dgallion1/mdstruct/internal/doctree"
	"github.com/dgallion1/mdstruct/internal/structure"
)

// Config controls chunking behavior. The zero Config means DefaultConfig.
// Otherwise a ChunkOverlap of 0 disables overlap and a negative one selects
// the default.
type Config struct {
	ChunkSize    int `json:"chunk_size"` // Target chunk size in tokens.
	ChunkOverlap int `json:"overlap"`    // Overlap between consecutive chunks in tokens.
	MinChunk     int `json:"min_chunk"`  // Sections smaller than this are merged into the next one.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MinChunk:     100,
	}
}

func (c Config) withDefaults() Config {
	if c == (Config{}) {
		return DefaultConfig()
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 1500
	}
	if c.ChunkOverlap < 0 {
		c.ChunkOverlap = 200
	}
	if c.MinChunk <= 0 {
		c.MinChunk = 100
	}
	return c
}

// ChunkDocument splits a scanned document into chunks along its structure.
// Code blocks, tables and lists are never split; an oversize one becomes a
// chunk of its own. Oversize paragraphs are split by sentences. A header
// starts a new chunk once the current one holds at least MinChunk tokens.
// Front matter is never emitted.
func ChunkDocument(doc *structure.Document, cfg Config) []doctree.Chunk {
	b := &builder{
		doc:   doc,
		cfg:   cfg.withDefaults(),
		start: -1,
	}

	for _, blk := range doc.Blocks() {
		text := blockText(doc, blk)
		tokens := EstimateTokens(text)

		switch blk.Kind {
		case structure.KindHeader:
			if b.tokens >= b.cfg.MinChunk {
				b.flush()
			}
			b.pushHeader(blk)
			b.add(blk, text, tokens)

		case structure.KindParagraph:
			if tokens > b.cfg.ChunkSize {
				b.flush()
				for _, part := range splitBySentences(text, b.cfg.ChunkSize, b.cfg.ChunkOverlap) {
					b.emit(part, blk.Start, blk.End, b.crumbs())
				}
				continue
			}
			b.fit(tokens)
			b.add(blk, text, tokens)

		default:
			if tokens > b.cfg.ChunkSize {
				b.flush()
				b.emit(text, blk.Start, blk.End, b.crumbs())
				continue
			}
			b.fit(tokens)
			b.add(blk, text, tokens)
		}
	}
	b.flush()

	return b.chunks
}

type crumb struct {
	level int
	title string
}

// builder accumulates blocks into the chunk under construction.
type builder struct {
	doc    *structure.Document
	cfg    Config
	chunks []doctree.Chunk
	stack  []crumb

	parts      []string
	tokens     int
	start      int // first line of the chunk's own blocks, -1 if none yet
	end        int
	breadcrumb []string
	hasBody    bool
	lastKind   structure.Kind
}

func (b *builder) pushHeader(blk structure.Block) {
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].level >= blk.Level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	title := ""
	if h, ok := b.doc.HeaderAt(blk.Start); ok {
		title = doctree.PlainTitle(h.Text)
	}
	b.stack = append(b.stack, crumb{level: blk.Level, title: title})
}

func (b *builder) crumbs() []string {
	if len(b.stack) == 0 {
		return nil
	}
	out := make([]string, len(b.stack))
	for i, c := range b.stack {
		out[i] = c.title
	}
	return out
}

func (b *builder) add(blk structure.Block, text string, tokens int) {
	// Until body content arrives the chunk belongs to the deepest header.
	if !b.hasBody {
		b.breadcrumb = b.crumbs()
	}
	if blk.Kind != structure.KindHeader {
		b.hasBody = true
	}
	if b.start < 0 {
		b.start = blk.Start
	}
	b.end = blk.End
	b.parts = append(b.parts, text)
	b.tokens += tokens
	b.lastKind = blk.Kind
}

// fit flushes the current chunk if tokens more would exceed ChunkSize,
// carrying the tail of a trailing paragraph into the next chunk.
func (b *builder) fit(tokens int) {
	if b.tokens == 0 || b.tokens+tokens <= b.cfg.ChunkSize {
		return
	}
	var overlap string
	if b.lastKind == structure.KindParagraph && len(b.parts) > 0 {
		overlap = getOverlapText(b.parts[len(b.parts)-1], b.cfg.ChunkOverlap)
	}
	b.flush()
	if overlap != "" {
		b.parts = []string{overlap}
		b.tokens = EstimateTokens(overlap)
		b.breadcrumb = b.crumbs()
		b.hasBody = true
	}
}

func (b *builder) flush() {
	if b.start >= 0 {
		b.emit(strings.Join(b.parts, "\n\n"), b.start, b.end, b.breadcrumb)
	}
	b.parts = nil
	b.tokens = 0
	b.start = -1
	b.end = 0
	b.breadcrumb = nil
	b.hasBody = false
	b.lastKind = structure.KindNone
}

func (b *builder) emit(text string, start, end int, breadcrumb []string) {
	b.chunks = append(b.chunks, doctree.Chunk{
		Text:       text,
		Index:      len(b.chunks),
		Breadcrumb: copyBreadcrumb(breadcrumb),
		StartLine:  start,
		EndLine:    end,
		Tokens:     EstimateTokens(text),
	})
}

// blockText returns the block's lines with carriage returns removed.
func blockText(doc *structure.Document, blk structure.Block) string {
	lines := make([]string, 0, blk.End-blk.Start+1)
	for i := blk.Start; i <= blk.End && i < len(doc.Lines); i++ {
		lines = append(lines, strings.TrimRight(doc.Lines[i], "\r"))
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// splitBySentences breaks a large paragraph into sentence-based chunks.
func splitBySentences(text string, targetTokens, overlapTokens int) []string {
	sentences := splitSentences(strings.Join(strings.Fields(text), " "))

	var result []string
	var current strings.Builder
	currentTokens := 0

	for _, sent := range sentences {
		sentTokens := EstimateTokens(sent)

		if currentTokens+sentTokens > targetTokens && currentTokens > 0 {
			result = append(result, current.String())
			overlap := getOverlapText(current.String(), overlapTokens)
			current.Reset()
			currentTokens = 0
			if overlap != "" {
				current.WriteString(overlap)
				currentTokens = EstimateTokens(overlap)
			}
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
		currentTokens += sentTokens
	}

	if currentTokens > 0 {
		result = append(result, current.String())
	}

	return result
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// getOverlapText extracts the last N tokens worth of text for overlap.
func getOverlapText(text string, targetTokens int) string {
	words := strings.Fields(text)
	// Approximate: 1.33 tokens per word.
	targetWords := int(float64(targetTokens) / 1.33)
	if targetWords <= 0 || len(words) <= targetWords {
		return ""
	}
	return strings.Join(words[len(words)-targetWords:], " ")
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}
