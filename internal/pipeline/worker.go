package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/mdstruct/internal/chunker"
	"github.com/dgallion1/mdstruct/internal/doctree"
	"github.com/dgallion1/mdstruct/internal/metrics"
	"github.com/dgallion1/mdstruct/internal/parser"
	"github.com/dgallion1/mdstruct/internal/structure"
)

// Worker processes a single document job.
type Worker struct {
	log       *slog.Logger
	chunkCfg  chunker.Config
	pdftotext bool
}

func NewWorker(log *slog.Logger, chunkCfg chunker.Config, pdftotext bool) *Worker {
	return &Worker{
		log:       log,
		chunkCfg:  chunkCfg,
		pdftotext: pdftotext,
	}
}

// Process converts the job's file to Markdown, scans it, builds the outline
// and chunks it. The job ends completed or failed.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	start := time.Now()
	defer func() {
		metrics.JobDuration.Observe(time.Since(start).Seconds())
		metrics.JobsTotal.WithLabelValues(string(job.Snapshot().Status)).Inc()
	}()

	// Phase 1: Convert
	job.SetStatus(StatusConverting, "converting")
	src, err := w.convert(job)
	if err != nil {
		log.Error("convert failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "converting")
		return
	}
	if job.Title != "" {
		src.Title = job.Title
	}

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "converting")
		return
	}

	// Phase 2: Scan
	job.SetStatus(StatusAnalyzing, "analyzing")
	doc := structure.Scan(src.Markdown)
	job.SetStructure(doc.Index)
	recordStructure(doc.Index)
	log.Info("scanned document",
		"total_lines", doc.Index.TotalLines,
		"headers", len(doc.Index.Headers),
		"code_blocks", len(doc.Index.CodeBlocks),
		"tables", len(doc.Index.Tables),
		"lists", len(doc.Index.Lists),
		"paragraphs", len(doc.Index.Paragraphs),
	)
	outline := doctree.Build(doc, src.Title)
	outline.Meta = src.Meta

	// Phase 3: Chunk
	job.SetStatus(StatusChunking, "chunking")
	cfg := w.chunkCfg
	if job.ChunkConfig != (chunker.Config{}) {
		cfg = job.ChunkConfig
	}
	chunks := chunker.ChunkDocument(doc, cfg)
	if chunks == nil {
		chunks = []doctree.Chunk{}
	}
	job.SetChunks(len(chunks))
	log.Info("chunked document", "chunks", len(chunks))

	job.complete(&Result{
		Title:     src.Title,
		Meta:      src.Meta,
		Structure: doc.Index,
		Outline:   outline,
		Chunks:    chunks,
	})
}

func recordStructure(idx structure.Index) {
	metrics.ScannedLines.Add(float64(idx.TotalLines))
	metrics.StructuresFound.WithLabelValues(structure.KindHeader.String()).Add(float64(len(idx.Headers)))
	metrics.StructuresFound.WithLabelValues(structure.KindCodeBlock.String()).Add(float64(len(idx.CodeBlocks)))
	metrics.StructuresFound.WithLabelValues(structure.KindTable.String()).Add(float64(len(idx.Tables)))
	metrics.StructuresFound.WithLabelValues(structure.KindList.String()).Add(float64(len(idx.Lists)))
	metrics.StructuresFound.WithLabelValues(structure.KindParagraph.String()).Add(float64(len(idx.Paragraphs)))
}

func (w *Worker) convert(job *Job) (*parser.Source, error) {
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = w.pdftotext
	}
	src, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", job.Filename, err)
	}
	return src, nil
}
