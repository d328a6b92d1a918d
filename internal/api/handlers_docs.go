package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/dgallion1/mdstruct/internal/chunker"
	"github.com/dgallion1/mdstruct/internal/doctree"
	"github.com/dgallion1/mdstruct/internal/report"
	"github.com/dgallion1/mdstruct/internal/structure"
)

// documentRequest is the JSON form of an inline document. Chunk settings are
// only read by /api/chunk; omitted or zero values use the server defaults,
// except overlap, where an explicit 0 disables overlap.
type documentRequest struct {
	Content   string `json:"content"`
	Title     string `json:"title"`
	ChunkSize int    `json:"chunk_size"`
	Overlap   *int   `json:"overlap"`
	MinChunk  int    `json:"min_chunk"`
}

// handleAnalyze returns the structure index of a Markdown document in the
// format named by ?format= (json by default).
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.readDocument(w, r)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = req.Title
	}
	if name == "" {
		name = "document"
	}

	idx := structure.Analyze(req.Content)

	var buf bytes.Buffer
	if err := report.Write(&buf, idx, name, format); err != nil {
		if errors.Is(err, report.ErrUnknownFormat) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "render report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	switch format {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	case "yaml", "yml":
		w.Header().Set("Content-Type", "application/yaml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.Write(buf.Bytes())
}

// handleOutline returns the section tree of a Markdown document.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	req, err := s.readDocument(w, r)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}
	title := req.Title
	if title == "" {
		title = r.URL.Query().Get("title")
	}

	tree := doctree.Build(structure.Scan(req.Content), title)
	writeJSON(w, http.StatusOK, tree)
}

// handleChunk splits a Markdown document into structure-aware chunks.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	req, err := s.readDocument(w, r)
	if err != nil {
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	cfg := s.orchestrator.ChunkConfig()
	if req.ChunkSize > 0 {
		cfg.ChunkSize = req.ChunkSize
	}
	if req.Overlap != nil && *req.Overlap >= 0 {
		cfg.ChunkOverlap = *req.Overlap
	}
	if req.MinChunk > 0 {
		cfg.MinChunk = req.MinChunk
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		jsonError(w, fmt.Sprintf("overlap (%d) must be smaller than chunk_size (%d)", cfg.ChunkOverlap, cfg.ChunkSize), http.StatusBadRequest)
		return
	}

	chunks := chunker.ChunkDocument(structure.Scan(req.Content), cfg)
	if chunks == nil {
		chunks = []doctree.Chunk{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(chunks),
		"config": cfg,
		"chunks": chunks,
	})
}

var errBodyTooLarge = errors.New("request body too large")

// readDocument reads the request body as raw Markdown, or as a
// documentRequest when the content type is JSON.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (documentRequest, error) {
	var req documentRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return req, errBodyTooLarge
			}
			return req, fmt.Errorf("invalid json body: %w", err)
		}
		return req, nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, errBodyTooLarge
		}
		return req, fmt.Errorf("read body: %w", err)
	}
	req.Content = string(data)
	return req, nil
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	if errors.Is(err, errBodyTooLarge) || errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}
