package main

import (
	"encoding/json"
	"fmt"

	"github.com/dgallion1/mdstruct/internal/chunker"
	"github.com/dgallion1/mdstruct/internal/doctree"
	"github.com/dgallion1/mdstruct/internal/structure"
	"github.com/spf13/cobra"
)

func chunkCmd() *cobra.Command {
	cfg := chunker.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "chunk <file>",
		Short: "Split a document into structure-aware chunks (JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ChunkOverlap >= cfg.ChunkSize {
				return fmt.Errorf("--overlap (%d) must be smaller than --size (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
			}
			src, err := loadSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			chunks := chunker.ChunkDocument(structure.Scan(src.Markdown), cfg)
			if chunks == nil {
				chunks = []doctree.Chunk{}
			}
			return writeJSON(cmd, chunks)
		},
	}

	cmd.Flags().IntVar(&cfg.ChunkSize, "size", cfg.ChunkSize, "Target chunk size in tokens")
	cmd.Flags().IntVar(&cfg.ChunkOverlap, "overlap", cfg.ChunkOverlap, "Overlap between chunks in tokens (0 disables overlap)")
	cmd.Flags().IntVar(&cfg.MinChunk, "min", cfg.MinChunk, "Sections smaller than this are merged forward")

	return cmd
}

func outlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <file>",
		Short: "Print the section tree of a document (JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			tree := doctree.Build(structure.Scan(src.Markdown), src.Title)
			tree.Meta = src.Meta
			return writeJSON(cmd, tree)
		},
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
