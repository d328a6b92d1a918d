// Command mdstruct scans Markdown documents and reports their structure:
// headers, code blocks, tables, lists and paragraphs by line number.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dgallion1/mdstruct/internal/parser"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mdstruct",
		Short:         "Markdown document structure scanner",
		Long:          `mdstruct finds the headers, fenced code blocks, tables, lists and paragraphs of Markdown documents and reports their line positions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(analyzeCmd())
	cmd.AddCommand(chunkCmd())
	cmd.AddCommand(outlineCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mdstruct version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
		},
	}
}

// loadSource reads path ("-" for stdin) and converts it to Markdown. Files
// with an extension no converter knows are read as Markdown.
func loadSource(path string, stdin io.Reader) (*parser.Source, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &parser.Source{Title: "stdin", Filename: "stdin", Markdown: string(data)}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	p, err := parser.ForFile(path)
	if errors.Is(err, parser.ErrUnsupported) {
		p = &parser.MarkdownParser{}
	} else if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = true
	}
	return p.Parse(f, path)
}
