package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/dgallion1/mdstruct/internal/report"
	"github.com/dgallion1/mdstruct/internal/structure"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func analyzeCmd() *cobra.Command {
	var (
		format string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Report the structure of Markdown files",
		Long: `Report the headers, code blocks, tables, lists and paragraphs of each file.

With no files, or with "-", the document is read from standard input.
Files are scanned in parallel; reports are printed in argument order.
Formats: ` + strings.Join(report.Formats, ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			return runAnalyze(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, format, jobs)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Number of files scanned in parallel")

	return cmd
}

// runAnalyze scans every file and writes the reports in order. A file that
// cannot be read is reported on errOut and makes the command fail once all
// other files are done.
func runAnalyze(ctx context.Context, stdin io.Reader, out, errOut io.Writer, paths []string, format string, jobs int) error {
	// Reject a bad format before reading anything.
	if err := report.Write(io.Discard, structure.Index{}, "", format); err != nil {
		return err
	}
	if stdinArgs := countStdin(paths); stdinArgs > 1 {
		return fmt.Errorf("standard input (-) can only be read once, got it %d times", stdinArgs)
	}

	reports := make([][]byte, len(paths))
	failures := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := loadSource(path, stdin)
			if err != nil {
				failures[i] = err
				return nil
			}
			var buf bytes.Buffer
			if err := report.Write(&buf, structure.Analyze(src.Markdown), path, format); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	written := 0
	for i, path := range paths {
		if failures[i] != nil {
			failed++
			fmt.Fprintf(errOut, "error: %v\n", failures[i])
			continue
		}
		if written > 0 && isYAML(format) {
			fmt.Fprintln(out, "---")
		}
		if _, err := out.Write(reports[i]); err != nil {
			return fmt.Errorf("write report for %s: %w", path, err)
		}
		written++
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func isYAML(format string) bool {
	f := strings.ToLower(format)
	return f == "yaml" || f == "yml"
}

func countStdin(paths []string) int {
	n := 0
	for _, p := range paths {
		if p == "-" {
			n++
		}
	}
	return n
}
