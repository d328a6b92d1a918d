package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/mdstruct/internal/chunker"
	"github.com/dgallion1/mdstruct/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleMarkdown = `---
title: Guide
---
# Guide

Intro paragraph.

## Install

- step one
- step two

` + "```sh\nmake install\n```\n"

func TestWorker_ProcessMarkdown(t *testing.T) {
	w := NewWorker(discardLogger(), chunker.DefaultConfig(), false)
	job := NewJob("guide.md", "", []byte(sampleMarkdown))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (errors %v)", StatusCompleted, snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Headers != 2 || snap.Progress.Lists != 1 || snap.Progress.CodeBlocks != 1 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}

	res := job.Result()
	if res == nil {
		t.Fatal("expected result")
	}
	if res.Title != "Guide" {
		t.Errorf("expected title from front matter, got %q", res.Title)
	}
	if res.Meta["title"] != "Guide" {
		t.Errorf("expected meta title, got %v", res.Meta)
	}
	if len(res.Outline.Children) != 1 || res.Outline.Children[0].Title != "Guide" {
		t.Errorf("unexpected outline %+v", res.Outline.Children)
	}
	if len(res.Chunks) != 1 || snap.Progress.Chunks != 1 {
		t.Errorf("expected 1 chunk, got %d", len(res.Chunks))
	}
	if job.FileData() != nil {
		t.Error("expected file data released after completion")
	}
}

func TestWorker_TitleOverride(t *testing.T) {
	w := NewWorker(discardLogger(), chunker.DefaultConfig(), false)
	job := NewJob("notes.txt", "Custom", []byte("plain text"))

	w.Process(context.Background(), job)

	if res := job.Result(); res == nil || res.Title != "Custom" {
		t.Fatalf("expected title override, got %+v", res)
	}
}

func TestWorker_JobChunkConfig(t *testing.T) {
	w := NewWorker(discardLogger(), chunker.DefaultConfig(), false)
	input := "# A\n\n" + strings.Repeat("alpha ", 100) + "\n\n# B\n\n" + strings.Repeat("beta ", 100)
	job := NewJob("two.md", "", []byte(input))
	job.ChunkConfig = chunker.Config{ChunkSize: 2000, ChunkOverlap: 10, MinChunk: 10}

	w.Process(context.Background(), job)

	if res := job.Result(); res == nil || len(res.Chunks) != 2 {
		t.Fatalf("expected 2 chunks with per-job config, got %+v", res)
	}
}

func TestWorker_UnsupportedFile(t *testing.T) {
	w := NewWorker(discardLogger(), chunker.DefaultConfig(), false)
	job := NewJob("image.png", "", []byte{0x89})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if len(snap.Progress.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", snap.Progress.Errors)
	}
	if job.Result() != nil {
		t.Error("expected no result for failed job")
	}
}

func TestWorker_CanceledContext(t *testing.T) {
	w := NewWorker(discardLogger(), chunker.DefaultConfig(), false)
	job := NewJob("a.md", "", []byte("# A"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.Process(ctx, job)

	if s := job.Snapshot().Status; s != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, s)
	}
}

func testConfig(workers, queue int) config.Config {
	return config.Config{
		WorkerCount:         workers,
		MaxQueueSize:        queue,
		DefaultChunkSize:    1500,
		DefaultChunkOverlap: 200,
		DefaultMinChunk:     100,
		JobTTL:              time.Hour,
	}
}

func TestOrchestrator_ProcessesJobs(t *testing.T) {
	o := NewOrchestrator(testConfig(2, 10), discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	var ids []string
	for _, name := range []string{"a.md", "b.txt", "c.csv"} {
		job := NewJob(name, "", []byte("x,y\n1,2\n"))
		if err := o.Submit(job); err != nil {
			t.Fatalf("submit %s: %v", name, err)
		}
		ids = append(ids, job.ID)
	}

	deadline := time.Now().Add(5 * time.Second)
	for _, id := range ids {
		for {
			job := o.GetJob(id)
			if job == nil {
				t.Fatalf("job %s not found", id)
			}
			if job.Snapshot().Status.Done() {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("job %s did not finish", id)
			}
			time.Sleep(5 * time.Millisecond)
		}
		if s := o.GetJob(id).Snapshot().Status; s != StatusCompleted {
			t.Errorf("job %s: expected %q, got %q", id, StatusCompleted, s)
		}
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	// Not started, so nothing drains the queue.
	o := NewOrchestrator(testConfig(1, 1), discardLogger())

	if err := o.Submit(NewJob("a.md", "", []byte("a"))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := NewJob("b.md", "", []byte("b"))
	err := o.Submit(second)
	if err == nil {
		t.Fatal("expected queue full error")
	}
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
	if s := second.Snapshot().Status; s != StatusFailed {
		t.Errorf("expected rejected job to be failed, got %q", s)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}

func TestOrchestrator_StopTwice(t *testing.T) {
	o := NewOrchestrator(testConfig(1, 1), discardLogger())
	o.Start(context.Background())

	o.Stop()
	o.Stop()
}
