package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/s-hiraoku/blogsearch/internal/adapters/driven/content/markdown"
	"github.com/s-hiraoku/blogsearch/internal/adapters/driven/storage/memory"
	"github.com/s-hiraoku/blogsearch/internal/core/services"
)

// testContentDir is the temporary content directory of the current
// test, for tests that mutate posts between command runs.
var testContentDir string

// setupTestServices wires the package-level services to in-memory
// implementations and a temporary content directory, bypassing the
// persistent setup that rootCmd normally runs. The returned cleanup
// restores the previous wiring.
func setupTestServices() func() {
	oldService := searchService
	oldSource := contentSource
	oldPreRun := rootCmd.PersistentPreRunE
	oldPostRun := rootCmd.PersistentPostRun
	rootCmd.PersistentPreRunE = nil
	rootCmd.PersistentPostRun = nil

	dir, err := os.MkdirTemp("", "blogsearch-cli-test")
	if err != nil {
		panic(err)
	}
	post := `+++
id = "post-1"
title = "Introduction to Liquid Glass Effects"
category = "frontend"
tags = ["css", "javascript"]
date = 2025-03-01
+++

Glassmorphism with backdrop filters and blur.
`
	if err := os.WriteFile(filepath.Join(dir, "post.md"), []byte(post), 0644); err != nil {
		panic(err)
	}

	ctx := context.Background()
	cfg := services.DefaultConfig()
	history := services.NewHistoryStore(ctx, memory.NewKeyValueStore(), cfg)
	searchService = services.NewSearchService(history, cfg)
	contentSource = markdown.NewSource(dir)
	testContentDir = dir

	return func() {
		searchService = oldService
		contentSource = oldSource
		rootCmd.PersistentPreRunE = oldPreRun
		rootCmd.PersistentPostRun = oldPostRun
		testContentDir = ""
		os.RemoveAll(dir)
	}
}

// execute runs rootCmd with args and captures its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
