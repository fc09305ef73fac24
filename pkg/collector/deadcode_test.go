package collector

import (
	"context"
	"testing"

	"github.com/repoquant/repoquant/pkg/config"
)

func TestDeadCodeFindsUnusedFunctions(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "app.py", `
def orphan():
    return 1

def helper():
    return 2

def run():
    return helper()
`)
	writeRepoFile(t, dir, "cli.py", `
from app import run

def main():
    run()
`)

	metrics, err := NewDeadCode(config.DefaultConfig()).Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	// orphan is never referenced; helper and run are; main is exempt.
	if got := findMetric(t, metrics, "repo.deadcode.unused_functions").Value.(int); got != 1 {
		t.Errorf("unused_functions = %d, want 1", got)
	}
}

func TestDeadCodeExemptions(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "main.go", `package main

func main() {}

func Exported() int { return 1 }

func unusedLocal() int { return 2 }
`)

	metrics, err := NewDeadCode(config.DefaultConfig()).Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	// main and Exported are exempt; only unusedLocal counts.
	if got := findMetric(t, metrics, "repo.deadcode.unused_functions").Value.(int); got != 1 {
		t.Errorf("unused_functions = %d, want 1", got)
	}
}

func TestDeadCodeNoDeclarations(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "data.py", "CONFIG = {'a': 1}\n")

	metrics, err := NewDeadCode(config.DefaultConfig()).Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("expected no metrics without declarations, got %d", len(metrics))
	}
}
