package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"main.go", LangGo},
		{"app.py", LangPython},
		{"index.tsx", LangTypeScript},
		{"README.md", LangUnknown},
		{"Dockerfile", LangUnknown},
		{"lib.RS", LangRust},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsTestFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"pkg/foo/foo_test.go", true},
		{"tests/test_api.py", true},
		{"src/app.spec.ts", true},
		{"src/UserTest.java", true},
		{"pkg/foo/foo.go", false},
		{"src/app.ts", false},
	}
	for _, tt := range tests {
		if got := IsTestFile(tt.path); got != tt.want {
			t.Errorf("IsTestFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "src/app.py", "print('hi')\n")
	writeFile(t, root, "vendor/dep/dep.go", "package dep\n")
	writeFile(t, root, "node_modules/x/index.js", "x\n")
	writeFile(t, root, "README.md", "# readme\n")

	s := New(nil)
	files, err := s.ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("ScanDir() = %d files (%v), want 2", len(files), files)
	}
	for _, f := range files {
		rel, _ := filepath.Rel(root, f)
		if rel != "main.go" && rel != filepath.Join("src", "app.py") {
			t.Errorf("unexpected file: %s", rel)
		}
	}
}

func TestScanDir_MaxFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.go", "b.go", "c.go", "d.go"} {
		writeFile(t, root, name, "package x\n")
	}

	s := New(nil)
	s.maxFiles = 2
	files, err := s.ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("max files not honored: got %d", len(files))
	}
}
