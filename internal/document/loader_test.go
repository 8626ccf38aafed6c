package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoaderLoadFileRejections(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "doc_loader_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	txtPath := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("failed to create txt file: %v", err)
	}

	dirPath := filepath.Join(tempDir, "subdir")
	if err := os.Mkdir(dirPath, 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	emptyPath := filepath.Join(tempDir, "empty.pdf")
	if err := os.WriteFile(emptyPath, nil, 0o644); err != nil {
		t.Fatalf("failed to create empty file: %v", err)
	}

	largePath := filepath.Join(tempDir, "large.pdf")
	if err := os.WriteFile(largePath, make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("failed to create large file: %v", err)
	}

	loader := NewLoader(1024)

	tests := []struct {
		name    string
		path    string
		errPart string
	}{
		{"empty path", "", "path cannot be empty"},
		{"missing file", filepath.Join(tempDir, "nope.pdf"), "does not exist"},
		{"directory", dirPath, "directory"},
		{"wrong extension", txtPath, "not a PDF"},
		{"empty file", emptyPath, "empty"},
		{"oversized file", largePath, "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loader.LoadFile(tt.path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.errPart)
			}
		})
	}
}

func TestLoaderValidateBytes(t *testing.T) {
	loader := NewLoader(1024 * 1024)

	if err := loader.ValidateBytes(nil); err == nil {
		t.Error("empty bytes should be rejected")
	}
	if err := loader.ValidateBytes([]byte("hello world")); err == nil {
		t.Error("non-PDF bytes should be rejected")
	}
	if err := loader.ValidateBytes([]byte("%PDF-1.4 plausible header")); err != nil {
		t.Errorf("bytes with a PDF header should pass the cheap check, got %v", err)
	}

	small := NewLoader(4)
	if err := small.ValidateBytes([]byte("%PDF-1.4 ...")); err == nil {
		t.Error("oversized bytes should be rejected")
	}
}

func TestLoaderProbeGarbage(t *testing.T) {
	loader := NewLoader(1024 * 1024)
	if _, err := loader.Probe("bad.pdf", []byte("%PDF-1.4 not really")); err == nil {
		t.Error("probe of garbage bytes should fail")
	}
}
