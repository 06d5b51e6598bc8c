package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"photo.jpg", "jpg"},
		{"photo.JPEG", "jpeg"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{"/some/dir/image.PNG", "png"},
	}

	for _, tt := range tests {
		if got := GetFileExtension(tt.filename); got != tt.expected {
			t.Errorf("GetFileExtension(%q) = %q, want %q", tt.filename, got, tt.expected)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"photo.jpg", true},
		{"photo.webp", true},
		{"photo.PNG", true},
		{"document.pdf", false},
		{"script.go", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := IsImageFile(tt.filename); got != tt.expected {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.filename, got, tt.expected)
		}
	}
}

func TestProfileOutputPath(t *testing.T) {
	got := ProfileOutputPath("/input/photos/sunset.jpg", "/output")
	want := filepath.Join("/output", "sunset_profile.json")
	if got != want {
		t.Errorf("ProfileOutputPath = %q, want %q", got, want)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if !DirExists(dir) {
		t.Error("Directory should exist after EnsureDir")
	}

	// Idempotent on an existing directory
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.txt")

	if FileExists(file) {
		t.Error("FileExists should be false for a missing file")
	}
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !FileExists(file) {
		t.Error("FileExists should be true for an existing file")
	}
	if FileExists(dir) {
		t.Error("FileExists should be false for a directory")
	}
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	if !DirExists(dir) {
		t.Error("DirExists should be true for an existing directory")
	}
	if DirExists(filepath.Join(dir, "missing")) {
		t.Error("DirExists should be false for a missing path")
	}
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if DirExists(file) {
		t.Error("DirExists should be false for a file")
	}
}

func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	for _, name := range []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(sub, "b.png"),
	} {
		if err := os.WriteFile(name, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	files, err := ListImageFiles(dir)
	if err != nil {
		t.Fatalf("ListImageFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 image files, got %d: %v", len(files), files)
	}
}
