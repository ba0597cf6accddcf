package extract

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindDownloaded_SkipsPartials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "abc123.mp4"), "video-bytes")
	writeFile(t, filepath.Join(dir, "abc123.mp4.part"), "partial")
	writeFile(t, filepath.Join(dir, "abc123.mp4.ytdl"), "state")

	got, err := findDownloaded(dir)
	if err != nil {
		t.Fatalf("findDownloaded failed: %v", err)
	}
	if filepath.Base(got) != "abc123.mp4" {
		t.Errorf("Expected abc123.mp4, got %s", got)
	}
}

func TestFindDownloaded_PrefersNewest(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "old.webm")
	newer := filepath.Join(dir, "new.mp4")
	writeFile(t, older, "old")
	writeFile(t, newer, "new")

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	got, err := findDownloaded(dir)
	if err != nil {
		t.Fatalf("findDownloaded failed: %v", err)
	}
	if filepath.Base(got) != "new.mp4" {
		t.Errorf("Expected new.mp4, got %s", got)
	}
}

func TestFindDownloaded_EmptyDir(t *testing.T) {
	if _, err := findDownloaded(t.TempDir()); err == nil {
		t.Error("Expected error for empty directory, got nil")
	}
}

func TestIsPartial(t *testing.T) {
	if !isPartial("x.mp4.part") || !isPartial("x.ytdl") {
		t.Error("Expected partial artifacts to be detected")
	}
	if isPartial("x.mp4") {
		t.Error("Expected finished file not to be partial")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile %s failed: %v", path, err)
	}
}
