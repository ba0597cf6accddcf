package transcode

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("/tmp/in.mp4", "/tmp/out.mp3")

	want := []string{"-y", "-i", "/tmp/in.mp4", "-vn", "-c:a", "libmp3lame", "-b:a", "128k", "/tmp/out.mp3"}
	if len(args) != len(want) {
		t.Fatalf("Expected %d args, got %d: %v", len(want), len(args), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, want[i], args[i])
		}
	}
}

func TestExtractAudio_MissingBinary(t *testing.T) {
	f := NewFFmpeg("definitely-not-ffmpeg-bin", time.Second)

	dir := t.TempDir()
	err := f.ExtractAudio(context.Background(), filepath.Join(dir, "in.mp4"), filepath.Join(dir, "out.mp3"))
	if err == nil {
		t.Error("Expected error when transcoder binary is absent, got nil")
	}
}

func TestNewFFmpeg_DefaultBinary(t *testing.T) {
	f := NewFFmpeg("", 0)
	if f.binary != DefaultBinary {
		t.Errorf("Expected default binary %s, got %s", DefaultBinary, f.binary)
	}
}
