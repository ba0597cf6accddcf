package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeContainer_RenamesLegacyExtension(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "vid1.webm")
	content := []byte("container-bytes")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := NormalizeContainer(src)
	if err != nil {
		t.Fatalf("NormalizeContainer failed: %v", err)
	}
	if got != filepath.Join(dir, "vid1.mp4") {
		t.Errorf("Expected vid1.mp4 path, got %s", got)
	}

	// Renamed in place: original gone, bytes identical.
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Expected original .webm file removed")
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(content) {
		t.Error("Expected byte-identical content after rename")
	}
}

func TestNormalizeContainer_LeavesOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "vid1.mp4")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := NormalizeContainer(src)
	if err != nil {
		t.Fatalf("NormalizeContainer failed: %v", err)
	}
	if got != src {
		t.Errorf("Expected unchanged path, got %s", got)
	}
}

func TestWorkspace_Lifecycle(t *testing.T) {
	ws, err := NewWorkspace()
	if err != nil {
		t.Fatalf("NewWorkspace failed: %v", err)
	}

	path := ws.Path("asset.bin")
	if filepath.Dir(path) != ws.Dir() {
		t.Errorf("Expected Path inside workspace, got %s", path)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ws.Cleanup()
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("Expected workspace and contents removed, stat err = %v", err)
	}
}
