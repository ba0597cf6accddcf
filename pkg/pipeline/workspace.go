package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jossbot/joss/pkg/logger"
)

// Workspace is the request-scoped temporary directory holding every
// intermediate and derived file of one pipeline run. It is exclusively
// owned by its request and removed with its contents when the request
// terminates, whatever the outcome.
type Workspace struct {
	dir string
}

// NewWorkspace creates an empty workspace directory.
func NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "joss-*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string { return w.dir }

// Path returns the path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Cleanup removes the workspace and everything in it.
func (w *Workspace) Cleanup() {
	if err := os.RemoveAll(w.dir); err != nil {
		logger.WarnCF("pipeline", "Workspace cleanup failed", map[string]interface{}{
			"dir":   w.dir,
			"error": err.Error(),
		})
	}
}

// requestID returns a timestamp-ordered unique id for one request.
func requestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return id.String()
}
