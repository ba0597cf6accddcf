package status

import (
	"sync"
	"testing"
	"time"
)

type updateRecorder struct {
	mu      sync.Mutex
	updates []string
}

func (u *updateRecorder) record(text string) {
	u.mu.Lock()
	u.updates = append(u.updates, text)
	u.mu.Unlock()
}

func (u *updateRecorder) all() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.updates...)
}

func TestReporter_FlushPushesLatestText(t *testing.T) {
	rec := &updateRecorder{}
	r := NewReporter(time.Hour, rec.record) // interval too long to tick in test

	r.Set("downloading")
	r.Set("sending video")
	r.Flush()

	got := rec.all()
	if len(got) != 1 {
		t.Fatalf("Expected 1 coalesced update, got %d: %v", len(got), got)
	}
	if got[0] != "sending video" {
		t.Errorf("Expected latest text 'sending video', got '%s'", got[0])
	}
}

func TestReporter_ThrottledTickPushes(t *testing.T) {
	rec := &updateRecorder{}
	r := NewReporter(10*time.Millisecond, rec.record)
	defer r.Flush()

	r.Set("downloading")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(rec.all()) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	got := rec.all()
	if len(got) == 0 {
		t.Fatal("Expected ticker to push the pending update")
	}
	if got[0] != "downloading" {
		t.Errorf("Expected 'downloading', got '%s'", got[0])
	}
}

func TestReporter_NoPushWhenClean(t *testing.T) {
	rec := &updateRecorder{}
	r := NewReporter(time.Hour, rec.record)

	r.Set("done")
	r.Flush()
	r.Flush() // second flush has nothing new

	if got := rec.all(); len(got) != 1 {
		t.Errorf("Expected exactly 1 update, got %v", got)
	}
}

func TestReporter_SeedSuppressesDuplicateEdit(t *testing.T) {
	rec := &updateRecorder{}
	r := NewReporter(time.Hour, rec.record)

	r.Seed("⏳ Downloading...")
	r.Set("⏳ Downloading...") // message already shows this text
	r.Flush()

	if got := rec.all(); len(got) != 0 {
		t.Errorf("Expected no edit for seeded text, got %v", got)
	}
}

func TestReporter_SeedThenNewTextPushes(t *testing.T) {
	rec := &updateRecorder{}
	r := NewReporter(time.Hour, rec.record)

	r.Seed("⏳ Downloading...")
	r.Set("📤 Sending video...")
	r.Flush()

	got := rec.all()
	if len(got) != 1 || got[0] != "📤 Sending video..." {
		t.Errorf("Expected the new text pushed, got %v", got)
	}
}

func TestReporter_SetProgressFormats(t *testing.T) {
	rec := &updateRecorder{}
	r := NewReporter(time.Hour, rec.record)

	r.SetProgress("⏳ Downloading", Progress{Percent: 42, Rate: "1.2MB/s"})
	if r.Text() != "⏳ Downloading 42% (1.2MB/s)" {
		t.Errorf("Unexpected progress text: %s", r.Text())
	}

	r.SetProgress("⏳ Downloading", Progress{Percent: 80})
	if r.Text() != "⏳ Downloading 80%" {
		t.Errorf("Unexpected progress text without rate: %s", r.Text())
	}
}
