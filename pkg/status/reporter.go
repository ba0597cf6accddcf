// Package status maintains the single status message a request shows to the
// user. Stage text and download progress are coalesced and flushed to the
// chat at a throttled interval so frequent progress updates do not turn into
// excessive message edits.
package status

import (
	"fmt"
	"sync"
	"time"
)

// Progress is a structured download progress value, decoupled from message
// formatting.
type Progress struct {
	Percent int
	Rate    string // human-readable, e.g. "1.2MB/s"; may be empty
}

// Reporter throttles status edits. Stage changes via Set are pushed on the
// next tick; Flush performs a final push and stops the loop. Edit failures
// are the callback's concern and never propagate here.
type Reporter struct {
	mu       sync.Mutex
	text     string
	dirty    bool
	onUpdate func(text string)
	ticker   *time.Ticker
	done     chan struct{}
	once     sync.Once
}

// NewReporter creates a reporter that calls onUpdate with the latest status
// text at most once per interval.
func NewReporter(interval time.Duration, onUpdate func(text string)) *Reporter {
	r := &Reporter{
		onUpdate: onUpdate,
		ticker:   time.NewTicker(interval),
		done:     make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Reporter) loop() {
	for {
		select {
		case <-r.ticker.C:
			r.push()
		case <-r.done:
			return
		}
	}
}

func (r *Reporter) push() {
	r.mu.Lock()
	if !r.dirty || r.text == "" {
		r.mu.Unlock()
		return
	}
	text := r.text
	r.dirty = false
	r.mu.Unlock()
	r.onUpdate(text)
}

// Seed sets the current text without scheduling an edit, for when the
// message already shows text that was sent by other means.
func (r *Reporter) Seed(text string) {
	r.mu.Lock()
	r.text = text
	r.mu.Unlock()
}

// Set replaces the status text. The edit is sent on the next tick.
func (r *Reporter) Set(text string) {
	r.mu.Lock()
	if text != r.text {
		r.text = text
		r.dirty = true
	}
	r.mu.Unlock()
}

// SetProgress formats a download progress value into the status text.
func (r *Reporter) SetProgress(stage string, p Progress) {
	if p.Rate != "" {
		r.Set(fmt.Sprintf("%s %d%% (%s)", stage, p.Percent, p.Rate))
	} else {
		r.Set(fmt.Sprintf("%s %d%%", stage, p.Percent))
	}
}

// Flush stops the throttle loop and pushes any unsent text. Safe to call
// more than once.
func (r *Reporter) Flush() {
	r.once.Do(func() {
		r.ticker.Stop()
		close(r.done)
	})
	r.push()
}

// Text returns the current status text.
func (r *Reporter) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}
