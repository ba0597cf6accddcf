// Package pipeline orchestrates one download request: resolve metadata,
// classify the content, fetch or derive the assets, and deliver them back
// to the chat while keeping a single status message current.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/jossbot/joss/pkg/logger"
	"github.com/jossbot/joss/pkg/media"
	"github.com/jossbot/joss/pkg/status"
)

// failureTextLimit caps the user-visible failure description.
const failureTextLimit = 80

// InitialStatus is the text the status message is created with. The
// reporter is seeded with it so the first stage edit does not repeat what
// the message already shows.
const InitialStatus = "⏳ Downloading..."

// Extractor is the media-extraction service.
type Extractor interface {
	Resolve(ctx context.Context, url string) (*media.Info, error)
	FetchVideo(ctx context.Context, url, dir string, onProgress func(status.Progress)) (string, error)
	FetchAudio(ctx context.Context, url, dest string) (string, error)
}

// Transport is the chat client the assets are delivered to.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, data []byte, name string) error
	SendAudio(ctx context.Context, chatID int64, path, title string) error
	SendVideo(ctx context.Context, chatID int64, path, caption string) error
	EditStatus(ctx context.Context, chatID int64, messageID int, text string) error
}

// Transcoder derives an audio-only file from a video file.
type Transcoder interface {
	ExtractAudio(ctx context.Context, inputPath, outputPath string) error
}

// ImageFetcher downloads a single image over HTTP.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// State is the request lifecycle position. Failed is terminal and reachable
// from every non-terminal state.
type State int

const (
	StateCreated State = iota
	StateResolving
	StateClassified
	StateFetchingAssets
	StateDelivering
	StateCompleted
	StateFailed
)

var stateNames = map[State]string{
	StateCreated:        "created",
	StateResolving:      "resolving",
	StateClassified:     "classified",
	StateFetchingAssets: "fetching_assets",
	StateDelivering:     "delivering",
	StateCompleted:      "completed",
	StateFailed:         "failed",
}

func (s State) String() string { return stateNames[s] }

// Request is one inbound link to process. Text is the raw message; the
// pipeline extracts the link itself.
type Request struct {
	Text            string
	ChatID          int64
	StatusMessageID int
}

// Outcome summarizes what one run delivered.
type Outcome struct {
	State            State
	Kind             media.Kind
	ImagesSent       int
	AudioSent        bool
	VideoSent        bool
	AudioSubstituted bool
	FinalStatus      string
	Err              error
}

// Pipeline runs requests. Requests share nothing; a Pipeline may run any
// number of them concurrently.
type Pipeline struct {
	extractor      Extractor
	transport      Transport
	transcoder     Transcoder
	images         ImageFetcher
	policy         media.ClassifyPolicy
	linkHosts      []string
	statusInterval time.Duration
}

// Options are the injected collaborators and policy for a Pipeline.
type Options struct {
	Extractor  Extractor
	Transport  Transport
	Transcoder Transcoder
	Images     ImageFetcher
	Policy     media.ClassifyPolicy
	LinkHosts  []string
	// StatusInterval throttles status-message edits. Zero means 1.5s.
	StatusInterval time.Duration
}

func New(opts Options) *Pipeline {
	if opts.StatusInterval <= 0 {
		opts.StatusInterval = 1500 * time.Millisecond
	}
	return &Pipeline{
		extractor:      opts.Extractor,
		transport:      opts.Transport,
		transcoder:     opts.Transcoder,
		images:         opts.Images,
		policy:         opts.Policy,
		linkHosts:      opts.LinkHosts,
		statusInterval: opts.StatusInterval,
	}
}

// ExtractLink returns the first whitespace-separated token of text that
// contains one of the host markers.
func ExtractLink(text string, hosts []string) (string, bool) {
	for _, field := range strings.Fields(text) {
		for _, host := range hosts {
			if host != "" && strings.Contains(field, host) {
				return field, true
			}
		}
	}
	return "", false
}

// Run processes one request to a terminal state and returns the outcome.
// The workspace is torn down unconditionally before Run returns.
func (p *Pipeline) Run(ctx context.Context, req Request) Outcome {
	id := requestID()
	out := Outcome{State: StateCreated}

	rep := status.NewReporter(p.statusInterval, func(text string) {
		if err := p.transport.EditStatus(ctx, req.ChatID, req.StatusMessageID, text); err != nil {
			logger.WarnCF("pipeline", "Status edit failed", map[string]interface{}{
				"request": id,
				"error":   err.Error(),
			})
		}
	})
	defer rep.Flush()
	rep.Seed(InitialStatus)

	link, ok := ExtractLink(req.Text, p.linkHosts)
	if !ok {
		return p.fail(&out, rep, id, ErrInvalidInput, "⚠️ Send TikTok link")
	}

	ws, err := NewWorkspace()
	if err != nil {
		return p.fail(&out, rep, id, err, "")
	}
	defer ws.Cleanup()

	p.transition(&out, id, StateResolving)

	info, err := p.extractor.Resolve(ctx, link)
	if err != nil {
		return p.fail(&out, rep, id, &ResolutionError{URL: link, Err: err}, "")
	}

	p.transition(&out, id, StateClassified)
	out.Kind = p.policy.Classify(info)
	logger.InfoCF("pipeline", "Content classified", map[string]interface{}{
		"request":  id,
		"kind":     out.Kind.String(),
		"duration": info.Duration,
		"thumbs":   len(info.Thumbs),
	})

	p.transition(&out, id, StateFetchingAssets)
	switch out.Kind {
	case media.KindCarousel:
		err = p.runCarousel(ctx, req, link, info, ws, rep, id, &out)
	default:
		err = p.runVideo(ctx, req, link, info, ws, rep, id, &out)
	}
	if err != nil {
		return p.fail(&out, rep, id, err, "")
	}

	p.transition(&out, id, StateCompleted)
	out.FinalStatus = finalStatus(&out)
	rep.Set(out.FinalStatus)
	return out
}

func (p *Pipeline) transition(out *Outcome, id string, next State) {
	logger.DebugCF("pipeline", "State transition", map[string]interface{}{
		"request": id,
		"from":    out.State.String(),
		"to":      next.String(),
	})
	out.State = next
}

func (p *Pipeline) fail(out *Outcome, rep *status.Reporter, id string, err error, text string) Outcome {
	logger.ErrorCF("pipeline", "Request failed", map[string]interface{}{
		"request": id,
		"state":   out.State.String(),
		"error":   err.Error(),
	})
	out.State = StateFailed
	out.Err = err
	if text == "" {
		text = "❌ " + Truncate(err.Error(), failureTextLimit)
	}
	out.FinalStatus = text
	rep.Set(text)
	return *out
}

// finalStatus composes the closing message from what was actually
// delivered, so undeliverable assets and the audio substitution are both
// visible to the user.
func finalStatus(out *Outcome) string {
	var undelivered []string
	if out.Kind == media.KindSingleVideo && !out.VideoSent {
		undelivered = append(undelivered, "video")
	}
	if out.Kind == media.KindCarousel && out.ImagesSent == 0 {
		undelivered = append(undelivered, "images")
	}
	if !out.AudioSent {
		undelivered = append(undelivered, "audio")
	}
	if len(undelivered) > 0 {
		return "⚠️ Done, but could not deliver: " + strings.Join(undelivered, ", ")
	}
	if out.AudioSubstituted {
		return "🎉 Done! Audio sent as video track."
	}
	return "🎉 Done!"
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
