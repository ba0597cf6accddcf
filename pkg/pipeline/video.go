package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jossbot/joss/pkg/logger"
	"github.com/jossbot/joss/pkg/media"
	"github.com/jossbot/joss/pkg/status"
)

// legacyVideoExt is the container extension typical chat-client players
// reject; such files are renamed to .mp4 in place without re-encoding.
const legacyVideoExt = ".webm"

// runVideo handles the single-video branch: download, deliver the video,
// then derive and deliver the audio track. The video is always delivered
// before derivation starts so the primary content reaches the user first.
func (p *Pipeline) runVideo(ctx context.Context, req Request, link string, info *media.Info, ws *Workspace, rep *status.Reporter, id string, out *Outcome) error {
	path, err := p.extractor.FetchVideo(ctx, link, ws.Dir(), func(pr status.Progress) {
		rep.SetProgress("⏳ Downloading", pr)
	})
	if err != nil {
		return &FetchError{Asset: "video", Err: err}
	}

	path, err = NormalizeContainer(path)
	if err != nil {
		return &FetchError{Asset: "video", Err: err}
	}

	p.transition(out, id, StateDelivering)
	rep.Set("📤 Sending video...")

	caption := "🎬 " + titleOr(info, "Video")
	if err := p.transport.SendVideo(ctx, req.ChatID, path, caption); err != nil {
		logger.WarnCF("pipeline", "Video delivery failed", map[string]interface{}{
			"request": id,
			"error":   err.Error(),
		})
	} else {
		out.VideoSent = true
	}

	rep.Set("🎧 Extracting audio...")
	audioPath := ws.Path(info.ID + ".mp3")
	if err := p.transcoder.ExtractAudio(ctx, path, audioPath); err != nil {
		// Chat clients accept a video container in the audio slot, so the
		// original file stands in for the track we could not derive.
		logger.WarnCF("pipeline", "Transcode failed, substituting video file", map[string]interface{}{
			"request": id,
			"error":   err.Error(),
		})
		audioPath = path
		out.AudioSubstituted = true
	}

	if err := p.transport.SendAudio(ctx, req.ChatID, audioPath, titleOr(info, "Audio")); err != nil {
		logger.WarnCF("pipeline", "Audio delivery failed", map[string]interface{}{
			"request": id,
			"error":   err.Error(),
		})
	} else {
		out.AudioSent = true
	}
	return nil
}

// NormalizeContainer renames a legacy-container download to .mp4 without
// touching the bytes. Other extensions pass through unchanged.
func NormalizeContainer(path string) (string, error) {
	if !strings.HasSuffix(path, legacyVideoExt) {
		return path, nil
	}
	newPath := strings.TrimSuffix(path, legacyVideoExt) + ".mp4"
	if err := os.Rename(path, newPath); err != nil {
		return "", fmt.Errorf("normalize container: %w", err)
	}
	return newPath, nil
}

func titleOr(info *media.Info, fallback string) string {
	if info.Title != "" {
		return info.Title
	}
	return fallback
}
