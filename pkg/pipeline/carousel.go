package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/jossbot/joss/pkg/logger"
	"github.com/jossbot/joss/pkg/media"
	"github.com/jossbot/joss/pkg/status"
)

// carouselAudioName is the fixed workspace name for the carousel audio track.
const carouselAudioName = "audio.m4a"

// runCarousel handles the carousel branch: download the selected images
// concurrently with per-image failure isolation, then fetch the audio
// track, then deliver images followed by audio. An image failure skips
// that image only; the audio fetch failing is fatal because there is no
// fallback asset to substitute.
func (p *Pipeline) runCarousel(ctx context.Context, req Request, link string, info *media.Info, ws *Workspace, rep *status.Reporter, id string, out *Outcome) error {
	urls := p.policy.SelectImages(info)
	rep.Set(fmt.Sprintf("🖼 Fetching %d images...", len(urls)))

	// Image downloads are mutually independent, so they run concurrently;
	// results keep candidate order.
	images := make([][]byte, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			data, err := p.images.Fetch(ctx, url)
			if err != nil {
				logger.WarnCF("pipeline", "Image fetch failed, skipping", map[string]interface{}{
					"request": id,
					"url":     url,
					"error":   err.Error(),
				})
				return
			}
			images[i] = data
		}(i, url)
	}
	wg.Wait()

	// Every image has been attempted; only now is the audio fetched.
	audioPath, err := p.extractor.FetchAudio(ctx, link, ws.Path(carouselAudioName))
	if err != nil {
		return &FetchError{Asset: "audio", Err: err}
	}

	p.transition(out, id, StateDelivering)
	rep.Set("📤 Sending images...")

	for i, data := range images {
		if data == nil {
			continue
		}
		name := fmt.Sprintf("img-%02d%s", i+1, media.ImageExt(urls[i]))
		if err := p.transport.SendPhoto(ctx, req.ChatID, data, name); err != nil {
			logger.WarnCF("pipeline", "Photo delivery failed, continuing", map[string]interface{}{
				"request": id,
				"image":   name,
				"error":   err.Error(),
			})
			continue
		}
		out.ImagesSent++
	}

	rep.Set("🎧 Sending audio...")
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
