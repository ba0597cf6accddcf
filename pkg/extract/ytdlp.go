// Package extract talks to the media-extraction service (yt-dlp) for
// metadata resolution and rendition downloads.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/jossbot/joss/pkg/logger"
	"github.com/jossbot/joss/pkg/media"
	"github.com/jossbot/joss/pkg/status"
)

// Format selectors handed to the extraction service.
const (
	// FormatVideo asks for the best muxed rendition capped at 1080p,
	// falling back to the best combined stream pair.
	FormatVideo = "bv[height<=1080]+ba/b"
	// FormatAudio asks for the best audio-only rendition.
	FormatAudio = "ba[ext=m4a]/ba"

	progressInterval = 500 * time.Millisecond
)

// partialExts are in-flight download artifacts, never the finished file.
var partialExts = []string{".part", ".ytdl"}

// Service runs the yt-dlp binary. Each call is bounded by the configured
// timeout on top of whatever deadline the caller's context carries.
type Service struct {
	timeout time.Duration
}

func NewService(timeout time.Duration) *Service {
	return &Service{timeout: timeout}
}

// Install makes sure a yt-dlp binary is available, downloading one if
// needed. A failure is not fatal: the binary may already be on PATH.
func Install(ctx context.Context) {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		logger.WarnCF("extract", "yt-dlp self-install failed, relying on PATH", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// probeInfo is the slice of the extraction service's JSON dump we care about.
type probeInfo struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Duration   float64 `json:"duration"`
	Thumbnails []struct {
		URL string `json:"url"`
	} `json:"thumbnails"`
}

// Resolve fetches metadata for a URL without downloading any media.
func (s *Service) Resolve(ctx context.Context, url string) (*media.Info, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	dl := ytdlp.New().
		NoWarnings().
		SkipDownload().
		DumpSingleJSON()

	res, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("resolve metadata: %w", err)
	}

	var probe probeInfo
	if err := json.Unmarshal([]byte(res.Stdout), &probe); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if probe.ID == "" {
		return nil, fmt.Errorf("metadata has no id")
	}

	info := &media.Info{
		ID:       probe.ID,
		Title:    probe.Title,
		Duration: probe.Duration,
	}
	for _, t := range probe.Thumbnails {
		if t.URL != "" {
			info.Thumbs = append(info.Thumbs, media.Thumbnail{URL: t.URL})
		}
	}
	return info, nil
}

// FetchVideo downloads the best ≤1080p rendition into dir and returns the
// local path. Byte-level progress is reported through onProgress when the
// service exposes it.
func (s *Service) FetchVideo(ctx context.Context, url, dir string, onProgress func(status.Progress)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	dl := ytdlp.New().
		NoWarnings().
		ForceOverwrites().
		Format(FormatVideo).
		Output(filepath.Join(dir, "%(id)s.%(ext)s"))

	if onProgress != nil {
		dl.ProgressFunc(progressInterval, func(up ytdlp.ProgressUpdate) {
			onProgress(toProgress(up))
		})
	}

	if _, err := dl.Run(ctx, url); err != nil {
		return "", fmt.Errorf("download video: %w", err)
	}

	path, err := findDownloaded(dir)
	if err != nil {
		return "", fmt.Errorf("locate downloaded video: %w", err)
	}
	return path, nil
}

// FetchAudio downloads the best audio-only rendition to the fixed dest path.
func (s *Service) FetchAudio(ctx context.Context, url, dest string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	dl := ytdlp.New().
		NoWarnings().
		ForceOverwrites().
		Format(FormatAudio).
		Output(dest)

	if _, err := dl.Run(ctx, url); err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}

	st, err := os.Stat(dest)
	if err != nil {
		return "", fmt.Errorf("audio file missing after download: %w", err)
	}
	if st.Size() == 0 {
		return "", fmt.Errorf("audio file is empty")
	}
	return dest, nil
}

func toProgress(up ytdlp.ProgressUpdate) status.Progress {
	var p status.Progress
	if up.TotalBytes > 0 {
		p.Percent = int(float64(up.DownloadedBytes) / float64(up.TotalBytes) * 100)
	}
	if !up.Started.IsZero() {
		elapsed := time.Since(up.Started)
		if elapsed.Seconds() > 0 {
			bps := float64(up.DownloadedBytes) / elapsed.Seconds()
			p.Rate = fmt.Sprintf("%.1fMB/s", bps/1024/1024)
		}
	}
	return p
}

// findDownloaded returns the single finished media file in dir, skipping
// in-flight download artifacts.
func findDownloaded(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || isPartial(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = filepath.Join(dir, e.Name())
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no finished file in %s", dir)
	}
	return newest, nil
}

func isPartial(name string) bool {
	for _, ext := range partialExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
