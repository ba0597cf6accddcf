// Package transcode strips the audio track out of a downloaded video by
// invoking ffmpeg as an external process.
package transcode

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// Encoding settings for the derived audio track.
const (
	AudioCodec   = "libmp3lame"
	AudioBitrate = "128k"

	DefaultBinary = "ffmpeg"
)

// FFmpeg invokes the ffmpeg binary. The zero timeout means the caller's
// context alone bounds the run.
type FFmpeg struct {
	binary  string
	timeout time.Duration
}

func NewFFmpeg(binary string, timeout time.Duration) *FFmpeg {
	if binary == "" {
		binary = DefaultBinary
	}
	return &FFmpeg{binary: binary, timeout: timeout}
}

// BuildArgs builds the ffmpeg argument list for an audio-only extraction.
func BuildArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-c:a", AudioCodec,
		"-b:a", AudioBitrate,
		outputPath,
	}
}

// ExtractAudio encodes the audio track of inputPath into outputPath.
// Success requires a zero exit code and a non-empty output file; a partial
// output is removed on failure.
func (f *FFmpeg) ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, f.binary, BuildArgs(inputPath, outputPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("ffmpeg: %w: %s", err, tail(string(out), 200))
	}

	st, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("ffmpeg produced no output: %w", err)
	}
	if st.Size() == 0 {
		os.Remove(outputPath)
		return fmt.Errorf("ffmpeg produced empty output")
	}
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
