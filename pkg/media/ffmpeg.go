package media

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
)

// Transcoder converts between audio container formats and measures duration.
type Transcoder interface {
	ConvertToAAC(ctx context.Context, inputPath, outputPath string) error
	ConvertToWAV(ctx context.Context, inputPath, outputPath string) error
	Duration(ctx context.Context, path string) (float64, error)
}

// FFmpeg shells out to the ffmpeg/ffprobe binaries on PATH.
type FFmpeg struct{}

var _ Transcoder = &FFmpeg{}

func NewFFmpeg() *FFmpeg {
	return &FFmpeg{}
}

// ConvertToAAC re-encodes the input into an AAC container (.m4a/.aac),
// overwriting any existing output.
func (f *FFmpeg) ConvertToAAC(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-i", inputPath, "-c:a", "aac", outputPath, "-y")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg aac convert: %w (output: %s)", err, string(out))
	}
	return nil
}

// ConvertToWAV converts the input to WAV, overwriting any existing output.
func (f *FFmpeg) ConvertToWAV(ctx context.Context, inputPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-i", inputPath, outputPath, "-y")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg wav convert: %w (output: %s)", err, string(out))
	}
	return nil
}

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration probes the file and returns its length in seconds.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "quiet", "-show_format", "-print_format", "json", path)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	return seconds, nil
}

// DurationMillis converts a duration in seconds to integer milliseconds,
// rounded up. The messaging platform rejects fractional durations.
func DurationMillis(seconds float64) int64 {
	return int64(math.Ceil(seconds * 1000))
}
