package media

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Attributes are the probed media properties of a downloaded file.
// They complete the episode file name: resolution, codecs, and the
// audio channel layout in release notation.
type Attributes struct {
	Height      int
	VideoCodec  string
	AudioCodec  string
	AudioLayout string
}

// channelLayouts maps ffprobe channel layout names to release notation.
// Broadcast streams only ever carry these three.
var channelLayouts = map[string]string{
	"mono":      "1.0",
	"stereo":    "2.0",
	"5.1(side)": "5.1",
}

// Prober inspects video files with ffprobe.
//
// The probe binary is configurable (Settings.ProbeBin); the run function
// is injectable so tests can feed canned ffprobe output without spawning
// processes.
type Prober struct {
	bin string
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewProber creates a Prober that invokes the given ffprobe binary.
func NewProber(bin string) *Prober {
	return &Prober{
		bin: bin,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Probe inspects the file at path and returns its media attributes.
func (p *Prober) Probe(ctx context.Context, path string) (Attributes, error) {
	height, err := p.videoHeight(ctx, path)
	if err != nil {
		return Attributes{}, err
	}
	vcodec, err := p.videoCodec(ctx, path)
	if err != nil {
		return Attributes{}, err
	}
	acodec, err := p.audioCodec(ctx, path)
	if err != nil {
		return Attributes{}, err
	}
	layout, err := p.audioLayout(ctx, path)
	if err != nil {
		return Attributes{}, err
	}

	return Attributes{
		Height:      height,
		VideoCodec:  vcodec,
		AudioCodec:  acodec,
		AudioLayout: layout,
	}, nil
}

// videoHeight returns the first video stream's height in pixels.
func (p *Prober) videoHeight(ctx context.Context, path string) (int, error) {
	out, err := p.run(ctx, p.bin,
		"-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=width,height", "-of", "csv=p=0", path)
	if err != nil {
		return 0, fmt.Errorf("probing video dimensions: %w", err)
	}

	fields := strings.Split(strings.TrimSpace(string(out)), ",")
	if len(fields) != 2 {
		return 0, fmt.Errorf("unexpected dimensions output %q", strings.TrimSpace(string(out)))
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("unexpected height %q", fields[1])
	}
	return height, nil
}

// videoCodec returns the first video stream's codec name, e.g. "h264".
func (p *Prober) videoCodec(ctx context.Context, path string) (string, error) {
	out, err := p.run(ctx, p.bin,
		"-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=codec_name",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	if err != nil {
		return "", fmt.Errorf("probing video codec: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// audioCodec returns the first audio stream's codec name, uppercased
// for release notation ("AAC").
func (p *Prober) audioCodec(ctx context.Context, path string) (string, error) {
	out, err := p.run(ctx, p.bin,
		"-v", "error", "-select_streams", "a:0",
		"-show_entries", "stream=codec_name",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	if err != nil {
		return "", fmt.Errorf("probing audio codec: %w", err)
	}
	return strings.ToUpper(strings.TrimSpace(string(out))), nil
}

// audioLayout returns the first audio stream's channel layout in
// release notation. An unrecognized layout is an error rather than a
// guess, since it would produce a misleading file name.
func (p *Prober) audioLayout(ctx context.Context, path string) (string, error) {
	out, err := p.run(ctx, p.bin,
		"-show_entries", "stream=channel_layout", "-select_streams", "a:0",
		"-of", "compact=p=0:nk=1", "-v", "0", path)
	if err != nil {
		return "", fmt.Errorf("probing channel layout: %w", err)
	}

	layout := strings.TrimSpace(string(out))
	mapped, ok := channelLayouts[layout]
	if !ok {
		return "", fmt.Errorf("unknown audio channel layout %q", layout)
	}
	return mapped, nil
}
