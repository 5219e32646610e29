package media

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestProber_Probe(t *testing.T) {
	p := NewProber("ffprobe")
	// The codec query is identical for video and audio except for the
	// stream selector, so key canned outputs on the selector.
	p.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		joined := strings.Join(args, " ")
		switch {
		case strings.Contains(joined, "stream=width,height"):
			return []byte("1920,1080\n"), nil
		case strings.Contains(joined, "v:0") && strings.Contains(joined, "codec_name"):
			return []byte("h264\n"), nil
		case strings.Contains(joined, "a:0") && strings.Contains(joined, "codec_name"):
			return []byte("aac\n"), nil
		case strings.Contains(joined, "channel_layout"):
			return []byte("stereo\n"), nil
		}
		return nil, errors.New("unexpected probe query: " + joined)
	}

	attrs, err := p.Probe(context.Background(), "video.mp4")
	if err != nil {
		t.Fatalf("Probe(): %v", err)
	}

	if attrs.Height != 1080 {
		t.Errorf("Height = %d, want 1080", attrs.Height)
	}
	if attrs.VideoCodec != "h264" {
		t.Errorf("VideoCodec = %q, want %q", attrs.VideoCodec, "h264")
	}
	if attrs.AudioCodec != "AAC" {
		t.Errorf("AudioCodec = %q, want %q", attrs.AudioCodec, "AAC")
	}
	if attrs.AudioLayout != "2.0" {
		t.Errorf("AudioLayout = %q, want %q", attrs.AudioLayout, "2.0")
	}
}

func TestProber_UnknownChannelLayout(t *testing.T) {
	p := NewProber("ffprobe")
	p.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		joined := strings.Join(args, " ")
		switch {
		case strings.Contains(joined, "stream=width,height"):
			return []byte("1280,720\n"), nil
		case strings.Contains(joined, "channel_layout"):
			return []byte("7.1\n"), nil
		default:
			return []byte("h264\n"), nil
		}
	}

	if _, err := p.Probe(context.Background(), "video.mp4"); err == nil {
		t.Error("expected error for unknown channel layout")
	}
}

func TestProber_BadDimensions(t *testing.T) {
	p := NewProber("ffprobe")
	p.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("garbage\n"), nil
	}

	if _, err := p.Probe(context.Background(), "video.mp4"); err == nil {
		t.Error("expected error for unparseable dimensions")
	}
}
