package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Invoker fetches a resolved video URL into a destination file.
//
// The production implementation shells out to an external downloader;
// the interface exists so orchestration can be tested without one.
type Invoker interface {
	Fetch(ctx context.Context, videoURL, destPath string) error
}

// DownloadError is returned when the external downloader exits
// non-zero. It carries the exit code and the tail of stderr for the
// human-readable report.
type DownloadError struct {
	Bin      string
	ExitCode int
	Stderr   string
}

func (e *DownloadError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with code %d: %s", e.Bin, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s exited with code %d", e.Bin, e.ExitCode)
}

// ExecInvoker invokes an external video downloader as a subprocess.
//
// The binary must accept the youtube-dl argument convention:
//
//	<bin> -o <destPath> <videoURL>
//
// which both youtube-dl and yt-dlp do.
type ExecInvoker struct {
	// Bin is the downloader executable name or path.
	Bin string
}

// Fetch runs the downloader for one video URL, writing to destPath.
func (i *ExecInvoker) Fetch(ctx context.Context, videoURL, destPath string) error {
	cmd := exec.CommandContext(ctx, i.Bin, "-o", destPath, videoURL)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &DownloadError{
			Bin:      i.Bin,
			ExitCode: exitErr.ExitCode(),
			Stderr:   lastLine(stderr.String()),
		}
	}
	return fmt.Errorf("running %s: %w", i.Bin, err)
}

// lastLine returns the final non-empty line of s; downloaders print
// their actual error there, after pages of progress output.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
