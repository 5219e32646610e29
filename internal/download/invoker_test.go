package download

import (
	"strings"
	"testing"
)

func TestDownloadError_Error(t *testing.T) {
	withStderr := &DownloadError{Bin: "yt-dlp", ExitCode: 1, Stderr: "ERROR: unable to download video data"}
	if got := withStderr.Error(); got != "yt-dlp exited with code 1: ERROR: unable to download video data" {
		t.Errorf("Error() = %q", got)
	}

	bare := &DownloadError{Bin: "yt-dlp", ExitCode: 101}
	if got := bare.Error(); got != "yt-dlp exited with code 101" {
		t.Errorf("Error() = %q", got)
	}
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "ERROR: 403 Forbidden", "ERROR: 403 Forbidden"},
		{"progress then error", "[download]  42%\n[download]  99%\nERROR: timeout\n", "ERROR: timeout"},
		{"trailing blanks", "ERROR: gone\n\n  \n", "ERROR: gone"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastLine(tt.input); got != tt.want {
				t.Errorf("lastLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCheckDependencies(t *testing.T) {
	// The Go toolchain itself is the one binary guaranteed on PATH here.
	if err := CheckDependencies("go"); err != nil {
		t.Errorf("CheckDependencies(go): %v", err)
	}

	err := CheckDependencies("definitely-not-a-binary-xyz")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "definitely-not-a-binary-xyz") {
		t.Errorf("error should name the missing binary: %v", err)
	}
}
