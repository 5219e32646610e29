package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}
	if settings.BaseURL != "https://watch.opb.org" {
		t.Errorf("BaseURL = %q, want default", settings.BaseURL)
	}
	if settings.MaxConcurrentEpisodes != 1 {
		t.Errorf("MaxConcurrentEpisodes = %d, want 1", settings.MaxConcurrentEpisodes)
	}
}

func TestLoad_PartialFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"release_group": "GRP", "downloader_bin": "youtube-dl"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if settings.ReleaseGroup != "GRP" {
		t.Errorf("ReleaseGroup = %q, want %q", settings.ReleaseGroup, "GRP")
	}
	if settings.DownloaderBin != "youtube-dl" {
		t.Errorf("DownloaderBin = %q, want %q", settings.DownloaderBin, "youtube-dl")
	}
	// Untouched fields keep their defaults
	if settings.ProbeBin != "ffprobe" {
		t.Errorf("ProbeBin = %q, want default", settings.ProbeBin)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	settings := DefaultSettings()
	settings.ReleaseGroup = "GRP"
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save(): %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if loaded.ReleaseGroup != "GRP" {
		t.Errorf("ReleaseGroup = %q, want %q", loaded.ReleaseGroup, "GRP")
	}
}

func TestToNamingConfig(t *testing.T) {
	settings := DefaultSettings()
	settings.OutputDir = "/videos"
	settings.ReleaseGroup = "GRP"

	cfg := settings.ToNamingConfig()
	if cfg.OutputDir != "/videos" || cfg.ReleaseGroup != "GRP" {
		t.Errorf("ToNamingConfig() = %+v", cfg)
	}
}
