package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/opbdl/opb-downloader/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Station settings
	BaseURL  string `json:"base_url"`
	Callsign string `json:"callsign"`

	// Download settings
	OutputDir             string  `json:"output_dir"`
	ReleaseGroup          string  `json:"release_group"`
	IncludeSpecials       bool    `json:"include_specials"`
	SkipDuplicates        bool    `json:"skip_duplicates"`
	MaxConcurrentEpisodes int     `json:"max_concurrent_episodes"`
	FetchMaxRetries       int     `json:"fetch_max_retries"`
	FetchRetryCooldown    float64 `json:"fetch_retry_cooldown"`
	FetchRetryExponent    float64 `json:"fetch_retry_exponent"`

	// External tools
	DownloaderBin string `json:"downloader_bin"`
	ProbeBin      string `json:"probe_bin"`

	// Thumbnail settings
	SaveThumbnails    bool `json:"save_thumbnails"`
	ThumbnailResize   bool `json:"thumbnail_resize"`
	ThumbnailMaxSize  int  `json:"thumbnail_max_size"`
	ConvertThumbToJPG bool `json:"convert_thumbnail_to_jpg"`

	// Rename retry settings (the downloader may briefly hold the file)
	RenameMaxRetries    int     `json:"rename_max_retries"`
	RenameRetryCooldown float64 `json:"rename_retry_cooldown"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		BaseURL:  "https://watch.opb.org",
		Callsign: "KOPB",

		OutputDir:             ".",
		IncludeSpecials:       true,
		SkipDuplicates:        true,
		MaxConcurrentEpisodes: 1,
		FetchMaxRetries:       5,
		FetchRetryCooldown:    0.2,
		FetchRetryExponent:    4.0,

		DownloaderBin: "yt-dlp",
		ProbeBin:      "ffprobe",

		SaveThumbnails:    false,
		ThumbnailResize:   true,
		ThumbnailMaxSize:  1000,
		ConvertThumbToJPG: true,

		RenameMaxRetries:    5,
		RenameRetryCooldown: 1.0,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error; defaults are returned. Values present
// in the file override defaults field by field.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToNamingConfig converts settings to a model.NamingConfig.
func (s *Settings) ToNamingConfig() *model.NamingConfig {
	return &model.NamingConfig{
		OutputDir:    s.OutputDir,
		ReleaseGroup: s.ReleaseGroup,
	}
}
