// Package config provides configuration management for opb-downloader.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to model.NamingConfig for path computation
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Fetches from watch.opb.org with the KOPB callsign
//	// Downloads sequentially into the current directory
//	// Skips episodes that already exist on disk
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Configuration Options
//
// Settings includes options for:
//   - The station base URL and player callsign
//   - Output directory and release-group naming
//   - Specials inclusion and duplicate skipping
//   - Fetch retry behavior and concurrency limits
//   - External downloader and ffprobe binaries
//   - Thumbnail saving and resizing
package config
