// Package model defines the core data structures used throughout
// opb-downloader.
//
// # Show
//
// Show describes a program on the station site: its URL key, the season
// numbers it carries, and whether a specials catalog exists.
//
// # Season
//
// Season represents one season (or the specials group) with its computed
// destination folder:
//
//	season := model.NewSeason(url, "Oregon Art Beat", 3, "", namingConfig)
//	fmt.Println(season.Path) // "Oregon.Art.Beat.S03.WEB.h264.AAC"
//
// # Episode
//
// Episode carries the catalog identity (number, air date, or group label)
// and, after probing, the media attributes that complete the file name:
//
//	episode.Height = 1080
//	episode.VideoCodec = "h264"
//	episode.AudioCodec = "AAC"
//	episode.AudioLayout = "2.0"
//	fmt.Println(episode.FileName(namingConfig))
//	// "Oregon.Art.Beat.S03E07.Title.1080p.WEB.h264.AAC.2.0.mp4"
//
// # Naming
//
// NamingConfig controls the output directory and the optional release
// group appended to folder and file names.
package model
