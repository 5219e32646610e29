package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Episode represents a single downloadable episode within a season.
//
// Episodes are identified in one of three ways, matching what the station
// publishes in the catalog meta line:
//   - a season/episode number ("S3 Ep7")
//   - an original air date when no episode number exists
//   - a group label for specials and extras
//
// The media attributes (Height, VideoCodec, AudioCodec, AudioLayout) are
// unknown until the file has been downloaded and probed; the final file
// name cannot be computed before then.
type Episode struct {
	// Season is a reference to the containing season.
	Season *Season

	// Title is the episode's display title.
	Title string

	// URL is the absolute URL of the episode's video page.
	URL string

	// Num is the episode number within the season. Zero when the
	// catalog lists no number.
	Num int

	// AirDate is the original air date, used for naming when Num is
	// zero. The zero time means no date was listed.
	AirDate time.Time

	// ExtraGroup is the meta label used when the episode has neither
	// a number nor an air date (e.g. "Special").
	ExtraGroup string

	// ThumbnailURL is the catalog thumbnail image URL, if any.
	ThumbnailURL string

	// Height is the probed video height in pixels.
	Height int

	// VideoCodec is the probed video codec name (e.g. "h264").
	VideoCodec string

	// AudioCodec is the probed audio codec name (e.g. "AAC").
	AudioCodec string

	// AudioLayout is the probed channel layout ("1.0", "2.0", "5.1").
	AudioLayout string
}

// NormalizedTitle returns the episode title in dotted release form.
//
// Spaces, slashes, dashes and pipes become dots; quotes and other
// punctuation are dropped; runs of dots collapse to one.
func (e *Episode) NormalizedTitle() string {
	replacer := strings.NewReplacer(
		" ", ".",
		";", "",
		",", "",
		"/", ".",
		"\\", ".",
		"'", "",
		`"`, "",
		"-", ".",
		"?", "",
		":", "",
		"|", ".",
	)
	dotted := replacer.Replace(e.Title)
	return regexp.MustCompile(`\.+`).ReplaceAllString(dotted, ".")
}

// FileName returns the episode's final file name, which requires the
// media attributes to have been populated from the downloaded file.
//
// The shape depends on how the episode is identified:
//
//	Show.S03E07.Title.1080p.WEB.h264.AAC.2.0-GRP.mp4   numbered
//	Show.S03.2021-05-14.Title.1080p.WEB.h264.AAC.2.0.mp4  dated
//	Show.Special.Title.720p.WEB.h264.AAC.2.0.mp4       grouped
func (e *Episode) FileName(cfg *NamingConfig) string {
	return fmt.Sprintf("%s.%s.%s.%dp.WEB.%s.%s.%s%s.mp4",
		e.Season.NormalizedName(),
		e.marker(),
		e.NormalizedTitle(),
		e.Height,
		e.VideoCodec,
		e.AudioCodec,
		e.AudioLayout,
		e.groupSuffix(cfg),
	)
}

// DupePattern returns a regular expression matching any existing copy of
// this episode in its season folder, at any resolution or codec.
func (e *Episode) DupePattern(cfg *NamingConfig) string {
	return regexp.QuoteMeta(e.Season.NormalizedName()+"."+e.marker()+"."+e.NormalizedTitle()+".") +
		`\d{2,4}` + `p\.WEB\.\w+\.\w+\.\d\.\d` +
		regexp.QuoteMeta(e.groupSuffix(cfg)+".mp4")
}

// marker returns the identifying middle portion of the file name:
// "S03E07", "S03.2021-05-14", or the extra group label.
func (e *Episode) marker() string {
	switch {
	case e.Season.Num > 0 && e.Num > 0:
		return fmt.Sprintf("S%02dE%02d", e.Season.Num, e.Num)
	case e.Season.Num > 0 && !e.AirDate.IsZero():
		return fmt.Sprintf("S%02d.%s", e.Season.Num, e.AirDate.Format("2006-01-02"))
	case e.ExtraGroup != "":
		return dotName(sanitizeName(e.ExtraGroup))
	default:
		return dotName(sanitizeName(e.Season.ExtraGroup))
	}
}

func (e *Episode) groupSuffix(cfg *NamingConfig) string {
	if cfg.ReleaseGroup == "" {
		return ""
	}
	return "-" + cfg.ReleaseGroup
}
