package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// sourceTag is the static part of every folder and file name. The station
// serves H.264 video with AAC audio regardless of resolution, so the tag
// never varies per episode.
const sourceTag = "WEB.h264.AAC"

// Show identifies a program on the station site and the seasons it carries.
//
// A Show is built from the show's episode listing page. Seasons holds the
// season numbers in ascending order; HasSpecials is true when the show has
// a specials/extras catalog in addition to numbered seasons.
type Show struct {
	// Key is the URL key identifying the show, e.g. "oregon-art-beat".
	Key string

	// Seasons lists the available season numbers, ascending.
	Seasons []int

	// HasSpecials indicates the show has a specials catalog page.
	HasSpecials bool
}

// Season represents one season (or the specials group) of a show.
//
// The destination folder name is computed when creating a season via
// NewSeason, using the show title from the season page and the naming
// configuration:
//
//	cfg := &NamingConfig{OutputDir: ".", ReleaseGroup: "GRP"}
//	season := NewSeason(url, "Oregon Art Beat", 3, "", cfg)
//	// season.Path = "Oregon.Art.Beat.S03.WEB.h264.AAC-GRP"
type Season struct {
	// URL is the season catalog page URL.
	URL string

	// ShowTitle is the show's display title from the season page breadcrumb.
	ShowTitle string

	// Num is the season number. Zero when this is a non-season group
	// (specials, extras), in which case ExtraGroup is set.
	Num int

	// ExtraGroup is the catalog heading for non-season groups such as
	// "Specials". Empty for numbered seasons.
	ExtraGroup string

	// Episodes contains the season's episodes, sorted by episode number.
	Episodes []*Episode

	// Path is the computed destination directory for this season.
	Path string
}

// NamingConfig holds the settings that shape folder and file names.
type NamingConfig struct {
	// OutputDir is the directory season folders are created under.
	OutputDir string

	// ReleaseGroup, when non-empty, is appended to folder and file
	// names as "-GROUP".
	ReleaseGroup string
}

// NewSeason creates a Season with its destination path computed.
//
// Exactly one of num and extraGroup should be set: num for a numbered
// season, extraGroup for a specials/extras catalog.
func NewSeason(url, showTitle string, num int, extraGroup string, cfg *NamingConfig) *Season {
	s := &Season{
		URL:        url,
		ShowTitle:  showTitle,
		Num:        num,
		ExtraGroup: extraGroup,
	}
	s.Path = filepath.Join(cfg.OutputDir, s.FolderName(cfg))
	return s
}

// NormalizedName returns the show title in dotted release form:
// spaces become dots and semicolons are dropped.
func (s *Season) NormalizedName() string {
	return dotName(s.ShowTitle)
}

// FolderName returns the season's destination folder name, e.g.
// "Oregon.Art.Beat.S03.WEB.h264.AAC" or
// "Oregon.Art.Beat.Specials.WEB.h264.AAC-GRP".
func (s *Season) FolderName(cfg *NamingConfig) string {
	group := ""
	if cfg.ReleaseGroup != "" {
		group = "-" + cfg.ReleaseGroup
	}
	if s.Num > 0 {
		return fmt.Sprintf("%s.S%02d.%s%s", s.NormalizedName(), s.Num, sourceTag, group)
	}
	return fmt.Sprintf("%s.%s.%s%s", s.NormalizedName(), dotName(sanitizeName(s.ExtraGroup)), sourceTag, group)
}

// SortEpisodes orders the season's episodes by episode number.
// Episodes without a number keep their document order.
func (s *Season) SortEpisodes() {
	sort.SliceStable(s.Episodes, func(i, j int) bool {
		a, b := s.Episodes[i], s.Episodes[j]
		if a.Num > 0 && b.Num > 0 {
			return a.Num < b.Num
		}
		return false
	})
}

// dotName converts a display name to dotted release form.
func dotName(name string) string {
	name = strings.ReplaceAll(name, " ", ".")
	return strings.ReplaceAll(name, ";", "")
}

// sanitizeName removes or replaces characters that are invalid in
// file and folder names across platforms.
func sanitizeName(name string) string {
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}
