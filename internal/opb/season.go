package opb

import (
	"errors"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNoBreadcrumb is returned when a season page is missing the
// breadcrumb link carrying the show title. This signals that the page
// structure has changed and the scraper needs updating.
var ErrNoBreadcrumb = errors.New("show title breadcrumb not found")

// ErrNoSeasonHeading is returned when a season page is missing the
// catalog heading ("Season 3", "Specials", ...).
var ErrNoSeasonHeading = errors.New("season heading not found")

var (
	breadcrumbRe    = regexp.MustCompile(`<a[^>]*class="[^"]*breadcrumbs__link[^"]*"[^>]*>([^<]+)</a>`)
	catalogTitleRe  = regexp.MustCompile(`<h1[^>]*class="[^"]*video-catalog__title[^"]*"[^>]*>([^<]+)</h1>`)
	seasonNumRe     = regexp.MustCompile(`Season (\d{1,3})`)
	episodeLinkRe   = regexp.MustCompile(`class="[^"]*video-summary__video-title-link[^"]*"[^>]*href="([^"]+)"[^>]*>\s*([^<]+?)\s*<`)
	metaDataRe      = regexp.MustCompile(`(?s)<p[^>]*class="[^"]*video-summary__meta-data[^"]*"[^>]*>(.*?)</p>`)
	thumbnailRe     = regexp.MustCompile(`<img[^>]*src="([^"]+)"`)
	metaEpisodeRe   = regexp.MustCompile(`S(\d{1,2}) Ep(\d{1,2}) \| `)
	metaLongEpRe    = regexp.MustCompile(`S(\d{1,2}) Ep(\d{3,4})(( \| )|\n)`)
	metaAirDateRe   = regexp.MustCompile(` (\d{2}/\d{2}/\d{4}) `)
	metaGroupRe     = regexp.MustCompile(`(\w+)(( \| )|\n)`)
	catalogItemMark = `video-catalog__item`
)

// SeasonPage is the parsed content of one season catalog page.
type SeasonPage struct {
	// ShowTitle is the show's display title from the breadcrumb.
	ShowTitle string

	// Heading is the trimmed catalog heading, e.g. "Season 3" or
	// "Specials".
	Heading string

	// Num is the season number parsed from the heading, or zero for
	// non-season groups.
	Num int

	// ExtraGroup is the heading verbatim when it is not a numbered
	// season.
	ExtraGroup string

	// Episodes lists the catalog entries in document order.
	Episodes []SeasonEntry
}

// SeasonEntry is one episode as listed on a season catalog page.
//
// Exactly one of Num, AirDate and ExtraGroup is populated, depending on
// which of the three meta-line formats the catalog used.
type SeasonEntry struct {
	Title        string
	Path         string // catalog-relative episode URL
	Num          int
	AirDate      time.Time
	ExtraGroup   string
	ThumbnailURL string
}

// ParseSeasonPage extracts the show title, season identity, and episode
// list from a season catalog page.
//
// The episode list preserves document order; callers that need
// broadcast order sort by episode number afterwards.
//
// Returns ErrNoBreadcrumb or ErrNoSeasonHeading when the expected
// structural markers are absent.
func ParseSeasonPage(pageHTML string) (*SeasonPage, error) {
	bc := breadcrumbRe.FindStringSubmatch(pageHTML)
	if bc == nil {
		return nil, ErrNoBreadcrumb
	}

	heading := catalogTitleRe.FindStringSubmatch(pageHTML)
	if heading == nil {
		return nil, ErrNoSeasonHeading
	}

	page := &SeasonPage{
		ShowTitle: strings.TrimSpace(html.UnescapeString(bc[1])),
		Heading:   strings.TrimSpace(html.UnescapeString(heading[1])),
	}

	if m := seasonNumRe.FindStringSubmatch(page.Heading); m != nil {
		page.Num, _ = strconv.Atoi(m[1])
	} else {
		page.ExtraGroup = page.Heading
	}

	for _, item := range splitCatalogItems(pageHTML) {
		entry, ok := parseCatalogItem(item)
		if !ok {
			continue
		}
		page.Episodes = append(page.Episodes, entry)
	}

	return page, nil
}

// splitCatalogItems cuts the page into per-episode chunks at each
// catalog item marker. The chunk runs until the next marker, which is
// enough scope for the title link, meta line, and thumbnail.
func splitCatalogItems(pageHTML string) []string {
	var items []string
	rest := pageHTML
	for {
		idx := strings.Index(rest, catalogItemMark)
		if idx == -1 {
			break
		}
		rest = rest[idx+len(catalogItemMark):]
		end := strings.Index(rest, catalogItemMark)
		if end == -1 {
			items = append(items, rest)
			break
		}
		items = append(items, rest[:end])
	}
	return items
}

// parseCatalogItem extracts one episode entry from a catalog item chunk.
// Chunks without a title link (e.g. trailing markup) are skipped.
func parseCatalogItem(item string) (SeasonEntry, bool) {
	link := episodeLinkRe.FindStringSubmatch(item)
	if link == nil {
		return SeasonEntry{}, false
	}

	entry := SeasonEntry{
		Path:  link[1],
		Title: strings.TrimSpace(html.UnescapeString(link[2])),
	}

	if m := thumbnailRe.FindStringSubmatch(item); m != nil {
		entry.ThumbnailURL = m[1]
	}

	meta := metaDataRe.FindStringSubmatch(item)
	if meta == nil {
		return entry, true
	}
	info := metaText(meta[1])

	switch {
	case metaEpisodeRe.MatchString(info):
		m := metaEpisodeRe.FindStringSubmatch(info)
		entry.Num, _ = strconv.Atoi(m[2])
	case metaLongEpRe.MatchString(info):
		// Some catalogs erroneously prepend the season number to the
		// episode number ("S3 Ep307"); the real number is the last
		// two digits.
		m := metaLongEpRe.FindStringSubmatch(info)
		entry.Num, _ = strconv.Atoi(m[2][len(m[2])-2:])
	case metaAirDateRe.MatchString(info):
		m := metaAirDateRe.FindStringSubmatch(info)
		if t, err := time.Parse("01/02/2006", m[1]); err == nil {
			entry.AirDate = t
		}
	default:
		if m := metaGroupRe.FindStringSubmatch(info); m != nil {
			entry.ExtraGroup = m[1]
		}
	}

	return entry, true
}

// metaText returns the text of the meta line up to its first nested tag,
// matching how the catalog nests runtime markup after the identifier.
func metaText(inner string) string {
	if idx := strings.Index(inner, "<"); idx != -1 {
		inner = inner[:idx]
	}
	return html.UnescapeString(inner)
}
