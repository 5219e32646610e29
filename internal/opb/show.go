package opb

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	seasonSelectRe = regexp.MustCompile(`(?s)<select[^>]*data-content-type="episodes"[^>]*>(.*?)</select>`)
	optionValueRe  = regexp.MustCompile(`<option[^>]*value="(\d+)"`)
)

// ParseSeasonNumbers extracts the available season numbers from a show's
// episode listing page.
//
// The page lists seasons in a <select data-content-type="episodes">
// element, newest first; the returned slice is ascending. A show without
// the select element has a single, implicit season 1.
func ParseSeasonNumbers(html string) []int {
	m := seasonSelectRe.FindStringSubmatch(html)
	if m == nil {
		return []int{1}
	}

	var seasons []int
	for _, opt := range optionValueRe.FindAllStringSubmatch(m[1], -1) {
		num, err := strconv.Atoi(opt[1])
		if err != nil {
			continue
		}
		// Options run newest-first; prepend to end up ascending.
		seasons = append([]int{num}, seasons...)
	}

	if len(seasons) == 0 {
		return []int{1}
	}
	return seasons
}

// HasCatalogItems reports whether a catalog page lists at least one
// video. Used on the specials page to decide whether a show has a
// specials group at all.
func HasCatalogItems(html string) bool {
	return strings.Contains(html, `video-catalog__item`)
}
