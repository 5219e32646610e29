package opb

import (
	"fmt"
	"net/url"
)

// Site builds URLs for a station's hosted PBS player.
//
// The station serves show catalogs under its own domain, while video
// playback is resolved through the shared PBS player and redirect
// service using the station's callsign.
//
// Example usage:
//
//	site := opb.Site{BaseURL: "https://watch.opb.org", Callsign: "KOPB"}
//	fmt.Println(site.ShowEpisodesURL("oregon-art-beat"))
//	// https://watch.opb.org/show/oregon-art-beat/episodes/
type Site struct {
	// BaseURL is the station's catalog origin, without a trailing slash.
	BaseURL string

	// Callsign identifies the station to the shared player.
	Callsign string

	// PlayerBase overrides the shared player origin. Empty means the
	// production player at player.pbs.org.
	PlayerBase string

	// RedirectBase overrides the URS redirect origin. Empty means
	// urs.pbs.org.
	RedirectBase string
}

// ShowEpisodesURL returns the URL of a show's episode listing page.
func (s Site) ShowEpisodesURL(showKey string) string {
	return fmt.Sprintf("%s/show/%s/episodes/", s.BaseURL, showKey)
}

// SpecialsURL returns the URL of a show's specials catalog page.
func (s Site) SpecialsURL(showKey string) string {
	return fmt.Sprintf("%s/show/%s/specials/", s.BaseURL, showKey)
}

// SeasonURL returns the URL of one season's catalog page.
func (s Site) SeasonURL(showKey string, season int) string {
	return fmt.Sprintf("%s/show/%s/episodes/season/%d/", s.BaseURL, showKey, season)
}

// AbsoluteURL resolves a catalog-relative path against the station origin.
func (s Site) AbsoluteURL(path string) string {
	return s.BaseURL + path
}

// PlayerURL returns the station player URL for a video id. parentURL is
// the episode page the player is nominally embedded in; the player
// requires it as a query parameter.
func (s Site) PlayerURL(videoID, parentURL string) string {
	base := s.PlayerBase
	if base == "" {
		base = "https://player.pbs.org"
	}
	return fmt.Sprintf(
		"%s/stationplayer/%s/?callsign=%s&parentURL=%s&unsafeDisableUpsellHref=true&unsafePostMessages=true",
		base, videoID, s.Callsign, url.QueryEscape(parentURL),
	)
}

// RedirectURL returns the URS redirect endpoint for a token. The JSONP
// format is the only one the endpoint serves without player cookies; the
// callback name is arbitrary and stripped again by ParseRedirectPayload.
func (s Site) RedirectURL(token string) string {
	base := s.RedirectBase
	if base == "" {
		base = "https://urs.pbs.org"
	}
	return fmt.Sprintf("%s/redirect/%s/?format=jsonp&callback=%s", base, token, jsonpCallback)
}
