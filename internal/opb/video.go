package opb

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// jsonpCallback is the callback name requested from the URS redirect
// endpoint and stripped from its response.
const jsonpCallback = "__whatever"

// ErrNoVideoID is returned when an episode page does not carry the
// inline player script with the video id.
var ErrNoVideoID = errors.New("video id not found in episode page")

// ErrNoRedirectToken is returned when the station player page does not
// reference the URS redirect service.
var ErrNoRedirectToken = errors.New("video redirect token not found")

// VideoError is a failure reported by the player itself, e.g. a video
// that is members-only or no longer available.
type VideoError struct {
	Msg string
}

func (e *VideoError) Error() string {
	return e.Msg
}

var (
	videoIDRe      = regexp.MustCompile(`id: '(\d+)',`)
	playerErrorRe  = regexp.MustCompile(`(?s)<p[^>]*class="[^"]*error-message[^"]*"[^>]*>(.*?)</p>`)
	redirectTokRe  = regexp.MustCompile(`"encodings": \["https://urs\.pbs\.org/redirect/(\w*)/"`)
	jsonpPayloadRe = regexp.MustCompile(jsonpCallback + `\((.*)\)`)
)

// ExtractVideoID finds the numeric video id in an episode page's inline
// player bootstrap script.
func ExtractVideoID(pageHTML string) (string, error) {
	m := videoIDRe.FindStringSubmatch(pageHTML)
	if m == nil {
		return "", ErrNoVideoID
	}
	return m[1], nil
}

// ParsePlayerPage extracts the URS redirect token from a station player
// page.
//
// When the player renders an error message instead of a video (expired
// rights, members-only content), that message is returned as a
// *VideoError so callers can report it verbatim.
func ParsePlayerPage(pageHTML string) (string, error) {
	if m := playerErrorRe.FindStringSubmatch(pageHTML); m != nil {
		msg := strings.TrimSpace(html.UnescapeString(stripTags(m[1])))
		return "", &VideoError{Msg: msg}
	}

	m := redirectTokRe.FindStringSubmatch(pageHTML)
	if m == nil {
		return "", ErrNoRedirectToken
	}
	return m[1], nil
}

// ParseRedirectPayload unwraps the JSONP response from the URS redirect
// endpoint and returns the video asset URL inside it.
func ParseRedirectPayload(body string) (string, error) {
	m := jsonpPayloadRe.FindStringSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("unexpected redirect response: no %s callback", jsonpCallback)
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(m[1]), &payload); err != nil {
		return "", fmt.Errorf("malformed redirect payload: %w", err)
	}
	if payload.URL == "" {
		return "", errors.New("redirect payload has no url")
	}
	return payload.URL, nil
}

// stripTags removes HTML tags from a fragment, leaving the text.
func stripTags(fragment string) string {
	return regexp.MustCompile(`<[^>]*>`).ReplaceAllString(fragment, "")
}
