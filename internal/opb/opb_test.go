package opb

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseSeasonNumbers(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []int
	}{
		{
			name: "three seasons newest first",
			html: `<select data-content-type="episodes">
				<option value="3">Season 3</option>
				<option value="2">Season 2</option>
				<option value="1">Season 1</option>
			</select>`,
			want: []int{1, 2, 3},
		},
		{
			name: "single option",
			html: `<select class="picker" data-content-type="episodes"><option value="12">Season 12</option></select>`,
			want: []int{12},
		},
		{
			name: "no season select means implicit season one",
			html: `<html><body>No seasons here</body></html>`,
			want: []int{1},
		},
		{
			name: "unrelated select ignored",
			html: `<select data-content-type="collections"><option value="9"></option></select>`,
			want: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSeasonNumbers(tt.html)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSeasonNumbers() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSeasonNumbers() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestHasCatalogItems(t *testing.T) {
	if !HasCatalogItems(`<div class="video-catalog__item">x</div>`) {
		t.Error("expected catalog items to be detected")
	}
	if HasCatalogItems(`<div class="video-catalog__empty"></div>`) {
		t.Error("expected no catalog items")
	}
}

const seasonPageHTML = `<html><body>
<a class="breadcrumbs__link" href="/show/oregon-art-beat/">Oregon Art Beat</a>
<h1 class="video-catalog__title"> Season 3 </h1>
<div class="video-catalog__item">
	<img class="video-summary__image" src="https://image.pbs.org/ep1.jpg" />
	<a class="video-summary__video-title-link" href="/video/glass-art-abc123/">Glass Art</a>
	<p class="video-summary__meta-data">S3 Ep1 | <span>26m 46s</span></p>
</div>
<div class="video-catalog__item">
	<img class="video-summary__image" src="https://image.pbs.org/ep2.jpg" />
	<a class="video-summary__video-title-link" href="/video/metal-work-def456/">Metal Work</a>
	<p class="video-summary__meta-data">S3 Ep2 | <span>26m 12s</span></p>
</div>
</body></html>`

func TestParseSeasonPage(t *testing.T) {
	page, err := ParseSeasonPage(seasonPageHTML)
	if err != nil {
		t.Fatalf("ParseSeasonPage(): %v", err)
	}

	if page.ShowTitle != "Oregon Art Beat" {
		t.Errorf("ShowTitle = %q", page.ShowTitle)
	}
	if page.Num != 3 {
		t.Errorf("Num = %d, want 3", page.Num)
	}
	if page.ExtraGroup != "" {
		t.Errorf("ExtraGroup = %q, want empty", page.ExtraGroup)
	}
	if len(page.Episodes) != 2 {
		t.Fatalf("got %d episodes, want 2", len(page.Episodes))
	}

	// Document order is preserved
	first, second := page.Episodes[0], page.Episodes[1]
	if first.Title != "Glass Art" || first.Path != "/video/glass-art-abc123/" {
		t.Errorf("first entry = %+v", first)
	}
	if first.Num != 1 || second.Num != 2 {
		t.Errorf("episode numbers = %d, %d", first.Num, second.Num)
	}
	if first.ThumbnailURL != "https://image.pbs.org/ep1.jpg" {
		t.Errorf("ThumbnailURL = %q", first.ThumbnailURL)
	}
}

func TestParseSeasonPage_MetaVariants(t *testing.T) {
	tests := []struct {
		name      string
		meta      string
		wantNum   int
		wantDate  time.Time
		wantGroup string
	}{
		{
			name:    "plain episode number",
			meta:    "S3 Ep7 | ",
			wantNum: 7,
		},
		{
			name:    "season prepended to episode number",
			meta:    "S3 Ep307 | ",
			wantNum: 7,
		},
		{
			name:     "air date instead of number",
			meta:     "Aired 05/14/2021 | ",
			wantDate: time.Date(2021, 5, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "group label only",
			meta:      "Special | ",
			wantGroup: "Special",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<a class="breadcrumbs__link" href="/">Show</a>
<h1 class="video-catalog__title">Season 3</h1>
<div class="video-catalog__item">
<a class="video-summary__video-title-link" href="/video/x/">Title</a>
<p class="video-summary__meta-data">` + tt.meta + `<span>26m</span></p>
</div>`

			page, err := ParseSeasonPage(html)
			if err != nil {
				t.Fatalf("ParseSeasonPage(): %v", err)
			}
			if len(page.Episodes) != 1 {
				t.Fatalf("got %d episodes, want 1", len(page.Episodes))
			}

			ep := page.Episodes[0]
			if ep.Num != tt.wantNum {
				t.Errorf("Num = %d, want %d", ep.Num, tt.wantNum)
			}
			if !ep.AirDate.Equal(tt.wantDate) {
				t.Errorf("AirDate = %v, want %v", ep.AirDate, tt.wantDate)
			}
			if ep.ExtraGroup != tt.wantGroup {
				t.Errorf("ExtraGroup = %q, want %q", ep.ExtraGroup, tt.wantGroup)
			}
		})
	}
}

func TestParseSeasonPage_SpecialsHeading(t *testing.T) {
	html := `<a class="breadcrumbs__link" href="/">Oregon Field Guide</a>
<h1 class="video-catalog__title">Specials</h1>`

	page, err := ParseSeasonPage(html)
	if err != nil {
		t.Fatalf("ParseSeasonPage(): %v", err)
	}
	if page.Num != 0 {
		t.Errorf("Num = %d, want 0", page.Num)
	}
	if page.ExtraGroup != "Specials" {
		t.Errorf("ExtraGroup = %q, want %q", page.ExtraGroup, "Specials")
	}
}

func TestParseSeasonPage_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		wantErr error
	}{
		{
			name:    "missing breadcrumb",
			html:    `<h1 class="video-catalog__title">Season 1</h1>`,
			wantErr: ErrNoBreadcrumb,
		},
		{
			name:    "missing heading",
			html:    `<a class="breadcrumbs__link" href="/">Show</a>`,
			wantErr: ErrNoSeasonHeading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeasonPage(tt.html)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseSeasonPage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	html := `<script type="text/javascript">
		window.videoBridge = { id: '3049555200', title: "x" };
	</script>`
	id, err := ExtractVideoID(html)
	if err != nil {
		t.Fatalf("ExtractVideoID(): %v", err)
	}
	if id != "3049555200" {
		t.Errorf("id = %q", id)
	}

	if _, err := ExtractVideoID(`<html>no script</html>`); !errors.Is(err, ErrNoVideoID) {
		t.Errorf("error = %v, want ErrNoVideoID", err)
	}
}

func TestParsePlayerPage(t *testing.T) {
	playerHTML := `<script>window.contextBridge = {
		"encodings": ["https://urs.pbs.org/redirect/abc123def/"]
	};</script>`

	token, err := ParsePlayerPage(playerHTML)
	if err != nil {
		t.Fatalf("ParsePlayerPage(): %v", err)
	}
	if token != "abc123def" {
		t.Errorf("token = %q", token)
	}
}

func TestParsePlayerPage_ErrorMessage(t *testing.T) {
	html := `<p class="error-message"> This video is no longer available. </p>`

	_, err := ParsePlayerPage(html)
	var videoErr *VideoError
	if !errors.As(err, &videoErr) {
		t.Fatalf("expected *VideoError, got %v", err)
	}
	if videoErr.Msg != "This video is no longer available." {
		t.Errorf("Msg = %q", videoErr.Msg)
	}
}

func TestParsePlayerPage_NoToken(t *testing.T) {
	_, err := ParsePlayerPage(`<html>nothing useful</html>`)
	if !errors.Is(err, ErrNoRedirectToken) {
		t.Errorf("error = %v, want ErrNoRedirectToken", err)
	}
}

func TestParseRedirectPayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "valid payload",
			body: `__whatever({"status": "ok", "url": "https://ga.video.cdn.pbs.org/ep.mp4"})`,
			want: "https://ga.video.cdn.pbs.org/ep.mp4",
		},
		{
			name:    "missing callback",
			body:    `{"url": "https://example.com/ep.mp4"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `__whatever({not json)`,
			wantErr: true,
		},
		{
			name:    "empty url",
			body:    `__whatever({"status": "ok"})`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRedirectPayload(tt.body)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("url = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSite_URLs(t *testing.T) {
	site := Site{BaseURL: "https://watch.opb.org", Callsign: "KOPB"}

	if got := site.ShowEpisodesURL("oregon-art-beat"); got != "https://watch.opb.org/show/oregon-art-beat/episodes/" {
		t.Errorf("ShowEpisodesURL = %q", got)
	}
	if got := site.SeasonURL("oregon-art-beat", 3); got != "https://watch.opb.org/show/oregon-art-beat/episodes/season/3/" {
		t.Errorf("SeasonURL = %q", got)
	}
	if got := site.SpecialsURL("oregon-art-beat"); got != "https://watch.opb.org/show/oregon-art-beat/specials/" {
		t.Errorf("SpecialsURL = %q", got)
	}

	player := site.PlayerURL("12345", "https://watch.opb.org/video/x/")
	for _, want := range []string{"stationplayer/12345/", "callsign=KOPB", "parentURL=https%3A%2F%2Fwatch.opb.org%2Fvideo%2Fx%2F"} {
		if !strings.Contains(player, want) {
			t.Errorf("PlayerURL = %q, missing %q", player, want)
		}
	}

	if got := site.RedirectURL("tok"); got != "https://urs.pbs.org/redirect/tok/?format=jsonp&callback=__whatever" {
		t.Errorf("RedirectURL = %q", got)
	}
}
