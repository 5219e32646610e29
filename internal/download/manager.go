package download

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/opbdl/opb-downloader/internal/config"
	"github.com/opbdl/opb-downloader/internal/http"
	ioutils "github.com/opbdl/opb-downloader/internal/io"
	"github.com/opbdl/opb-downloader/internal/media"
	"github.com/opbdl/opb-downloader/internal/model"
	"github.com/opbdl/opb-downloader/internal/opb"
	"golang.org/x/sync/errgroup"
)

// ErrShowNotFound is returned by Initialize when the station has no
// show under the given URL key.
var ErrShowNotFound = errors.New("show does not exist")

// tempFileName is the in-progress download name inside a season folder.
// The file is renamed to its final release name after probing.
const tempFileName = "temp.mp4"

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// mediaProber is the slice of media.Prober the manager needs; tests
// substitute a canned implementation.
type mediaProber interface {
	Probe(ctx context.Context, path string) (media.Attributes, error)
}

// Manager coordinates downloading a show's episodes.
type Manager struct {
	settings *config.Settings
	site     opb.Site
	client   *http.Client
	prober   mediaProber
	invoker  Invoker
	thumbs   *ioutils.Thumbnailer
	naming   *model.NamingConfig

	show       *model.Show
	seasonURLs []string

	totalEpisodes   int32
	doneEpisodes    int32
	skippedEpisodes int32
	failedEpisodes  int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings: settings,
		site: opb.Site{
			BaseURL:  settings.BaseURL,
			Callsign: settings.Callsign,
		},
		client:     http.NewClient(),
		prober:     media.NewProber(settings.ProbeBin),
		invoker:    &ExecInvoker{Bin: settings.DownloaderBin},
		thumbs:     ioutils.NewThumbnailer(),
		naming:     settings.ToNamingConfig(),
		onProgress: onProgress,
	}
}

// Initialize resolves the show key into the list of season pages to
// download.
//
// A 404 from the show page means the key is unknown and is reported as
// ErrShowNotFound; any other fetch failure is fatal too, since nothing
// can proceed without the show page.
func (m *Manager) Initialize(ctx context.Context, showKey string) error {
	showKey = strings.TrimSpace(showKey)
	if showKey == "" {
		return errors.New("no show key given")
	}

	showURL := m.site.ShowEpisodesURL(showKey)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching show page: %s", showURL), Level: LevelVerbose})

	pageHTML, err := m.fetchWithRetry(ctx, func(ctx context.Context) (string, error) {
		return m.client.GetString(ctx, showURL)
	})
	if err != nil {
		var statusErr *http.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == 404 {
			return fmt.Errorf("show with URL key %q: %w", showKey, ErrShowNotFound)
		}
		return fmt.Errorf("fetching show page: %w", err)
	}

	show := &model.Show{
		Key:     showKey,
		Seasons: opb.ParseSeasonNumbers(pageHTML),
	}

	var urls []string
	for _, num := range show.Seasons {
		urls = append(urls, m.site.SeasonURL(showKey, num))
	}

	if m.settings.IncludeSpecials {
		specialsHTML, err := m.client.GetString(ctx, m.site.SpecialsURL(showKey))
		if err == nil && opb.HasCatalogItems(specialsHTML) {
			show.HasSpecials = true
			urls = append(urls, m.site.SpecialsURL(showKey))
		}
	}

	m.show = show
	m.seasonURLs = urls

	label := fmt.Sprintf("Found %d season(s)", len(show.Seasons))
	if show.HasSpecials {
		label += " plus specials"
	}
	m.progress(ProgressEvent{Message: label, Level: LevelInfo})

	return nil
}

// StartDownloads works through the initialized season pages. A failing
// season is reported and the remaining seasons still run.
func (m *Manager) StartDownloads(ctx context.Context) error {
	for _, seasonURL := range m.seasonURLs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := m.downloadSeason(ctx, seasonURL); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Season %s: %v", seasonURL, err), Level: LevelError})
		}
	}
	return ctx.Err()
}

// Show returns the resolved show, or nil before Initialize.
func (m *Manager) Show() *model.Show {
	return m.show
}

// GetProgress returns current episode counts: downloaded, skipped as
// duplicates, failed, and total discovered so far.
func (m *Manager) GetProgress() (done, skipped, failed, total int32) {
	return atomic.LoadInt32(&m.doneEpisodes),
		atomic.LoadInt32(&m.skippedEpisodes),
		atomic.LoadInt32(&m.failedEpisodes),
		atomic.LoadInt32(&m.totalEpisodes)
}

func (m *Manager) downloadSeason(ctx context.Context, seasonURL string) error {
	// The season page is fetched without following redirects: the
	// station answers a missing season with a 302 to the show page.
	pageHTML, err := m.fetchWithRetry(ctx, func(ctx context.Context) (string, error) {
		return m.client.GetStringNoFollow(ctx, seasonURL)
	})
	if err != nil {
		var statusErr *http.StatusError
		if errors.As(err, &statusErr) && statusErr.Code >= 300 && statusErr.Code < 400 {
			return errors.New("season does not exist")
		}
		return fmt.Errorf("fetching season page: %w", err)
	}

	page, err := opb.ParseSeasonPage(pageHTML)
	if err != nil {
		return fmt.Errorf("parsing season page: %w", err)
	}

	season := model.NewSeason(seasonURL, page.ShowTitle, page.Num, page.ExtraGroup, m.naming)
	for _, entry := range page.Episodes {
		season.Episodes = append(season.Episodes, &model.Episode{
			Season:       season,
			Title:        entry.Title,
			URL:          m.site.AbsoluteURL(entry.Path),
			Num:          entry.Num,
			AirDate:      entry.AirDate,
			ExtraGroup:   entry.ExtraGroup,
			ThumbnailURL: entry.ThumbnailURL,
		})
	}
	season.SortEpisodes()

	atomic.AddInt32(&m.totalEpisodes, int32(len(season.Episodes)))
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("%s: %d episode(s)", season.FolderName(m.naming), len(season.Episodes)),
		Level:   LevelInfo,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentEpisodes)

	for _, episode := range season.Episodes {
		episode := episode
		g.Go(func() error {
			if err := m.downloadEpisode(ctx, episode); err != nil {
				atomic.AddInt32(&m.failedEpisodes, 1)
				m.progress(ProgressEvent{
					Message: fmt.Sprintf("Error downloading %s: %v", episode.Title, err),
					Level:   LevelError,
				})
			}
			// Episode failures never stop the season.
			return nil
		})
	}

	return g.Wait()
}

func (m *Manager) downloadEpisode(ctx context.Context, episode *model.Episode) error {
	season := episode.Season

	if m.settings.SkipDuplicates {
		found, err := ioutils.DirContainsMatch(season.Path, episode.DupePattern(m.naming))
		if err == nil && found {
			atomic.AddInt32(&m.skippedEpisodes, 1)
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Duplicate exists, skipping %q", episode.Title),
				Level:   LevelVerbose,
			})
			return nil
		}
	}

	videoURL, err := m.resolveVideoURL(ctx, episode)
	if err != nil {
		return fmt.Errorf("resolving video URL: %w", err)
	}

	if err := ioutils.EnsureDir(season.Path); err != nil {
		return err
	}

	tempPath := filepath.Join(season.Path, tempFileName)
	// Clear leftovers from an interrupted earlier run.
	_ = ioutils.RemoveIfExists(tempPath)
	_ = ioutils.RemoveIfExists(tempPath + ".part")

	m.progress(ProgressEvent{Message: fmt.Sprintf("Starting %s ...", episode.Title), Level: LevelInfo})

	if err := m.invoker.Fetch(ctx, videoURL, tempPath); err != nil {
		return err
	}

	attrs, err := m.prober.Probe(ctx, tempPath)
	if err != nil {
		return fmt.Errorf("probing %s: %w", tempPath, err)
	}
	episode.Height = attrs.Height
	episode.VideoCodec = attrs.VideoCodec
	episode.AudioCodec = attrs.AudioCodec
	episode.AudioLayout = attrs.AudioLayout

	finalPath := filepath.Join(season.Path, episode.FileName(m.naming))
	cooldown := time.Duration(m.settings.RenameRetryCooldown * float64(time.Second))
	if err := ioutils.RenameWithRetry(ctx, tempPath, finalPath, m.settings.RenameMaxRetries, cooldown); err != nil {
		return fmt.Errorf("renaming to %s: %w", filepath.Base(finalPath), err)
	}

	if m.settings.SaveThumbnails && episode.ThumbnailURL != "" {
		if err := m.saveThumbnail(ctx, episode, finalPath); err != nil {
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Error saving thumbnail for %s: %v", episode.Title, err),
				Level:   LevelWarning,
			})
		}
	}

	atomic.AddInt32(&m.doneEpisodes, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(finalPath)), Level: LevelSuccess})
	return nil
}

// resolveVideoURL walks the three hops from episode page to asset URL:
// inline video id, station player page, URS redirect payload.
func (m *Manager) resolveVideoURL(ctx context.Context, episode *model.Episode) (string, error) {
	episodeHTML, err := m.fetchWithRetry(ctx, func(ctx context.Context) (string, error) {
		return m.client.GetString(ctx, episode.URL)
	})
	if err != nil {
		return "", err
	}

	videoID, err := opb.ExtractVideoID(episodeHTML)
	if err != nil {
		return "", err
	}

	playerHTML, err := m.fetchWithRetry(ctx, func(ctx context.Context) (string, error) {
		return m.client.GetString(ctx, m.site.PlayerURL(videoID, episode.URL))
	})
	if err != nil {
		return "", err
	}

	token, err := opb.ParsePlayerPage(playerHTML)
	if err != nil {
		return "", err
	}

	body, err := m.fetchWithRetry(ctx, func(ctx context.Context) (string, error) {
		return m.client.GetString(ctx, m.site.RedirectURL(token))
	})
	if err != nil {
		return "", err
	}

	return opb.ParseRedirectPayload(body)
}

func (m *Manager) saveThumbnail(ctx context.Context, episode *model.Episode, videoPath string) error {
	data, err := m.client.DownloadBytes(ctx, episode.ThumbnailURL)
	if err != nil {
		return err
	}

	if m.settings.ThumbnailResize {
		data, err = m.thumbs.Resize(ctx, data, m.settings.ThumbnailMaxSize, m.settings.ThumbnailMaxSize)
	} else if m.settings.ConvertThumbToJPG {
		data, err = m.thumbs.ToJPEG(ctx, data)
	}
	if err != nil {
		return err
	}

	thumbPath := strings.TrimSuffix(videoPath, ".mp4") + ".jpg"
	return os.WriteFile(thumbPath, data, 0644)
}

// fetchWithRetry retries transient fetch failures with exponential
// backoff. Definite answers (4xx, redirects) are returned immediately.
func (m *Manager) fetchWithRetry(ctx context.Context, fetch func(context.Context) (string, error)) (string, error) {
	var body string
	var err error
	for tries := 0; tries < m.settings.FetchMaxRetries; tries++ {
		body, err = fetch(ctx)
		if err == nil {
			return body, nil
		}

		var statusErr *http.StatusError
		if errors.As(err, &statusErr) && statusErr.Code < 500 {
			return "", err
		}
		if ctx.Err() != nil {
			return "", err
		}

		m.waitForRetry(ctx, tries)
	}
	return "", err
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.FetchRetryCooldown * math.Pow(m.settings.FetchRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
