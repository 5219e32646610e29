// Package download provides the orchestration logic for fetching a
// show's episodes from the station site.
//
// # Manager
//
// The Manager coordinates the entire run:
//
//  1. Resolve the show key into season catalog pages
//  2. Parse each season page into episodes
//  3. Resolve each episode's video asset URL through the PBS player
//  4. Invoke the external downloader per episode into the season folder
//  5. Probe the finished file with ffprobe and rename it to its release name
//  6. Optionally save the episode thumbnail alongside
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.Initialize(ctx, "oregon-art-beat"); err != nil {
//	    log.Fatal(err) // unknown show or unreachable site: fatal
//	}
//
//	if err := manager.StartDownloads(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failure Policy
//
// Only the show page is load-bearing: if it cannot be fetched or parsed,
// Initialize returns an error and nothing runs. A season that fails to
// fetch or parse is reported and skipped; an episode that fails to
// resolve, download, or probe is reported and the remaining episodes
// continue.
//
// # External Downloader
//
// Episodes are fetched by an external binary (yt-dlp or youtube-dl)
// through the Invoker interface; a non-zero exit surfaces as a
// DownloadError for that one episode. CheckDependencies verifies the
// downloader and ffprobe exist before any network work.
//
// # Concurrency
//
// Episodes within a season run under an errgroup whose limit comes from
// settings.MaxConcurrentEpisodes. The default of 1 preserves the
// strictly sequential behavior the station tolerates best.
package download
