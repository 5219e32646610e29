// Package opb parses the station site's HTML catalog pages and resolves
// episode video URLs through the shared PBS player.
//
// The package handles three page types:
//
//  1. Show episode listings, which enumerate seasons in a select element
//  2. Season catalog pages, which list episodes with a title link and a
//     meta line identifying each one
//  3. Episode and player pages, which lead to the downloadable asset URL
//
// # Season Discovery
//
//	seasons := opb.ParseSeasonNumbers(showPageHTML) // e.g. [1 2 3]
//
// # Season Page Parsing
//
//	page, err := opb.ParseSeasonPage(seasonPageHTML)
//	if err != nil {
//	    // page structure changed; scraper needs updating
//	}
//	for _, ep := range page.Episodes {
//	    fmt.Println(ep.Title, ep.Path)
//	}
//
// # Video URL Resolution
//
// Resolving an episode's asset URL takes three hops, mirroring what the
// web player does: the episode page embeds a numeric video id; the
// station player page for that id references a one-time URS redirect
// token; the redirect endpoint answers with a JSONP payload carrying the
// final URL.
//
//	id, _ := opb.ExtractVideoID(episodeHTML)
//	token, _ := opb.ParsePlayerPage(playerHTML)
//	assetURL, _ := opb.ParseRedirectPayload(redirectBody)
//
// URL construction for all of the above lives on the Site type, which
// carries the station origin and callsign.
package opb
