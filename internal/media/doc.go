// Package media inspects downloaded video files with ffprobe.
//
// The final episode file name embeds the video resolution, video and
// audio codec, and channel layout; none of these are known until the
// external downloader has produced the file, so the Prober runs after
// each download and its results feed the rename step.
//
//	prober := media.NewProber("ffprobe")
//	attrs, err := prober.Probe(ctx, "Season.S01/temp.mp4")
//	// attrs = {Height: 1080, VideoCodec: "h264", AudioCodec: "AAC", AudioLayout: "2.0"}
package media
