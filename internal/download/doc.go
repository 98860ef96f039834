// Package download fetches resolved videos as tagged audio files.
//
// An [Extractor] turns a video URL into an audio file (by default by running yt-dlp) and a [Tagger] writes
// ID3 frames onto the result. [Downloader] ties the two together per track, laying files out as
// "<dir>/Spotify - <playlist>/<artist> - <title>.<ext>".
package download
