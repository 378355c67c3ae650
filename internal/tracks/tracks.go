// Package tracks defines track identities and the source that hands out
// candidates for fetching.
package tracks

import (
	"net/url"
	"path"
	"strings"
	"time"
)

// Candidate identifies a track that has not been fetched yet.
type Candidate struct {
	// Path is the entry relative to the list base URL, or a full URL.
	Path string
	// URL is the absolute location to fetch the audio from.
	URL string
	// DisplayName is what the UI shows for this track.
	DisplayName string
	// Custom is true when DisplayName came from the track list rather
	// than being derived from the path.
	Custom bool
}

// Track is the metadata of a fully fetched track. The audio payload lives
// in Ready until the engine takes ownership of it.
type Track struct {
	Name        string
	DisplayName string
	Custom      bool
	// Origin is the full URL the audio was fetched from. Bookmarks are
	// keyed by it.
	Origin string
	// Duration is zero until the engine has decoded the payload.
	Duration time.Duration
}

// Ready couples track metadata with its audio payload.
type Ready struct {
	Track Track
	Data  []byte
}

// Metadata builds the Track for a fetched candidate.
func (c Candidate) Metadata() Track {
	return Track{
		Name:        c.Path,
		DisplayName: c.DisplayName,
		Custom:      c.Custom,
		Origin:      c.URL,
	}
}

// displayName derives a human-readable name from a list entry path:
// "2023/06/Rainy-Evening.mp3" becomes "Rainy Evening".
func displayName(entry string) string {
	name := path.Base(entry)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}
