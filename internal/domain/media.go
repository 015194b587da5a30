package domain

// MediaType identifies the kind of catalog item an annotation points at.
// Values follow the catalog's own dialect.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether the media type is one the catalog understands.
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// WatchStatus tracks progress of a watchlist entry.
type WatchStatus string

const (
	WatchStatusWant     WatchStatus = "want"
	WatchStatusWatching WatchStatus = "watching"
	WatchStatusWatched  WatchStatus = "watched"
)

// Valid reports whether the status is a member of the allowed set.
func (s WatchStatus) Valid() bool {
	switch s {
	case WatchStatusWant, WatchStatusWatching, WatchStatusWatched:
		return true
	}
	return false
}
