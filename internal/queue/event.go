// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the catalog.events queue.
const (
	EventMovieCreated  = "movie_created"
	EventImageAttached = "image_attached"
	EventImageRemoved  = "image_removed"
)

// CatalogEvent is published when an admin changes the movie catalog.  It
// carries enough information for downstream consumers to log, notify or
// trigger analytics without querying the primary database.
type CatalogEvent struct {
	Type       string `json:"type"`
	MovieID    uint64 `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	Image      string `json:"image,omitempty"`
	AdminID    uint64 `json:"admin_id"`
	OccurredAt string `json:"occurred_at"`
}
