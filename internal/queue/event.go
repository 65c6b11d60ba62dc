// Package queue carries listing events over RabbitMQ: the payload type,
// a publisher used after successful writes and a background consumer that
// appends every event to a log file.
package queue

import "time"

// ListingQueueName is the durable queue listing events are published to.
const ListingQueueName = "listing.events"

// Kind names what happened to a listing.
type Kind string

const (
	VenueCreated  Kind = "venue.created"
	VenueUpdated  Kind = "venue.updated"
	VenueDeleted  Kind = "venue.deleted"
	ArtistCreated Kind = "artist.created"
	ArtistUpdated Kind = "artist.updated"
	ShowCreated   Kind = "show.created"
)

// ListingEvent is published after a venue, artist or show write commits.
// It carries enough for consumers to log or notify without querying the
// database.
type ListingEvent struct {
	Kind       Kind      `json:"kind"`
	EntityID   uint64    `json:"entity_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
