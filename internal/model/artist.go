package model

// Artist is a performer who plays shows.  Same shape as Venue minus the
// address; SeekingVenue replaces SeekingTalent.
type Artist struct {
	ID                 uint64   `json:"id"`                  // artists.id
	Name               string   `json:"name"`                // artists.name
	City               string   `json:"city"`                // artists.city (nullable)
	State              string   `json:"state"`               // artists.state (nullable)
	Phone              string   `json:"phone"`               // artists.phone (nullable)
	ImageLink          string   `json:"image_link"`          // artists.image_link (nullable)
	FacebookLink       string   `json:"facebook_link"`       // artists.facebook_link (nullable)
	Website            string   `json:"website"`             // artists.website (nullable)
	SeekingVenue       bool     `json:"seeking_venue"`       // artists.seeking_venue
	SeekingDescription string   `json:"seeking_description"` // artists.seeking_description (nullable)
	Genres             []string `json:"genres"`              // names from artist_genres
}

// ArtistSummary is the row used by the artist listing and search results.
// NumUpcomingShows is only populated by search.
type ArtistSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows,omitempty"`
}
