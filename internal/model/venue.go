package model

// Venue is a location that hosts shows.  It corresponds to a row in the
// `venues` table; genres are stored in the `venue_genres` join table and
// shows reference the venue through shows.venue_id.
//
// Fields:
//  ID                 - primary key identifier.
//  Name               - display name, required.
//  City, State        - area the venue is grouped under, required.
//  Address            - street address, required.
//  SeekingTalent      - whether the venue is looking for artists.
//  SeekingDescription - free text shown when SeekingTalent is set.
type Venue struct {
	ID                 uint64   `json:"id"`                  // venues.id
	Name               string   `json:"name"`                // venues.name
	City               string   `json:"city"`                // venues.city
	State              string   `json:"state"`               // venues.state
	Address            string   `json:"address"`             // venues.address
	Phone              string   `json:"phone"`               // venues.phone (nullable)
	ImageLink          string   `json:"image_link"`          // venues.image_link (nullable)
	FacebookLink       string   `json:"facebook_link"`       // venues.facebook_link (nullable)
	Website            string   `json:"website"`             // venues.website (nullable)
	SeekingTalent      bool     `json:"seeking_talent"`      // venues.seeking_talent
	SeekingDescription string   `json:"seeking_description"` // venues.seeking_description (nullable)
	Genres             []string `json:"genres"`              // names from venue_genres
}

// Area groups venues sharing a (city, state) pair.
type Area struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueSummary is the row used by listings and search results.
type VenueSummary struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	City             string `json:"-"`
	State            string `json:"-"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}
