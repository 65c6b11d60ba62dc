package model

import "time"

// Show is a scheduled pairing of one artist and one venue at a start time.
// It is a pure join entity: deleting the venue or the artist deletes it.
//
// Fields:
//  ID        - primary key identifier.
//  ArtistID  - performing artist, must exist.
//  VenueID   - hosting venue, must exist.
//  StartTime - when the show begins, stored in UTC.
type Show struct {
	ID        uint64    // shows.id
	ArtistID  uint64    // shows.artist_id
	VenueID   uint64    // shows.venue_id
	StartTime time.Time // shows.start_time
}

// ShowListing is a row of the global show listing, annotated with both sides.
type ShowListing struct {
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// VenueShow is a show as listed on a venue page: the performing artist.
type VenueShow struct {
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ArtistShow is a show as listed on an artist page: the hosting venue.
type ArtistShow struct {
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}
