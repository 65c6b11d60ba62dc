package model

// Genre is a tag shared by venues and artists.  Names are unique.
type Genre struct {
	ID   uint64 `json:"id"`   // genres.id
	Name string `json:"name"` // genres.name
}
