package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/venue-booking-directory/internal/model"
)

func TestPartitionIsStrict(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	shows := []model.VenueShow{
		{ArtistID: 1, StartTime: now.Add(-time.Hour)},
		{ArtistID: 2, StartTime: now},
		{ArtistID: 3, StartTime: now.Add(time.Second)},
		{ArtistID: 4, StartTime: now.Add(-48 * time.Hour)},
	}
	past, upcoming := Partition(shows, now, func(s model.VenueShow) time.Time { return s.StartTime })

	assert.Equal(t, []uint64{1, 4}, ids(past))
	assert.Equal(t, []uint64{3}, ids(upcoming))
}

func TestPartitionEmpty(t *testing.T) {
	past, upcoming := Partition([]model.ArtistShow(nil), time.Now(), func(s model.ArtistShow) time.Time { return s.StartTime })
	assert.NotNil(t, past)
	assert.NotNil(t, upcoming)
	assert.Empty(t, past)
	assert.Empty(t, upcoming)
}

func ids(shows []model.VenueShow) []uint64 {
	out := []uint64{}
	for _, s := range shows {
		out = append(out, s.ArtistID)
	}
	return out
}

func TestGroupAreas(t *testing.T) {
	rows := []model.VenueSummary{
		{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA", NumUpcomingShows: 0},
		{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", NumUpcomingShows: 1},
		{ID: 2, Name: "The Dueling Pianos Bar", City: "New York", State: "NY", NumUpcomingShows: 0},
		{ID: 4, Name: "Elsewhere", City: "Austin", State: "TX"},
		{ID: 5, Name: "Other Austin", City: "Austin", State: "TX"},
	}
	areas := GroupAreas(rows)

	assert.Len(t, areas, 3)
	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, "CA", areas[0].State)
	assert.Len(t, areas[0].Venues, 2)
	assert.Equal(t, 1, areas[0].Venues[1].NumUpcomingShows)
	assert.Equal(t, "New York", areas[1].City)
	assert.Len(t, areas[2].Venues, 2)
}

func TestGroupAreasEmpty(t *testing.T) {
	areas := GroupAreas(nil)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestSearchResultCount(t *testing.T) {
	r := newSearchResult([]model.ArtistSummary{{ID: 1}, {ID: 2}})
	assert.Equal(t, 2, r.Count)
	assert.Len(t, r.Data, r.Count)
}
