//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/testinfra"
)

func TestRepositoriesAgainstMySQL(t *testing.T) {
	db := testinfra.NewMySQL(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	genres := NewGenreRepo(db)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)

	t.Run("migrations are idempotent", func(t *testing.T) {
		applied, err := database.Migrate(ctx, db)
		require.NoError(t, err)
		assert.Empty(t, applied)

		all, err := genres.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, len(database.DefaultGenres))
	})

	t.Run("genre lookup is exact", func(t *testing.T) {
		ids, err := genres.ResolveNames(ctx, []string{"Jazz", "Blues", "Jazz"})
		require.NoError(t, err)
		assert.Len(t, ids, 2)

		_, err = genres.ResolveNames(ctx, []string{"jazz"})
		assert.ErrorIs(t, err, ErrGenreNotFound)
	})

	jazzBlues, err := genres.ResolveNames(ctx, []string{"Jazz", "Blues"})
	require.NoError(t, err)

	fillmore := &model.Venue{Name: "The Fillmore", City: "San Francisco", State: "CA", Address: "1805 Geary Blvd"}
	require.NoError(t, venues.Create(ctx, fillmore, jazzBlues))
	hall := &model.Venue{Name: "Musical HALL", City: "San Francisco", State: "CA", Address: "1 Hall St"}
	require.NoError(t, venues.Create(ctx, hall, nil))
	dueling := &model.Venue{Name: "The Dueling Pianos Bar", City: "New York", State: "NY", Address: "335 Delancey Street"}
	require.NoError(t, venues.Create(ctx, dueling, nil))

	guns := &model.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA", SeekingVenue: true}
	require.NoError(t, artists.Create(ctx, guns, jazzBlues[:1]))

	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: guns.ID, VenueID: fillmore.ID, StartTime: now.Add(-48 * time.Hour)}))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: guns.ID, VenueID: fillmore.ID, StartTime: now.Add(48 * time.Hour)}))
	require.NoError(t, shows.Create(ctx, &model.Show{ArtistID: guns.ID, VenueID: hall.ID, StartTime: now.Add(72 * time.Hour)}))

	t.Run("venue round trip", func(t *testing.T) {
		got, err := venues.GetByID(ctx, fillmore.ID)
		require.NoError(t, err)
		assert.Equal(t, "The Fillmore", got.Name)
		assert.ElementsMatch(t, []string{"Jazz", "Blues"}, got.Genres)
		assert.Empty(t, got.Phone)

		_, err = venues.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upcoming counts are strict", func(t *testing.T) {
		list, err := venues.ListSummaries(ctx, now)
		require.NoError(t, err)
		counts := map[uint64]int{}
		for _, s := range list {
			counts[s.ID] = s.NumUpcomingShows
		}
		assert.Equal(t, 1, counts[fillmore.ID])
		assert.Equal(t, 1, counts[hall.ID])
		assert.Equal(t, 0, counts[dueling.ID])

		// ordered by state then city
		assert.Equal(t, "CA", list[0].State)
		assert.Equal(t, "NY", list[len(list)-1].State)
	})

	t.Run("venue search is case-insensitive substring", func(t *testing.T) {
		res, err := venues.Search(ctx, "hall", now)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, hall.ID, res[0].ID)

		res, err = venues.Search(ctx, "%", now)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("artist search counts upcoming shows only", func(t *testing.T) {
		res, err := artists.Search(ctx, "PETAL", now)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, 2, res[0].NumUpcomingShows)
	})

	t.Run("show with missing artist is rejected", func(t *testing.T) {
		before := testinfra.ShowsAtVenue(t, db, dueling.ID)

		err := shows.Create(ctx, &model.Show{ArtistID: 424242, VenueID: dueling.ID, StartTime: now})
		assert.ErrorIs(t, err, ErrInvalidReference)

		assert.Equal(t, before, testinfra.ShowsAtVenue(t, db, dueling.ID))
	})

	t.Run("update replaces genres", func(t *testing.T) {
		got, err := venues.GetByID(ctx, fillmore.ID)
		require.NoError(t, err)
		got.Phone = "415-000-1234"
		require.NoError(t, venues.Update(ctx, got, jazzBlues[1:]))

		again, err := venues.GetByID(ctx, fillmore.ID)
		require.NoError(t, err)
		assert.Equal(t, "415-000-1234", again.Phone)
		assert.Equal(t, []string{"Blues"}, again.Genres)

		assert.ErrorIs(t, venues.Update(ctx, &model.Venue{ID: 999999, Name: "x", City: "x", State: "x", Address: "x"}, nil), ErrNotFound)
	})

	t.Run("delete cascades to shows only", func(t *testing.T) {
		require.NoError(t, venues.Delete(ctx, fillmore.ID))

		assert.Zero(t, testinfra.ShowsAtVenue(t, db, fillmore.ID))

		ok, err := artists.Exists(ctx, guns.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		assert.Equal(t, 1, testinfra.ShowsByArtist(t, db, guns.ID))

		assert.ErrorIs(t, venues.Delete(ctx, fillmore.ID), ErrNotFound)
	})

	t.Run("listing joins both sides", func(t *testing.T) {
		all, err := shows.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Musical HALL", all[0].VenueName)
		assert.Equal(t, "Guns N Petals", all[0].ArtistName)
	})
}
