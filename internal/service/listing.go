package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/venue-booking-directory/internal/database"
	"github.com/iliyamo/venue-booking-directory/internal/form"
	"github.com/iliyamo/venue-booking-directory/internal/logging"
	"github.com/iliyamo/venue-booking-directory/internal/metrics"
	"github.com/iliyamo/venue-booking-directory/internal/model"
	"github.com/iliyamo/venue-booking-directory/internal/queue"
	"github.com/iliyamo/venue-booking-directory/internal/repository"
)

// CreateVenue validates f, resolves its genres and inserts the venue with
// its genre links in one unit of work.
func (d *Directory) CreateVenue(ctx context.Context, f form.VenueForm) (*model.Venue, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	v := f.Model()
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		ids, err := repository.NewGenreRepo(tx).ResolveNames(ctx, v.Genres)
		if err != nil {
			return err
		}
		return repository.NewVenueRepo(tx).Create(ctx, v, ids)
	})
	if err != nil {
		metrics.RecordWriteFailure("venue.create")
		return nil, fmt.Errorf("create venue: %w", err)
	}
	metrics.RecordListingCreated("venue")
	d.publish(ctx, queue.VenueCreated, v.ID, v.Name)
	return v, nil
}

// CreateArtist validates f, resolves its genres and inserts the artist with
// its genre links in one unit of work.
func (d *Directory) CreateArtist(ctx context.Context, f form.ArtistForm) (*model.Artist, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	a := f.Model()
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		ids, err := repository.NewGenreRepo(tx).ResolveNames(ctx, a.Genres)
		if err != nil {
			return err
		}
		return repository.NewArtistRepo(tx).Create(ctx, a, ids)
	})
	if err != nil {
		metrics.RecordWriteFailure("artist.create")
		return nil, fmt.Errorf("create artist: %w", err)
	}
	metrics.RecordListingCreated("artist")
	d.publish(ctx, queue.ArtistCreated, a.ID, a.Name)
	return a, nil
}

// CreateShow inserts a show after checking, inside the same unit of work,
// that both its artist and venue exist.  A dangling id fails with
// repository.ErrInvalidReference and writes nothing.
func (d *Directory) CreateShow(ctx context.Context, f form.ShowForm) (*model.Show, error) {
	s := f.Model()
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		ok, err := repository.NewArtistRepo(tx).Exists(ctx, s.ArtistID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: artist %d does not exist", repository.ErrInvalidReference, s.ArtistID)
		}
		ok, err = repository.NewVenueRepo(tx).Exists(ctx, s.VenueID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: venue %d does not exist", repository.ErrInvalidReference, s.VenueID)
		}
		return repository.NewShowRepo(tx).Create(ctx, s)
	})
	if err != nil {
		metrics.RecordWriteFailure("show.create")
		return nil, fmt.Errorf("create show: %w", err)
	}
	metrics.RecordListingCreated("show")
	d.publish(ctx, queue.ShowCreated, s.ID, "")
	return s, nil
}

// UpdateVenue merges the submitted fields over the stored venue, validates
// the result and writes it back.  Genres are replaced with the submitted
// list.
func (d *Directory) UpdateVenue(ctx context.Context, id uint64, p form.VenuePatch) (*model.Venue, error) {
	var v *model.Venue
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		repo := repository.NewVenueRepo(tx)
		stored, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		f := form.VenueFromModel(stored)
		p.Apply(&f)
		if err := f.Validate(); err != nil {
			return err
		}
		ids, err := repository.NewGenreRepo(tx).ResolveNames(ctx, f.Genres)
		if err != nil {
			return err
		}
		v = f.Model()
		v.ID = id
		return repo.Update(ctx, v, ids)
	})
	if err != nil {
		metrics.RecordWriteFailure("venue.update")
		return nil, fmt.Errorf("update venue %d: %w", id, err)
	}
	d.publish(ctx, queue.VenueUpdated, v.ID, v.Name)
	return v, nil
}

// UpdateArtist merges the submitted fields over the stored artist; see
// UpdateVenue.
func (d *Directory) UpdateArtist(ctx context.Context, id uint64, p form.ArtistPatch) (*model.Artist, error) {
	var a *model.Artist
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		repo := repository.NewArtistRepo(tx)
		stored, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		f := form.ArtistFromModel(stored)
		p.Apply(&f)
		if err := f.Validate(); err != nil {
			return err
		}
		ids, err := repository.NewGenreRepo(tx).ResolveNames(ctx, f.Genres)
		if err != nil {
			return err
		}
		a = f.Model()
		a.ID = id
		return repo.Update(ctx, a, ids)
	})
	if err != nil {
		metrics.RecordWriteFailure("artist.update")
		return nil, fmt.Errorf("update artist %d: %w", id, err)
	}
	d.publish(ctx, queue.ArtistUpdated, a.ID, a.Name)
	return a, nil
}

// DeleteVenue removes a venue together with its shows and genre links.
func (d *Directory) DeleteVenue(ctx context.Context, id uint64) error {
	var name string
	err := database.WithTx(ctx, d.db, func(tx *sql.Tx) error {
		repo := repository.NewVenueRepo(tx)
		v, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		name = v.Name
		return repo.Delete(ctx, id)
	})
	if err != nil {
		metrics.RecordWriteFailure("venue.delete")
		return fmt.Errorf("delete venue %d: %w", id, err)
	}
	d.publish(ctx, queue.VenueDeleted, id, name)
	return nil
}

// publish sends the event in the background.  Failures are logged and
// counted; they never reach the caller.
func (d *Directory) publish(ctx context.Context, kind queue.Kind, id uint64, name string) {
	if d.events == nil {
		return
	}
	ev := queue.ListingEvent{Kind: kind, EntityID: id, Name: name, OccurredAt: d.now().UTC()}
	l := logging.Ctx(ctx).With().Str("event", string(kind)).Uint64("entity_id", id).Logger()

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.publishTimeout)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()
		err := d.events.Publish(pctx, ev)
		metrics.RecordEventPublish(err)
		if err != nil {
			l.Warn().Err(err).Msg("publish listing event failed")
		}
	}()
}

// Wait blocks until every in-flight event publish has finished.
func (d *Directory) Wait() {
	d.wg.Wait()
}
