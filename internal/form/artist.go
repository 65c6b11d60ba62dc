package form

import (
	"net/url"

	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// ArtistForm is the artist submission and edit prefill.
type ArtistForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=255"`
	City               string   `form:"city" json:"city" validate:"max=120"`
	State              string   `form:"state" json:"state" validate:"max=120"`
	Phone              string   `form:"phone" json:"phone" validate:"max=120"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"max=500"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"max=120"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"max=120"`
	Genres             []string `form:"genres" json:"genres"`
	SeekingVenue       bool     `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description"`
}

// ParseArtist reads a create submission.
func ParseArtist(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Phone:              text(values, "phone"),
		ImageLink:          text(values, "image_link"),
		FacebookLink:       text(values, "facebook_link"),
		WebsiteLink:        text(values, "website_link"),
		Genres:             list(values, "genres"),
		SeekingVenue:       checked(values, "seeking_venue"),
		SeekingDescription: text(values, "seeking_description"),
	}
}

// ArtistFromModel builds the edit prefill for a.
func ArtistFromModel(a *model.Artist) ArtistForm {
	genres := a.Genres
	if genres == nil {
		genres = []string{}
	}
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		Genres:             genres,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

func (f ArtistForm) Validate() error { return check(f) }

// Model converts the form into an artist row.
func (f ArtistForm) Model() *model.Artist {
	return &model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
		Genres:             f.Genres,
	}
}

// ArtistPatch is an artist edit submission; see VenuePatch.
type ArtistPatch struct {
	Name               *string
	City               *string
	State              *string
	Phone              *string
	ImageLink          *string
	FacebookLink       *string
	Website            *string
	SeekingDescription *string
	SeekingVenue       bool
	Genres             []string
}

func ParseArtistPatch(values url.Values) ArtistPatch {
	return ArtistPatch{
		Name:               present(values, "name"),
		City:               present(values, "city"),
		State:              present(values, "state"),
		Phone:              present(values, "phone"),
		ImageLink:          present(values, "image_link"),
		FacebookLink:       present(values, "facebook_link"),
		Website:            present(values, "website_link"),
		SeekingDescription: present(values, "seeking_description"),
		SeekingVenue:       checked(values, "seeking_venue"),
		Genres:             list(values, "genres"),
	}
}

// Apply merges the patch over f.
func (p ArtistPatch) Apply(f *ArtistForm) {
	assign(&f.Name, p.Name)
	assign(&f.City, p.City)
	assign(&f.State, p.State)
	assign(&f.Phone, p.Phone)
	assign(&f.ImageLink, p.ImageLink)
	assign(&f.FacebookLink, p.FacebookLink)
	assign(&f.WebsiteLink, p.Website)
	assign(&f.SeekingDescription, p.SeekingDescription)
	f.SeekingVenue = p.SeekingVenue
	f.Genres = p.Genres
}
