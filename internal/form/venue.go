package form

import (
	"net/url"

	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// VenueForm is the venue submission.  It doubles as the prefill document of
// the edit page, which is why it serialises website as website_link.
type VenueForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=255"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,max=120"`
	Address            string   `form:"address" json:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" json:"phone" validate:"max=120"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"max=500"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"max=120"`
	WebsiteLink        string   `form:"website_link" json:"website_link" validate:"max=120"`
	Genres             []string `form:"genres" json:"genres"`
	SeekingTalent      bool     `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description"`
}

// ParseVenue reads a create submission.  Absent text fields are empty and
// the seeking flag is true when its checkbox was submitted at all.
func ParseVenue(values url.Values) VenueForm {
	return VenueForm{
		Name:               text(values, "name"),
		City:               text(values, "city"),
		State:              text(values, "state"),
		Address:            text(values, "address"),
		Phone:              text(values, "phone"),
		ImageLink:          text(values, "image_link"),
		FacebookLink:       text(values, "facebook_link"),
		WebsiteLink:        text(values, "website_link"),
		Genres:             list(values, "genres"),
		SeekingTalent:      checked(values, "seeking_talent"),
		SeekingDescription: text(values, "seeking_description"),
	}
}

// VenueFromModel builds the edit prefill for v.
func VenueFromModel(v *model.Venue) VenueForm {
	genres := v.Genres
	if genres == nil {
		genres = []string{}
	}
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.Website,
		Genres:             genres,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// Validate checks required fields and column limits.
func (f VenueForm) Validate() error { return check(f) }

// Model converts the form into a venue row.  The id is left zero.
func (f VenueForm) Model() *model.Venue {
	return &model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
		Genres:             f.Genres,
	}
}

// VenuePatch is an edit submission.  Only the allow-listed text fields
// below can change; a nil pointer means the field was not submitted.
// Genres and SeekingTalent follow checkbox semantics and always overwrite.
type VenuePatch struct {
	Name               *string
	City               *string
	State              *string
	Address            *string
	Phone              *string
	ImageLink          *string
	FacebookLink       *string
	Website            *string
	SeekingDescription *string
	SeekingTalent      bool
	Genres             []string
}

// ParseVenuePatch reads an edit submission.  Keys outside the allow-list
// are ignored.
func ParseVenuePatch(values url.Values) VenuePatch {
	return VenuePatch{
		Name:               present(values, "name"),
		City:               present(values, "city"),
		State:              present(values, "state"),
		Address:            present(values, "address"),
		Phone:              present(values, "phone"),
		ImageLink:          present(values, "image_link"),
		FacebookLink:       present(values, "facebook_link"),
		Website:            present(values, "website_link"),
		SeekingDescription: present(values, "seeking_description"),
		SeekingTalent:      checked(values, "seeking_talent"),
		Genres:             list(values, "genres"),
	}
}

// Apply merges the patch over f.
func (p VenuePatch) Apply(f *VenueForm) {
	assign(&f.Name, p.Name)
	assign(&f.City, p.City)
	assign(&f.State, p.State)
	assign(&f.Address, p.Address)
	assign(&f.Phone, p.Phone)
	assign(&f.ImageLink, p.ImageLink)
	assign(&f.FacebookLink, p.FacebookLink)
	assign(&f.WebsiteLink, p.Website)
	assign(&f.SeekingDescription, p.SeekingDescription)
	f.SeekingTalent = p.SeekingTalent
	f.Genres = p.Genres
}
