package form

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// StartTimeLayouts are the accepted start_time formats, tried in order.
// Values without a zone are read as UTC.
var StartTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
}

// ShowForm is the show submission.
type ShowForm struct {
	ArtistID  uint64    `form:"artist_id" validate:"required"`
	VenueID   uint64    `form:"venue_id" validate:"required"`
	StartTime time.Time `form:"start_time" validate:"required"`
}

// ParseShow reads and validates a show submission.  Ids must be positive
// integers and start_time must match one of StartTimeLayouts.
func ParseShow(values url.Values) (ShowForm, error) {
	var (
		f    ShowForm
		errs ValidationErrors
	)
	parseID := func(key string, dst *uint64) {
		raw := text(values, key)
		if raw == "" {
			return
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: key, Tag: "number", Message: fmt.Sprintf("%s must be a positive integer", key)})
			return
		}
		*dst = id
	}
	parseID("artist_id", &f.ArtistID)
	parseID("venue_id", &f.VenueID)

	if raw := text(values, "start_time"); raw != "" {
		t, err := ParseStartTime(raw)
		if err != nil {
			errs = append(errs, FieldError{Field: "start_time", Tag: "datetime", Message: "start_time is not a recognised date and time"})
		} else {
			f.StartTime = t
		}
	}

	if err := check(f); err != nil {
		if verrs, ok := err.(ValidationErrors); ok {
			errs = append(errs, missingOnly(verrs, errs)...)
		} else {
			return f, err
		}
	}
	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}

// missingOnly drops validator failures for fields that already have a
// format error.
func missingOnly(verrs, existing ValidationErrors) ValidationErrors {
	seen := map[string]bool{}
	for _, e := range existing {
		seen[e.Field] = true
	}
	var out ValidationErrors
	for _, e := range verrs {
		if !seen[e.Field] {
			out = append(out, e)
		}
	}
	return out
}

// ParseStartTime parses s with the first matching layout and returns the
// instant in UTC.
func ParseStartTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range StartTimeLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Model converts the form into a show row.
func (f ShowForm) Model() *model.Show {
	return &model.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: f.StartTime}
}
