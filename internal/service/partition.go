package service

import (
	"time"

	"github.com/iliyamo/venue-booking-directory/internal/model"
)

// Partition splits items into those starting strictly before now and those
// starting strictly after it.  An item starting exactly at now is in
// neither.  Order is preserved and both results are non-nil.
func Partition[T any](items []T, now time.Time, start func(T) time.Time) (past, upcoming []T) {
	past, upcoming = []T{}, []T{}
	for _, it := range items {
		switch t := start(it); {
		case t.Before(now):
			past = append(past, it)
		case t.After(now):
			upcoming = append(upcoming, it)
		}
	}
	return past, upcoming
}

// GroupAreas folds venue rows ordered by state and city into one Area per
// distinct (city, state).
func GroupAreas(rows []model.VenueSummary) []model.Area {
	areas := []model.Area{}
	for _, r := range rows {
		n := len(areas)
		if n == 0 || areas[n-1].City != r.City || areas[n-1].State != r.State {
			areas = append(areas, model.Area{City: r.City, State: r.State, Venues: []model.VenueSummary{}})
			n++
		}
		areas[n-1].Venues = append(areas[n-1].Venues, r)
	}
	return areas
}
