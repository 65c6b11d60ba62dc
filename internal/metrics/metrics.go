// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Listings
	ListingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_listings_created_total",
			Help: "Total number of venues, artists and shows listed",
		},
		[]string{"kind"}, // "venue", "artist", "show"
	)

	ListingWriteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_listing_write_failures_total",
			Help: "Total number of rolled back listing writes",
		},
		[]string{"operation"},
	)

	// Events
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_events_published_total",
			Help: "Listing events sent to the broker by outcome",
		},
		[]string{"outcome"}, // "ok", "error"
	)

	// Redis middleware
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_cache_lookups_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordListingCreated counts a committed create of kind.
func RecordListingCreated(kind string) {
	ListingsCreated.WithLabelValues(kind).Inc()
}

// RecordWriteFailure counts a write that rolled back.
func RecordWriteFailure(operation string) {
	ListingWriteFailures.WithLabelValues(operation).Inc()
}

// RecordEventPublish counts a publish attempt.
func RecordEventPublish(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	EventsPublished.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup counts a response cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(result).Inc()
}
