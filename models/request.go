package models

import (
	"regexp"
	"strings"
)

// numericID matches the non-empty numeric-string identifiers used for
// listings and host profiles.
var numericID = regexp.MustCompile(`^[0-9]+$`)

// IsNumericID reports whether s is a valid listing/host identifier.
func IsNumericID(s string) bool {
	return numericID.MatchString(s)
}

// SearchRequest is the payload for POST /api/v1/search.
// It runs the search crawler only (no per-listing detail extraction).
type SearchRequest struct {
	// Location is the search location string, e.g. "Miami, FL". Required.
	Location string `json:"location" binding:"required"`

	// MaxListings caps the number of unique listings collected.
	// Default: 20. Max: 1000.
	MaxListings int `json:"max_listings,omitempty" binding:"omitempty,min=1,max=1000"`

	// MinDelayMs / MaxDelayMs bound the randomized inter-request delay.
	MinDelayMs int `json:"min_delay_ms,omitempty" binding:"omitempty,min=0"`
	MaxDelayMs int `json:"max_delay_ms,omitempty" binding:"omitempty,min=0"`

	WebhookURL    string `json:"webhook_url,omitempty" binding:"omitempty,url"`
	WebhookSecret string `json:"webhook_secret,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *SearchRequest) Defaults() {
	if r.MaxListings == 0 {
		r.MaxListings = 20
	}
	if r.MinDelayMs == 0 {
		r.MinDelayMs = 1000
	}
	if r.MaxDelayMs < r.MinDelayMs {
		r.MaxDelayMs = r.MinDelayMs + 2000
	}
}

// Validate rejects malformed input before any browser work starts.
func (r *SearchRequest) Validate() *ScrapeError {
	if strings.TrimSpace(r.Location) == "" {
		return NewScrapeError(ErrCodeInvalidInput, "location must not be empty", nil)
	}
	return nil
}

// ScrapeJobRequest is the payload for POST /api/v1/scrape.
// It runs the search crawler and then the detail crawler over every
// discovered listing.
type ScrapeJobRequest struct {
	// Location is the search location string. Required.
	Location string `json:"location" binding:"required"`

	// MaxListings caps the number of listings fully scraped.
	// Default: 10. Max: 100 (detail extraction is expensive).
	MaxListings int `json:"max_listings,omitempty" binding:"omitempty,min=1,max=100"`

	// Quick skips the most expensive sub-extractions (pricing, host
	// profile, multi-category reviews) to trade completeness for throughput.
	Quick bool `json:"quick,omitempty"`

	MinDelayMs int `json:"min_delay_ms,omitempty" binding:"omitempty,min=0"`
	MaxDelayMs int `json:"max_delay_ms,omitempty" binding:"omitempty,min=0"`

	WebhookURL    string `json:"webhook_url,omitempty" binding:"omitempty,url"`
	WebhookSecret string `json:"webhook_secret,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeJobRequest) Defaults() {
	if r.MaxListings == 0 {
		r.MaxListings = 10
	}
	if r.MinDelayMs == 0 {
		r.MinDelayMs = 1000
	}
	if r.MaxDelayMs < r.MinDelayMs {
		r.MaxDelayMs = r.MinDelayMs + 2000
	}
}

// Validate rejects malformed input before any browser work starts.
func (r *ScrapeJobRequest) Validate() *ScrapeError {
	if strings.TrimSpace(r.Location) == "" {
		return NewScrapeError(ErrCodeInvalidInput, "location must not be empty", nil)
	}
	return nil
}

// ListingRequest is the payload for POST /api/v1/listing: a synchronous
// single-listing detail extraction.
type ListingRequest struct {
	// ListingID is the numeric listing identifier. Required.
	ListingID string `json:"listing_id" binding:"required"`

	// Quick skips pricing, host profile and multi-category reviews.
	Quick bool `json:"quick,omitempty"`
}

// Validate rejects malformed input before any browser work starts.
func (r *ListingRequest) Validate() *ScrapeError {
	if !IsNumericID(r.ListingID) {
		return NewScrapeError(ErrCodeInvalidInput, "listing_id must be a non-empty numeric string", nil)
	}
	return nil
}
