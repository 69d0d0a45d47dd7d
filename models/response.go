package models

import "time"

// Job statuses. A job is "partial" when some listings produced error-only
// records but at least one succeeded.
const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusPartial    = "partial"
	JobStatusFailed     = "failed"
)

// ResultEnvelope is the metadata wrapper handed to the result sink with every
// finished job.
type ResultEnvelope struct {
	Success               bool    `json:"success"`
	ScrapedAt             string  `json:"scraped_at"` // ISO-8601
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`

	// Listings is set for search-only jobs.
	Listings []ListingSummary `json:"listings,omitempty"`

	// Details is set for combined scrape jobs. One entry per attempted
	// listing, either complete or carrying an Error string.
	Details []DetailedListing `json:"details,omitempty"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// NewEnvelope stamps a successful envelope measured from start.
func NewEnvelope(start time.Time) ResultEnvelope {
	return ResultEnvelope{
		Success:               true,
		ScrapedAt:             time.Now().UTC().Format(time.RFC3339),
		ProcessingTimeSeconds: time.Since(start).Seconds(),
	}
}

// JobResponse is the immediate response for async job submission.
type JobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// JobStatusResponse is the response for GET /api/v1/jobs/:id.
type JobStatusResponse struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	Result    *ResultEnvelope `json:"result,omitempty"`
}

// Job tracks an in-progress crawl operation.
type Job struct {
	ID            string
	Status        string
	Total         int
	Completed     int
	Result        *ResultEnvelope
	CreatedAt     int64 // unix timestamp
	WebhookURL    string
	WebhookSecret string
}

// ListingResponse is the response for POST /api/v1/listing.
type ListingResponse struct {
	Success               bool             `json:"success"`
	ScrapedAt             string           `json:"scraped_at,omitempty"`
	ProcessingTimeSeconds float64          `json:"processing_time_seconds,omitempty"`
	Listing               *DetailedListing `json:"listing,omitempty"`
	Error                 *ErrorDetail     `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status       string       `json:"status"`
	Uptime       string       `json:"uptime"`
	SessionStats SessionStats `json:"session_stats"`
	Version      string       `json:"version"`
}

// SessionStats reports the state of the browser session manager for the
// process-supervision collaborator.
type SessionStats struct {
	ActiveSessions int `json:"active_sessions"`
	ActiveTabs     int `json:"active_tabs"`
}
