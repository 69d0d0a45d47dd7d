package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayharvest/stayharvest/crawl"
	"github.com/stayharvest/stayharvest/models"
)

// jobTimeout bounds a whole background job. Generous on purpose: a full
// 1000-listing search walk across 25 pages is slow by design.
const jobTimeout = 2 * time.Hour

// PostSearch returns a handler for POST /api/v1/search. The search walk runs
// as a background job; the response carries the job id to poll.
func PostSearch(runner *crawl.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ResultEnvelope{
				Success: false,
				Error:   &models.ErrorDetail{Code: models.ErrCodeInvalidInput, Message: err.Error()},
			})
			return
		}
		req.Defaults()
		if serr := req.Validate(); serr != nil {
			c.JSON(http.StatusBadRequest, models.ResultEnvelope{Success: false, Error: serr.ToDetail()})
			return
		}

		job := newJob("search", req.MaxListings, req.WebhookURL, req.WebhookSecret)
		go runSearchJob(runner, job, req)

		c.JSON(http.StatusAccepted, models.JobResponse{ID: job.ID, Status: job.Status})
	}
}

func runSearchJob(runner *crawl.Runner, job *models.Job, req models.SearchRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	start := time.Now()

	listings, err := runner.Search(ctx, req)
	if err != nil {
		result := models.ResultEnvelope{
			Success:               false,
			ScrapedAt:             time.Now().UTC().Format(time.RFC3339),
			ProcessingTimeSeconds: time.Since(start).Seconds(),
			Error:                 errorDetailOf(err),
		}
		finishJob(job, models.JobStatusFailed, &result, "job.failed")
		return
	}

	job.Completed = len(listings)
	result := models.NewEnvelope(start)
	result.Listings = listings
	finishJob(job, models.JobStatusCompleted, &result, "search.completed")
}

// errorDetailOf maps any error to the API error shape, preserving scrape
// error codes.
func errorDetailOf(err error) *models.ErrorDetail {
	var serr *models.ScrapeError
	if errors.As(err, &serr) {
		return serr.ToDetail()
	}
	return &models.ErrorDetail{Code: models.ErrCodeInternal, Message: err.Error()}
}
