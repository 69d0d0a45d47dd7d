package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayharvest/stayharvest/crawl"
	"github.com/stayharvest/stayharvest/models"
)

// PostScrape returns a handler for POST /api/v1/scrape: search plus detail
// extraction over every discovered listing, as a background job.
func PostScrape(runner *crawl.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeJobRequest
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

		job := newJob("scrape", req.MaxListings, req.WebhookURL, req.WebhookSecret)
		go runScrapeJob(runner, job, req)

		c.JSON(http.StatusAccepted, models.JobResponse{ID: job.ID, Status: job.Status})
	}
}

func runScrapeJob(runner *crawl.Runner, job *models.Job, req models.ScrapeJobRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	start := time.Now()

	summaries, details, err := runner.Scrape(ctx, req)
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

	job.Total = len(summaries)
	failed := 0
	for _, d := range details {
		if d.Error != "" {
			failed++
		}
	}
	job.Completed = len(details) - failed

	result := models.NewEnvelope(start)
	result.Listings = summaries
	result.Details = details

	status := models.JobStatusCompleted
	switch {
	case failed == len(details) && len(details) > 0:
		status = models.JobStatusFailed
		result.Success = false
	case failed > 0:
		status = models.JobStatusPartial
	}
	finishJob(job, status, &result, "scrape.completed")
}
