package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayharvest/stayharvest/crawl"
	"github.com/stayharvest/stayharvest/models"
)

// PostListing returns a handler for POST /api/v1/listing: a synchronous
// single-listing detail extraction. The caller waits for the full pipeline,
// so the request context bounds the work.
func PostListing(runner *crawl.Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ListingResponse{
				Success: false,
				Error:   &models.ErrorDetail{Code: models.ErrCodeInvalidInput, Message: err.Error()},
			})
			return
		}
		if serr := req.Validate(); serr != nil {
			c.JSON(http.StatusBadRequest, models.ListingResponse{Success: false, Error: serr.ToDetail()})
			return
		}

		start := time.Now()
		detail, err := runner.Listing(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadGateway, models.ListingResponse{
				Success:               false,
				ScrapedAt:             time.Now().UTC().Format(time.RFC3339),
				ProcessingTimeSeconds: time.Since(start).Seconds(),
				Error:                 errorDetailOf(err),
			})
			return
		}

		c.JSON(http.StatusOK, models.ListingResponse{
			Success:               true,
			ScrapedAt:             time.Now().UTC().Format(time.RFC3339),
			ProcessingTimeSeconds: time.Since(start).Seconds(),
			Listing:               detail,
		})
	}
}
