package handler

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stayharvest/stayharvest/models"
	"github.com/stayharvest/stayharvest/webhook"
)

// jobStore holds all in-flight and completed jobs.
var jobStore sync.Map

func init() {
	// Background goroutine to expire jobs older than 1 hour.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-1 * time.Hour).Unix()
			jobStore.Range(func(key, value any) bool {
				job := value.(*models.Job)
				if job.CreatedAt < cutoff {
					jobStore.Delete(key)
				}
				return true
			})
		}
	}()
}

func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// newJob registers a job and returns it.
func newJob(prefix string, total int, webhookURL, webhookSecret string) *models.Job {
	job := &models.Job{
		ID:            prefix + "-" + randomID(),
		Status:        models.JobStatusProcessing,
		Total:         total,
		CreatedAt:     time.Now().Unix(),
		WebhookURL:    webhookURL,
		WebhookSecret: webhookSecret,
	}
	jobStore.Store(job.ID, job)
	return job
}

// finishJob stamps the terminal state and fires the job's webhook, if any.
func finishJob(job *models.Job, status string, result *models.ResultEnvelope, eventType string) {
	job.Status = status
	job.Result = result
	if job.WebhookURL == "" {
		return
	}
	webhook.DeliverAsync(job.WebhookURL, job.WebhookSecret, &webhook.Event{
		Type:      eventType,
		JobID:     job.ID,
		Timestamp: time.Now().Unix(),
		Data:      result,
	})
}

// GetJob returns a handler for GET /api/v1/jobs/:id.
func GetJob() gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")
		val, ok := jobStore.Load(jobID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{
				"error": models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "job not found",
				},
			})
			return
		}

		job := val.(*models.Job)
		c.JSON(http.StatusOK, models.JobStatusResponse{
			ID:        job.ID,
			Status:    job.Status,
			Completed: job.Completed,
			Total:     job.Total,
			Result:    job.Result,
		})
	}
}
