package jobmanagement

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"transcription-qa-platform/internal/datastore"
	"transcription-qa-platform/internal/transcriptstore"
)

// RunHandlers exposes evaluation runs over HTTP. The service is injected at
// router setup so every request shares the same immutable configuration.
type RunHandlers struct {
	Service *RunService
}

// CreateRunRequest defines the expected payload for starting a run.
type CreateRunRequest struct {
	RunName      string `json:"run_name"` // Optional, can be empty
	TextsDir     string `json:"texts_dir" binding:"required"`
	ObjectPrefix string `json:"object_prefix"` // Optional, requires MinIO to be configured
}

// CreateRunHandler starts an evaluation run synchronously and returns the
// full run report.
func (h *RunHandlers) CreateRunHandler(c *gin.Context) {
	var req CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	report, err := h.Service.RunEvaluation(c.Request.Context(), RunOptions{
		RunName:      req.RunName,
		TextsDir:     req.TextsDir,
		ObjectPrefix: req.ObjectPrefix,
	})
	if err != nil {
		if errors.Is(err, transcriptstore.ErrMissingReference) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run evaluation: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, report)
}

// GetRunHandler retrieves a persisted evaluation run by its UUID.
func (h *RunHandlers) GetRunHandler(c *gin.Context) {
	run, err := datastore.GetEvaluationRun(c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListRunsHandler lists all persisted evaluation runs, newest first.
func (h *RunHandlers) ListRunsHandler(c *gin.Context) {
	runs, err := datastore.ListEvaluationRuns()
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if runs == nil {
		runs = []*datastore.EvaluationRun{} // Return empty array instead of null
	}
	c.JSON(http.StatusOK, runs)
}

// GetRunRecordsHandler retrieves the per-transcript records for a run.
func (h *RunHandlers) GetRunRecordsHandler(c *gin.Context) {
	runID := c.Param("id")

	// Check the run itself first to give a clear 404 for unknown IDs.
	if _, err := datastore.GetEvaluationRun(runID); err != nil {
		writeStoreError(c, err)
		return
	}

	records, err := datastore.GetEvaluationRecordsForRun(runID)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	if records == nil {
		records = []*datastore.EvaluationRecordRow{}
	}
	c.JSON(http.StatusOK, records)
}

func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, datastore.ErrNotInitialized):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run persistence is not configured on this server"})
	case strings.Contains(err.Error(), "not found"):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
