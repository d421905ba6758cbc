// Package configmanagement exposes the active evaluation configuration over
// HTTP. The configuration is loaded once at process start and is read-only
// for the lifetime of the server, so these handlers serve the injected
// snapshot rather than re-reading the environment.
package configmanagement

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transcription-qa-platform/internal/config"
)

// ConfigHandlers serves the threshold set and transcriptor metadata the
// server was started with.
type ConfigHandlers struct {
	Thresholds   config.Thresholds
	Transcriptor config.Transcriptor
}

// GetThresholdsHandler returns the active threshold set.
func (h *ConfigHandlers) GetThresholdsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Thresholds)
}

// GetTranscriptorHandler returns the transcriptor identity metadata
// attached to every evaluation record.
func (h *ConfigHandlers) GetTranscriptorHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Transcriptor)
}
