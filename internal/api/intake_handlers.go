package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediscribe/internal/ai"
	"mediscribe/internal/utils"
)

// IntakeHandler extracts structured record fields from free text, for
// clients that hold a transcript (or typed notes) and want a prefilled form.
type IntakeHandler struct {
	pipeline *ai.Pipeline
}

func NewIntakeHandler(pipeline *ai.Pipeline) *IntakeHandler {
	return &IntakeHandler{pipeline: pipeline}
}

type extractRequest struct {
	Text string `json:"text" binding:"required"`
}

// Extract runs the provider pipeline over the submitted text. A pipeline
// failure still answers 200: the empty draft plus the extractionFailed flag
// tell the client to fall back to manual entry.
func (h *IntakeHandler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "text is required")
		return
	}

	draft, err := h.pipeline.Extract(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("[Intake] extraction failed: %v", err)
	}

	utils.Success(c, gin.H{
		"draft":            draft,
		"extractionFailed": err != nil,
	})
}
