package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mediscribe/internal/ai"
	"mediscribe/internal/middleware"
	"mediscribe/internal/model"
	"mediscribe/internal/service"
	"mediscribe/internal/utils"
)

// PatientHandler exposes the record store over HTTP.
type PatientHandler struct {
	svc    *service.PatientService
	seeder *ai.SampleGenerator // nil when no generation service is configured
}

func NewPatientHandler(svc *service.PatientService, seeder *ai.SampleGenerator) *PatientHandler {
	return &PatientHandler{svc: svc, seeder: seeder}
}

// List handles GET /patients with optional ?q= text search and ?date=
// dd/mm/yy or dd/mm/yyyy creation-day filter. The filters compose as AND.
func (h *PatientHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	records, err := h.svc.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	records = service.FilterByDay(records, c.Query("date"))

	utils.Success(c, gin.H{
		"patients": records,
		"count":    len(records),
	})
}

func (h *PatientHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var in model.PatientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	record, err := h.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"patient": record},
	})
}

func (h *PatientHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	record, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, gin.H{"patient": record})
}

func (h *PatientHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var upd model.PatientUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	record, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), upd)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, gin.H{"patient": record})
}

func (h *PatientHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}

	utils.Success(c, gin.H{"status": "deleted"})
}

// Seed handles POST /patients/seed?count=N: generates fictional records via
// the AI service and stores them for the current user.
func (h *PatientHandler) Seed(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if h.seeder == nil {
		utils.Error(c, http.StatusServiceUnavailable, "sample generation is not configured (GROQ_API_KEY missing)")
		return
	}

	count, err := strconv.Atoi(c.DefaultQuery("count", "3"))
	if err != nil || count < 1 {
		count = 3
	}
	if count > 10 {
		count = 10
	}

	inputs, err := h.seeder.Generate(c.Request.Context(), count)
	if err != nil {
		log.Printf("Sample generation error: %v", err)
		utils.Error(c, http.StatusBadGateway, "sample generation failed: "+err.Error())
		return
	}

	created := make([]*model.Patient, 0, len(inputs))
	for _, in := range inputs {
		record, err := h.svc.Create(c.Request.Context(), userID, in)
		if err != nil {
			log.Printf("Skipping generated record: %v", err)
			continue
		}
		created = append(created, record)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"patients": created, "count": len(created)},
	})
}

// respondStoreError maps store errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.Error(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, model.ErrNotFound):
		utils.Error(c, http.StatusNotFound, "patient record not found")
	case errors.Is(err, model.ErrUnauthorized):
		utils.Error(c, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, model.ErrPersistence):
		log.Printf("Persistence error: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to persist record")
	default:
		log.Printf("Unexpected store error: %v", err)
		utils.Error(c, http.StatusInternalServerError, "internal error")
	}
}
