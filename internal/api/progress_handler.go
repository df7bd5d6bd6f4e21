package api

import (
	"net/http"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler serves physical assessments and progress entries.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type CreateAssessmentRequest struct {
	ClientID     string             `json:"clientId" binding:"required"`
	TakenAt      *time.Time         `json:"takenAt"`
	WeightKg     float64            `json:"weightKg"`
	BodyFatPct   float64            `json:"bodyFatPct"`
	Measurements map[string]float64 `json:"measurements"`
	Notes        string             `json:"notes"`
}

type CreateProgressRequest struct {
	ClientID     string                     `json:"clientId" binding:"required"`
	Kind         domain.ProgressKind        `json:"kind" binding:"omitempty,oneof=weight measurements physical-assessment performance"`
	WeightKg     *float64                   `json:"weightKg"`
	BodyFatPct   *float64                   `json:"bodyFatPct"`
	LeanMassKg   *float64                   `json:"leanMassKg"`
	Measurements map[string]float64         `json:"measurements"`
	Performance  []domain.PerformanceResult `json:"performance"`
	Notes        string                     `json:"notes"`
	Goals        string                     `json:"goals"`
	RecordedAt   *time.Time                 `json:"recordedAt"`
}

// --- Assessments ---

func (h *ProgressHandler) ListAssessments(c *gin.Context) {
	user := currentUser(c)

	payload := filterPayload(c)
	if len(payload) == 0 {
		assessments, err := h.progressService.ListAssessments(c.Request.Context(), user.ID, sortOrder(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, assessments)
		return
	}

	assessments, err := h.progressService.FilterAssessments(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessments)
}

func (h *ProgressHandler) FilterAssessments(c *gin.Context) {
	user := currentUser(c)
	payload, ok := filterBody(c)
	if !ok {
		return
	}

	assessments, err := h.progressService.FilterAssessments(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessments)
}

func (h *ProgressHandler) GetAssessment(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	assessment, err := h.progressService.GetAssessment(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *ProgressHandler) CreateAssessment(c *gin.Context) {
	user := currentUser(c)

	var req CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "clientId is required")
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid clientId")
		return
	}

	assessment := &domain.Assessment{
		ClientID:     clientID,
		WeightKg:     req.WeightKg,
		BodyFatPct:   req.BodyFatPct,
		Measurements: req.Measurements,
		Notes:        req.Notes,
	}
	if req.TakenAt != nil {
		assessment.TakenAt = *req.TakenAt
	}

	created, err := h.progressService.CreateAssessment(c.Request.Context(), user.ID, assessment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProgressHandler) UpdateAssessment(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	assessment, err := h.progressService.UpdateAssessment(c.Request.Context(), user.ID, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *ProgressHandler) DeleteAssessment(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.progressService.DeleteAssessment(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Progress entries ---

func (h *ProgressHandler) ListProgress(c *gin.Context) {
	user := currentUser(c)

	payload := filterPayload(c)
	if len(payload) == 0 {
		entries, err := h.progressService.ListProgress(c.Request.Context(), user.ID, sortOrder(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	entries, err := h.progressService.FilterProgress(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ProgressHandler) FilterProgress(c *gin.Context) {
	user := currentUser(c)
	payload, ok := filterBody(c)
	if !ok {
		return
	}

	entries, err := h.progressService.FilterProgress(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := h.progressService.GetProgress(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ProgressHandler) CreateProgress(c *gin.Context) {
	user := currentUser(c)

	var req CreateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "clientId is required; kind must be a known progress kind")
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid clientId")
		return
	}

	entry := &domain.ProgressEntry{
		ClientID:     clientID,
		Kind:         req.Kind,
		WeightKg:     req.WeightKg,
		BodyFatPct:   req.BodyFatPct,
		LeanMassKg:   req.LeanMassKg,
		Measurements: req.Measurements,
		Performance:  req.Performance,
		Notes:        req.Notes,
		Goals:        req.Goals,
	}
	if req.RecordedAt != nil {
		entry.RecordedAt = *req.RecordedAt
	}

	created, err := h.progressService.CreateProgress(c.Request.Context(), user.ID, entry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.progressService.UpdateProgress(c.Request.Context(), user.ID, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ProgressHandler) DeleteProgress(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.progressService.DeleteProgress(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
