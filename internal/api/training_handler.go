package api

import (
	"net/http"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingHandler serves workout plans and workout execution history.
type TrainingHandler struct {
	trainingService service.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

type CreatePlanRequest struct {
	ClientID    string                `json:"clientId" binding:"required"`
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Exercises   []domain.PlanExercise `json:"exercises"`
}

type CreateHistoryRequest struct {
	ClientID    string                  `json:"clientId" binding:"required"`
	PlanID      string                  `json:"planId" binding:"required"`
	PerformedAt *time.Time              `json:"performedAt"`
	Results     []domain.ExerciseResult `json:"results"`
	Rating      int                     `json:"rating" binding:"omitempty,min=1,max=10"`
	Notes       string                  `json:"notes"`
}

// --- Plans ---

func (h *TrainingHandler) ListPlans(c *gin.Context) {
	user := currentUser(c)

	payload := filterPayload(c)
	if len(payload) == 0 {
		plans, err := h.trainingService.ListPlans(c.Request.Context(), user.ID, sortOrder(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, plans)
		return
	}

	plans, err := h.trainingService.FilterPlans(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *TrainingHandler) FilterPlans(c *gin.Context) {
	user := currentUser(c)
	payload, ok := filterBody(c)
	if !ok {
		return
	}

	plans, err := h.trainingService.FilterPlans(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *TrainingHandler) GetPlan(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	plan, err := h.trainingService.GetPlan(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *TrainingHandler) CreatePlan(c *gin.Context) {
	user := currentUser(c)

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "clientId and name are required")
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid clientId")
		return
	}

	plan := &domain.WorkoutPlan{
		ClientID:    clientID,
		Name:        req.Name,
		Description: req.Description,
		Exercises:   req.Exercises,
	}

	created, err := h.trainingService.CreatePlan(c.Request.Context(), user.ID, plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TrainingHandler) UpdatePlan(c *gin.Context) {
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

	plan, err := h.trainingService.UpdatePlan(c.Request.Context(), user.ID, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *TrainingHandler) DeletePlan(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.trainingService.DeletePlan(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Workout history ---

func (h *TrainingHandler) ListHistory(c *gin.Context) {
	user := currentUser(c)

	payload := filterPayload(c)
	if len(payload) == 0 {
		records, err := h.trainingService.ListHistory(c.Request.Context(), user.ID, sortOrder(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}

	records, err := h.trainingService.FilterHistory(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *TrainingHandler) FilterHistory(c *gin.Context) {
	user := currentUser(c)
	payload, ok := filterBody(c)
	if !ok {
		return
	}

	records, err := h.trainingService.FilterHistory(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *TrainingHandler) GetHistory(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.trainingService.GetHistory(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *TrainingHandler) CreateHistory(c *gin.Context) {
	user := currentUser(c)

	var req CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "clientId and planId are required; rating must be 1-10")
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid clientId")
		return
	}
	planID, err := primitive.ObjectIDFromHex(req.PlanID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid planId")
		return
	}

	record := &domain.WorkoutHistory{
		ClientID: clientID,
		PlanID:   planID,
		Results:  req.Results,
		Rating:   req.Rating,
		Notes:    req.Notes,
	}
	if req.PerformedAt != nil {
		record.PerformedAt = *req.PerformedAt
	}

	created, err := h.trainingService.CreateHistory(c.Request.Context(), user.ID, record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TrainingHandler) UpdateHistory(c *gin.Context) {
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

	record, err := h.trainingService.UpdateHistory(c.Request.Context(), user.ID, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *TrainingHandler) DeleteHistory(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.trainingService.DeleteHistory(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
