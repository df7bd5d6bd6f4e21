package api

import (
	"net/http"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassHandler serves scheduled classes, roster management, and the
// check-in workflow.
type ClassHandler struct {
	scheduleService service.ScheduleService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(scheduleService service.ScheduleService) *ClassHandler {
	return &ClassHandler{scheduleService: scheduleService}
}

type CreateClassRequest struct {
	PlanID    string               `json:"planId"`
	StartsAt  time.Time            `json:"startsAt" binding:"required"`
	Duration  int                  `json:"durationMin"`
	Modality  domain.ClassModality `json:"modality" binding:"omitempty,oneof=in-person online"`
	Roster    []string             `json:"roster"` // Client ids to enroll
	Notes     string               `json:"notes"`
}

type RosterRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

type CheckInRequest struct {
	Location string   `json:"location"`
	Rate     *float64 `json:"rate"`
}

type SetStatusRequest struct {
	Status domain.ClassStatus `json:"status" binding:"required"`
}

func (h *ClassHandler) List(c *gin.Context) {
	user := currentUser(c)

	payload := filterPayload(c)
	if len(payload) == 0 {
		classes, err := h.scheduleService.List(c.Request.Context(), user.ID, sortOrder(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, classes)
		return
	}

	classes, err := h.scheduleService.Filter(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) Filter(c *gin.Context) {
	user := currentUser(c)
	payload, ok := filterBody(c)
	if !ok {
		return
	}

	classes, err := h.scheduleService.Filter(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) Get(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	class, err := h.scheduleService.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "startsAt is required; modality must be in-person or online")
		return
	}

	class := &domain.ScheduledClass{
		StartsAt: req.StartsAt,
		Duration: req.Duration,
		Modality: req.Modality,
		Notes:    req.Notes,
	}
	if req.Modality == "" {
		class.Modality = domain.ModalityInPerson
	}
	if req.PlanID != "" {
		planID, err := primitive.ObjectIDFromHex(req.PlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid planId")
			return
		}
		class.PlanID = &planID
	}
	for _, raw := range req.Roster {
		clientID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid roster client id")
			return
		}
		class.Roster = append(class.Roster, domain.RosterEntry{ClientID: clientID})
	}

	created, err := h.scheduleService.Create(c.Request.Context(), user.ID, class)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ClassHandler) Update(c *gin.Context) {
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

	class, err := h.scheduleService.Update(c.Request.Context(), user.ID, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.scheduleService.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Enroll adds a client to the class roster.
func (h *ClassHandler) Enroll(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "clientId is required")
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid clientId")
		return
	}

	class, err := h.scheduleService.Enroll(c.Request.Context(), user.ID, id, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

// Unenroll removes a client from the roster.
func (h *ClassHandler) Unenroll(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	class, err := h.scheduleService.Unenroll(c.Request.Context(), user.ID, id, clientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

// CheckIn marks a roster entry as attended and books the class charge.
func (h *ClassHandler) CheckIn(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	// Body is optional; an empty check-in uses the client's defaults.
	var req CheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	class, err := h.scheduleService.CheckIn(c.Request.Context(), user.ID, id, clientID, req.Location, req.Rate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

// SetStatus transitions the class lifecycle.
func (h *ClassHandler) SetStatus(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "status is required")
		return
	}

	class, err := h.scheduleService.SetStatus(c.Request.Context(), user.ID, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

// Cancel is a convenience alias for SetStatus(canceled).
func (h *ClassHandler) Cancel(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	class, err := h.scheduleService.SetStatus(c.Request.Context(), user.ID, id, domain.ClassStatusCanceled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}
