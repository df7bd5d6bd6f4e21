package api

import (
	"net/http"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the shared exercise library.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type CreateExerciseRequest struct {
	Name          string `json:"name" binding:"required"`
	MuscleGroup   string `json:"muscleGroup"`
	ExecutionType string `json:"executionType"`
	Description   string `json:"description"`
	VideoURL      string `json:"videoUrl"`
	ImageURL      string `json:"imageUrl"`
}

type MediaUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

func (h *ExerciseHandler) List(c *gin.Context) {
	payload := filterPayload(c)
	if len(payload) == 0 {
		exercises, err := h.exerciseService.List(c.Request.Context(), sortOrder(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, exercises)
		return
	}

	exercises, err := h.exerciseService.Filter(c.Request.Context(), payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

func (h *ExerciseHandler) Filter(c *gin.Context) {
	payload, ok := filterBody(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.Filter(c.Request.Context(), payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

func (h *ExerciseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "exercise name is required")
		return
	}

	exercise := &domain.Exercise{
		Name:          req.Name,
		MuscleGroup:   req.MuscleGroup,
		ExecutionType: req.ExecutionType,
		Description:   req.Description,
		VideoURL:      req.VideoURL,
		ImageURL:      req.ImageURL,
	}

	created, err := h.exerciseService.Create(c.Request.Context(), user.ID, exercise)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ExerciseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RequestMediaUpload hands out a presigned PUT URL for exercise demo media.
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "contentType is required")
		return
	}

	media, err := h.exerciseService.RequestMediaUpload(c.Request.Context(), id, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// MediaDownloadURL returns a short-lived GET URL for the exercise's media.
func (h *ExerciseHandler) MediaDownloadURL(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	url, err := h.exerciseService.MediaDownloadURL(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
