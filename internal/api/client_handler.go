package api

import (
	"net/http"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ClientHandler holds the client service dependency.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type CreateClientRequest struct {
	Name            string     `json:"name" binding:"required"`
	Email           string     `json:"email" binding:"omitempty,email"`
	Phone           string     `json:"phone"`
	HeightCm        float64    `json:"heightCm"`
	WeightKg        float64    `json:"weightKg"`
	Sex             string     `json:"sex"`
	BirthDate       *time.Time `json:"birthDate"`
	Goal            string     `json:"goal"`
	Status          string     `json:"status" binding:"omitempty,oneof=active inactive"`
	DefaultRate     float64    `json:"defaultRate"`
	DefaultLocation string     `json:"defaultLocation"`
}

// List returns the caller's clients, optionally narrowed by query-string
// equality filters.
func (h *ClientHandler) List(c *gin.Context) {
	user := currentUser(c)

	payload := filterPayload(c)
	if len(payload) == 0 {
		clients, err := h.clientService.List(c.Request.Context(), user.ID, sortOrder(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, clients)
		return
	}

	clients, err := h.clientService.Filter(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

// Filter lists clients matching the equality predicates in the JSON body.
func (h *ClientHandler) Filter(c *gin.Context) {
	user := currentUser(c)
	payload, ok := filterBody(c)
	if !ok {
		return
	}

	clients, err := h.clientService.Filter(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "client name is required")
		return
	}

	client := &domain.Client{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		HeightCm:        req.HeightCm,
		WeightKg:        req.WeightKg,
		Sex:             req.Sex,
		BirthDate:       req.BirthDate,
		Goal:            req.Goal,
		Status:          domain.ClientStatus(req.Status),
		DefaultRate:     req.DefaultRate,
		DefaultLocation: req.DefaultLocation,
	}

	created, err := h.clientService.Create(c.Request.Context(), user.ID, client)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ClientHandler) Update(c *gin.Context) {
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

	client, err := h.clientService.Update(c.Request.Context(), user.ID, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Balance returns the client's outstanding balance: the signed sum of their
// ledger entries.
func (h *ClientHandler) Balance(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	balance, err := h.clientService.Balance(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientId": id.Hex(), "balance": balance})
}
