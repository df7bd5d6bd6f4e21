package api

import (
	"net/http"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionHandler serves the financial ledger.
type TransactionHandler struct {
	financeService service.FinanceService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(financeService service.FinanceService) *TransactionHandler {
	return &TransactionHandler{financeService: financeService}
}

type CreateTransactionRequest struct {
	ClientID    string                 `json:"clientId"`
	ClientName  string                 `json:"clientName"`
	Amount      float64                `json:"amount"`
	Kind        domain.TransactionKind `json:"kind" binding:"required,oneof=class-completed payment refund other"`
	Method      string                 `json:"method"`
	Description string                 `json:"description"`
	OccurredAt  *time.Time             `json:"occurredAt"`
}

func (h *TransactionHandler) List(c *gin.Context) {
	user := currentUser(c)

	payload := filterPayload(c)
	if len(payload) == 0 {
		txs, err := h.financeService.List(c.Request.Context(), user.ID, sortOrder(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, txs)
		return
	}

	txs, err := h.financeService.Filter(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (h *TransactionHandler) Filter(c *gin.Context) {
	user := currentUser(c)
	payload, ok := filterBody(c)
	if !ok {
		return
	}

	transactions, err := h.financeService.Filter(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tx, err := h.financeService.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "a valid kind is required")
		return
	}

	tx := &domain.Transaction{
		ClientName:  req.ClientName,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Method:      req.Method,
		Description: req.Description,
	}
	if req.ClientID != "" {
		clientID, err := primitive.ObjectIDFromHex(req.ClientID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid clientId")
			return
		}
		tx.ClientID = &clientID
	}
	if req.OccurredAt != nil {
		tx.OccurredAt = *req.OccurredAt
	}

	created, err := h.financeService.Create(c.Request.Context(), user.ID, tx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TransactionHandler) Update(c *gin.Context) {
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

	tx, err := h.financeService.Update(c.Request.Context(), user.ID, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.financeService.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
