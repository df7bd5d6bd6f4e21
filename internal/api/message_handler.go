package api

import (
	"net/http"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler serves messages and notifications between users.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

type SendMessageRequest struct {
	RecipientID string             `json:"recipientId" binding:"required"`
	ClientID    string             `json:"clientId"`
	Kind        domain.MessageKind `json:"kind" binding:"omitempty,oneof=message notification reminder"`
	Body        string             `json:"body" binding:"required"`
}

func (h *MessageHandler) List(c *gin.Context) {
	user := currentUser(c)

	payload := filterPayload(c)
	if len(payload) == 0 {
		messages, err := h.messageService.List(c.Request.Context(), user.ID, sortOrder(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, messages)
		return
	}

	messages, err := h.messageService.Filter(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) Filter(c *gin.Context) {
	user := currentUser(c)
	payload, ok := filterBody(c)
	if !ok {
		return
	}

	messages, err := h.messageService.Filter(c.Request.Context(), user.ID, payload, sortOrder(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) Get(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	msg, err := h.messageService.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) Send(c *gin.Context) {
	user := currentUser(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "recipientId and body are required")
		return
	}
	recipientID, err := primitive.ObjectIDFromHex(req.RecipientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid recipientId")
		return
	}

	msg := &domain.Message{
		RecipientID: recipientID,
		Kind:        req.Kind,
		Body:        req.Body,
	}
	if req.ClientID != "" {
		clientID, err := primitive.ObjectIDFromHex(req.ClientID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid clientId")
			return
		}
		msg.ClientID = &clientID
	}

	sent, err := h.messageService.Send(c.Request.Context(), user.ID, msg)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sent)
}

// MarkRead flags a message as read.
func (h *MessageHandler) Update(c *gin.Context) {
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

	msg, err := h.messageService.Update(c.Request.Context(), user.ID, id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	msg, err := h.messageService.MarkRead(c.Request.Context(), user.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
