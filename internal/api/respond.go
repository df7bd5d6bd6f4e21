package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/guibitar/fit-flow-control-sub001/internal/apperrors"
	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextUserKey    = "currentUser"
	ContextSessionKey = "currentSession"
)

// errorMessage extracts the human-readable message from an error chain.
// The machine code travels in the separate "code" field, so the message
// stays displayable as-is.
func errorMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// respondError maps a service error onto the wire format. Every error body
// carries a human-readable message plus a stable machine code.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		// Internal details stay out of the response body.
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error", "code": kind})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": errorMessage(err), "code": kind})
}

// abortWithError returns a JSON error with an explicit status, for
// transport-level failures that never reach the service layer.
func abortWithError(c *gin.Context, code int, message string) {
	kind := apperrors.KindInternal
	switch code {
	case http.StatusBadRequest:
		kind = apperrors.KindValidation
	case http.StatusUnauthorized:
		kind = apperrors.KindUnauthorized
	case http.StatusForbidden:
		kind = apperrors.KindForbidden
	case http.StatusNotFound:
		kind = apperrors.KindNotFound
	}
	c.AbortWithStatusJSON(code, gin.H{"error": message, "code": kind})
}

// currentUser returns the authenticated user placed in the context by
// AuthMiddleware.
func currentUser(c *gin.Context) *domain.User {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := raw.(*domain.User)
	return user
}

// currentSession returns the live session placed in the context by
// AuthMiddleware.
func currentSession(c *gin.Context) *domain.Session {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, _ := raw.(*domain.Session)
	return session
}

// pathID parses an ObjectID path parameter, aborting with 400 on garbage.
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// sortOrder reads the ?orderBy= query parameter ("order" is accepted as an
// alias). Anything but "asc" keeps the newest-first default.
func sortOrder(c *gin.Context) int {
	direction := c.Query("orderBy")
	if direction == "" {
		direction = c.Query("order")
	}
	if direction == "asc" {
		return repository.OrderAsc
	}
	return repository.OrderDesc
}

// filterBody binds the JSON equality-filter object of a POST /filter
// request. An empty body means "no predicates" and lists everything.
func filterBody(c *gin.Context) (map[string]any, bool) {
	payload := map[string]any{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			abortWithError(c, http.StatusBadRequest, "filter body must be a JSON object")
			return nil, false
		}
	}
	return payload, true
}

// filterPayload reassembles query parameters into an equality-filter map.
// Reserved parameters used by the handler itself are skipped.
func filterPayload(c *gin.Context) map[string]any {
	payload := map[string]any{}
	for key, values := range c.Request.URL.Query() {
		if key == "orderBy" || key == "order" || len(values) == 0 {
			continue
		}
		payload[key] = values[0]
	}
	return payload
}
