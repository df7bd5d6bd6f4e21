package api

import (
	"net/http"
	"time"

	"github.com/guibitar/fit-flow-control-sub001/internal/apperrors"
	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Role        domain.Role       `json:"role"`
	ProfileType string            `json:"profileType,omitempty"`
	Status      domain.UserStatus `json:"status"`
	LastLoginAt *time.Time        `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type CreateUserRequest struct {
	Name        string      `json:"name" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=8"`
	Role        domain.Role `json:"role" binding:"omitempty,oneof=admin user"`
	ProfileType string      `json:"profileType"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		ProfileType: user.ProfileType,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// --- Handler Methods ---

// Login authenticates a user and returns a bearer token plus the account
// profile. Invalid email and wrong password are indistinguishable on the
// wire.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		kind := apperrors.KindOf(err)
		c.AbortWithStatusJSON(apperrors.HTTPStatus(kind), gin.H{
			"success": false,
			"error":   errorMessage(err),
			"code":    kind,
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Token:   token,
		User:    MapUserToResponse(user),
	})
}

// Verify confirms the caller's token is still valid and returns the account
// it belongs to. AuthMiddleware has already done the work.
func (h *AuthHandler) Verify(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortWithError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": MapUserToResponse(user)})
}

// Logout revokes the caller's session. The token is useless afterwards even
// though its signature remains valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := currentSession(c)
	if session == nil {
		abortWithError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), session.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateProfile lets the caller change their own name, email, profile type
// or password. Role and status are not reachable from here.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(updated))
}

// ListUsers returns every account. Admin only.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, MapUserToResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// CreateUser provisions a new account. Admin only.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "name, email and a password of at least 8 characters are required")
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req.Name, req.Email, req.Password, req.Role, req.ProfileType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// UpdateUser modifies any account, including role and status. Admin only.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), id, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}
