package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guibitar/fit-flow-control-sub001/internal/domain"
	"github.com/guibitar/fit-flow-control-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubAuthService accepts a single known token and returns a canned user.
type stubAuthService struct {
	token string
	user  *domain.User
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, service.ErrInvalidCredentials
}

func (s *stubAuthService) Authenticate(_ context.Context, token string) (*domain.User, *domain.Session, error) {
	if token != s.token {
		return nil, nil, service.ErrTokenInvalid
	}
	return s.user, &domain.Session{ID: "sess-1", UserID: s.user.ID}, nil
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) UpdateProfile(context.Context, primitive.ObjectID, map[string]any) (*domain.User, error) {
	return s.user, nil
}

func (s *stubAuthService) ListUsers(context.Context) ([]domain.User, error) { return nil, nil }

func (s *stubAuthService) CreateUser(context.Context, string, string, string, domain.Role, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) UpdateUser(context.Context, primitive.ObjectID, map[string]any) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) EnsureAdmin(context.Context, string, string, string) error { return nil }

func newAuthTestRouter(stub *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/", AuthMiddleware(stub))
	protected.GET("/whoami", func(c *gin.Context) {
		user := currentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})

	admin := protected.Group("/admin", RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func authRequest(t *testing.T, router *gin.Engine, path, header string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{token: "good"})

	rec := authRequest(t, router, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{token: "good"})

	for _, header := range []string{"good", "Basic good", "Bearer one two"} {
		rec := authRequest(t, router, "/whoami", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{token: "good"})

	rec := authRequest(t, router, "/whoami", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareSetsUser(t *testing.T) {
	stub := &stubAuthService{
		token: "good",
		user:  &domain.User{ID: primitive.NewObjectID(), Email: "coach@example.com", Role: domain.RoleUser},
	}
	router := newAuthTestRouter(stub)

	rec := authRequest(t, router, "/whoami", "Bearer good")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "coach@example.com", body["email"])
}

func TestRequireAdminRejectsRegularUser(t *testing.T) {
	stub := &stubAuthService{
		token: "good",
		user:  &domain.User{ID: primitive.NewObjectID(), Email: "coach@example.com", Role: domain.RoleUser},
	}
	router := newAuthTestRouter(stub)

	rec := authRequest(t, router, "/admin/ping", "Bearer good")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	stub := &stubAuthService{
		token: "good",
		user:  &domain.User{ID: primitive.NewObjectID(), Email: "root@example.com", Role: domain.RoleAdmin},
	}
	router := newAuthTestRouter(stub)

	rec := authRequest(t, router, "/admin/ping", "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
}
