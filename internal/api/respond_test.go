package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guibitar/fit-flow-control-sub001/internal/apperrors"
	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawURL string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, rawURL, nil)
	return c
}

func TestSortOrderReadsOrderBy(t *testing.T) {
	cases := map[string]int{
		"/clients?orderBy=asc":  repository.OrderAsc,
		"/clients?order=asc":    repository.OrderAsc,
		"/clients?orderBy=desc": repository.OrderDesc,
		"/clients":              repository.OrderDesc,
		"/clients?orderBy=up":   repository.OrderDesc,
	}
	for rawURL, want := range cases {
		c := queryContext(t, rawURL)
		assert.Equal(t, want, sortOrder(c), "url %s", rawURL)
	}
}

func TestFilterPayloadSkipsSortFlags(t *testing.T) {
	c := queryContext(t, "/clients?orderBy=asc&order=asc&status=active")

	payload := filterPayload(c)
	assert.Equal(t, map[string]any{"status": "active"}, payload)
}

func TestErrorMessageStripsKindPrefix(t *testing.T) {
	err := apperrors.New(apperrors.KindNotFound, "client not found")
	assert.Equal(t, "client not found", errorMessage(err))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.Equal(t, "client not found", errorMessage(wrapped))

	assert.Equal(t, "internal server error", errorMessage(fmt.Errorf("driver exploded")))
}
