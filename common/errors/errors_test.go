package errors_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "shop-service/common/errors"
)

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestErrorMiddleware_RendersAttachedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(apperrors.ErrUnknownItems)
	})

	w := serve(r, "/boom")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Selection references unknown items")
}

func TestErrorMiddleware_UnknownErrorBecomesInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("disk on fire"))
	})

	w := serve(r, "/boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestErrorMiddleware_NoErrorLeavesResponseAlone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	w := serve(r, "/ok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OK")
}

func TestAbortWith_WritesImmediatelyAndStopsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlerRan := false
	r.GET("/guarded",
		func(c *gin.Context) { apperrors.AbortWith(c, apperrors.ErrForbidden) },
		func(c *gin.Context) { handlerRan = true },
	)

	w := serve(r, "/guarded")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handlerRan)
}

func TestWrap_DoesNotMutateSentinel(t *testing.T) {
	cause := errors.New("duplicate key")
	wrapped := apperrors.Wrap(apperrors.ErrDatabaseQuery, cause)

	assert.Nil(t, apperrors.ErrDatabaseQuery.Err)
	assert.Equal(t, apperrors.ErrDatabaseQuery.Code, wrapped.Code)
	assert.True(t, errors.Is(wrapped, cause))
}

func TestFrom_PassesThroughAppErrors(t *testing.T) {
	assert.Equal(t, apperrors.ErrNotFound, apperrors.From(apperrors.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, apperrors.From(errors.New("plain")).Code)
}
