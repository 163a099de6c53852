package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"user-api/pkg/common/config"
	apperrors "user-api/pkg/common/errors"
	"user-api/pkg/web/model"
)

func newErrorServer(err error) *server.Hertz {
	h := server.New()
	h.Use(ErrorHandlerMiddleware())
	h.GET("/fail", func(ctx context.Context, c *app.RequestContext) {
		_ = c.Error(err)
	})
	return h
}

func decodeError(t *testing.T, body []byte) model.ErrorMessage {
	t.Helper()
	var msg model.ErrorMessage
	require.NoError(t, json.Unmarshal(body, &msg))
	return msg
}

func TestErrorHandler_NotFound(t *testing.T) {
	h := newErrorServer(apperrors.NewNotFound("User not found with id 42"))

	resp := ut.PerformRequest(h.Engine, http.MethodGet, "/fail", nil).Result()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, model.ErrorMessage{Message: "User not found with id 42", Status: 404}, decodeError(t, resp.Body()))
}

func TestErrorHandler_UnclassifiedHidesDetails(t *testing.T) {
	h := newErrorServer(errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	resp := ut.PerformRequest(h.Engine, http.MethodGet, "/fail", nil).Result()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	msg := decodeError(t, resp.Body())
	assert.Equal(t, "internal server error", msg.Message)
	assert.Equal(t, http.StatusInternalServerError, msg.Status)
}

func TestErrorHandler_NoErrorPassesThrough(t *testing.T) {
	h := server.New()
	h.Use(ErrorHandlerMiddleware())
	h.GET("/ok", func(ctx context.Context, c *app.RequestContext) {
		c.String(http.StatusOK, "ok")
	})

	resp := ut.PerformRequest(h.Engine, http.MethodGet, "/ok", nil).Result()

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "ok", string(resp.Body()))
}

func TestRecovery_DevelopmentIncludesPanicValue(t *testing.T) {
	cfg := config.Default()
	h := server.New()
	h.Use(RecoveryMiddleware(cfg))
	h.GET("/panic", func(ctx context.Context, c *app.RequestContext) {
		panic("kaboom")
	})

	resp := ut.PerformRequest(h.Engine, http.MethodGet, "/panic", nil).Result()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "kaboom")
}

func TestCORS_AllowedOrigin(t *testing.T) {
	h := server.New()
	h.Use(CORSMiddleware(config.CORSConfig{
		AllowOrigins:   []string{"http://localhost:3000"},
		AllowMethods:   []string{"GET"},
		TrustedDomains: []string{".example.com"},
		MaxAge:         3600,
	}))
	h.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		c.String(http.StatusOK, "pong")
	})

	resp := ut.PerformRequest(h.Engine, http.MethodGet, "/ping", nil,
		ut.Header{Key: "Origin", Value: "http://localhost:3000"}).Result()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = ut.PerformRequest(h.Engine, http.MethodGet, "/ping", nil,
		ut.Header{Key: "Origin", Value: "https://app.example.com"}).Result()
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = ut.PerformRequest(h.Engine, http.MethodGet, "/ping", nil,
		ut.Header{Key: "Origin", Value: "https://evil.test"}).Result()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
}

func TestCORS_PreflightMaxAgeInSeconds(t *testing.T) {
	h := server.New()
	h.Use(CORSMiddleware(config.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST"},
		MaxAge:       43200,
	}))
	pong := func(ctx context.Context, c *app.RequestContext) {
		c.String(http.StatusOK, "pong")
	}
	h.POST("/ping", pong)
	h.OPTIONS("/ping", pong)

	resp := ut.PerformRequest(h.Engine, http.MethodOptions, "/ping", nil,
		ut.Header{Key: "Origin", Value: "http://localhost:3000"},
		ut.Header{Key: "Access-Control-Request-Method", Value: "POST"}).Result()

	assert.Equal(t, "43200", resp.Header.Get("Access-Control-Max-Age"))
}
