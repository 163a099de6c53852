package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/hertz-contrib/cors"
	"user-api/pkg/common/config"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestIDMiddleware propagates or assigns a request id
func RequestIDMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		reqID := strings.TrimSpace(string(ctx.GetHeader(RequestIDHeader)))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx.Set(requestIDKey, reqID)
		ctx.Response.Header.Set(RequestIDHeader, reqID)
		ctx.Next(c)
	}
}

// RequestID returns the id assigned by RequestIDMiddleware, if any.
func RequestID(ctx *app.RequestContext) string {
	return ctx.GetString(requestIDKey)
}

// LoggerMiddleware structured request log
func LoggerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c)
		latency := time.Since(start)

		hlog.CtxInfof(c, "| %3d | %13v | %15s | %-7s | %s | req=%s",
			ctx.Response.StatusCode(),
			latency,
			ctx.ClientIP(),
			ctx.Method(),
			ctx.Path(),
			RequestID(ctx),
		)
	}
}

/*
	Select the environment at startup:
	export APP_ENV=production
	go run ./cmd/web
*/

// RecoveryMiddleware turns panics into a 500; stack traces are only returned outside production
func RecoveryMiddleware(cfg *config.Config) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())

				hlog.CtxErrorf(c, "[PANIC RECOVERED] req=%s %v\n%s", RequestID(ctx), err, stack)

				if cfg.IsProd() {
					ctx.AbortWithStatusJSON(consts.StatusInternalServerError, utils.H{
						"status":  consts.StatusInternalServerError,
						"message": "internal server error",
					})
				} else {
					ctx.AbortWithStatusJSON(consts.StatusInternalServerError, utils.H{
						"status":  consts.StatusInternalServerError,
						"message": fmt.Sprintf("%v", err),
						"stack":   strings.Split(stack, "\n"),
					})
				}
			}
		}()
		ctx.Next(c)
	}
}

// CORSMiddleware cross origin policy
func CORSMiddleware(corsConfig config.CORSConfig) app.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:     corsConfig.AllowOrigins,
		AllowMethods:     corsConfig.AllowMethods,
		AllowHeaders:     corsConfig.AllowHeaders,
		ExposeHeaders:    corsConfig.ExposeHeaders,
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           time.Duration(corsConfig.MaxAge) * time.Second,
	}
	if len(corsConfig.TrustedDomains) > 0 {
		// subdomains of trusted domains are accepted in addition to AllowOrigins
		cfg.AllowOriginFunc = func(origin string) bool {
			for _, domain := range corsConfig.TrustedDomains {
				if strings.HasSuffix(origin, domain) {
					return true
				}
			}
			return false
		}
	}
	return cors.New(cfg)
}

// BodyLimitMiddleware rejects requests whose declared body exceeds maxBodySize
func BodyLimitMiddleware(maxBodySize int64) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if maxBodySize > 0 && int64(ctx.Request.Header.ContentLength()) > maxBodySize {
			hlog.CtxWarnf(c, "request body too large path=%s size=%d", ctx.Path(), ctx.Request.Header.ContentLength())
			ctx.AbortWithStatusJSON(consts.StatusRequestEntityTooLarge, utils.H{
				"status":  consts.StatusRequestEntityTooLarge,
				"message": "request body exceeds max size",
			})
			return
		}
		ctx.Next(c)
	}
}
