package middleware

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	apperrors "user-api/pkg/common/errors"
	"user-api/pkg/web/model"
)

// ErrorHandlerMiddleware renders the last error a handler attached with RequestContext.Error
// as {"message": ..., "status": ...}.
func ErrorHandlerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		ctx.Next(c)

		if len(ctx.Errors) == 0 {
			return
		}
		err := ctx.Errors.Last().Err

		var appErr *apperrors.Error
		if !errors.As(err, &appErr) {
			appErr = apperrors.NewInternal("internal server error", err)
		}

		status := appErr.Status()
		msg := appErr.Message
		if appErr.Kind == apperrors.KindInternal {
			hlog.CtxErrorf(c, "request failed path=%s req=%s: %v", ctx.Path(), RequestID(ctx), err)
			msg = "internal server error"
		} else {
			hlog.CtxDebugf(c, "request rejected path=%s kind=%s: %v", ctx.Path(), appErr.Kind, err)
		}

		ctx.AbortWithStatusJSON(status, model.ErrorMessage{
			Message: msg,
			Status:  status,
		})
	}
}
