package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/gorm"
	"user-api/pkg/common/config"
	dao "user-api/pkg/core/user/repository/dao/impl"
	"user-api/pkg/core/user/service"
	"user-api/pkg/web/handler"
	"user-api/pkg/web/middleware"
)

// RegisterAPIs wires repository, service and handlers and registers all routes
func RegisterAPIs(h *server.Hertz, cfg *config.Config, db *gorm.DB) {
	userRepo := dao.NewGormUserRepository(db)
	userService := service.NewUserService(userRepo, cfg.Password.BcryptCost)
	userHandler := handler.NewUserHandler(userService)

	var pinger handler.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	} else {
		hlog.Warnf("health check without database ping: %v", err)
	}
	healthHandler := handler.NewHealthCheckHandler(pinger)

	// global middleware, in execution order
	h.Use(
		middleware.RecoveryMiddleware(cfg),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.CORSMiddleware(cfg.Middleware.CORS),
		middleware.BodyLimitMiddleware(cfg.Middleware.Security.MaxBodySize),
		middleware.ErrorHandlerMiddleware(),
	)

	h.GET("/health", healthHandler.AdvancedHealthCheck)

	userGroup := h.Group(handler.UsersBasePath)
	{
		userGroup.GET("/:id", userHandler.FindByID)
		userGroup.POST("/create", userHandler.CreateUser)
	}
}
