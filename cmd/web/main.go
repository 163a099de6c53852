package main

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"user-api/pkg/common/config"
	"user-api/pkg/core/user/model"
	"user-api/pkg/web/router"
)

func main() {
	// load configuration
	cfg := config.Load()
	hlog.SetLevel(cfg.HlogLevel())
	hlog.Infof("starting user-api: %s", cfg)

	// connect the database
	db, err := cfg.InitDB()
	if err != nil {
		hlog.Fatalf("Failed to initialize database: %v", err)
	}

	// create the users table if needed
	if err := model.AutoMigrate(db); err != nil {
		hlog.Fatalf("Failed to migrate database: %v", err)
	}

	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)

	router.RegisterAPIs(h, cfg, db)

	h.Spin()
}
