package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/neuromancers/session-scheduler/internal/cache"
	"github.com/neuromancers/session-scheduler/internal/config"
	dbpkg "github.com/neuromancers/session-scheduler/internal/db"
	"github.com/neuromancers/session-scheduler/internal/logging"
	"github.com/neuromancers/session-scheduler/internal/meetings"
	"github.com/neuromancers/session-scheduler/internal/notifications"
	"github.com/neuromancers/session-scheduler/internal/reminders"
	"github.com/neuromancers/session-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	logger := logging.New()
	defer logger.Sync()

	db := dbpkg.NewDB(cfg, logger)
	c := cache.New(cfg)

	// Background jobs: meeting links + reminder emails.
	runner := reminders.NewRunner(
		db,
		c,
		meetings.New(cfg, logger),
		notifications.New(cfg, logger),
		logger,
	)
	if err := runner.Start(); err != nil {
		logger.Fatal("failed to start reminder scheduler", zap.Error(err))
	}
	defer runner.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, c, logger)

	logger.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
