package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/calmharbor/counsel-api/internal/config"
	dbpkg "github.com/calmharbor/counsel-api/internal/db"
	"github.com/calmharbor/counsel-api/internal/logger"
	"github.com/calmharbor/counsel-api/internal/middleware"
	"github.com/calmharbor/counsel-api/internal/routes"
)

func main() {

	cfg := config.Load()

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	db := dbpkg.NewDB(cfg, zlog)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, zlog)

	zlog.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
