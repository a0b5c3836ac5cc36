package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/config"
	dbpkg "github.com/michaelofdavenport/london-ohio-lions-club-app/internal/db"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/logger"
	"github.com/michaelofdavenport/london-ohio-lions-club-app/internal/routes"
)

func main() {

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Init(cfg.Debug)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Debug {
		r.Use(gin.Logger())
	}

	routes.RegisterRoutes(r, db, cfg)

	logger.L.Infow("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logger.L.Fatalw("server failed", "err", err)
	}
}
