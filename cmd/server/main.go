package main

import (
	"go-restaurant-pos/internal/api"
	"go-restaurant-pos/internal/app"
	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.SetLevel(cfg.LogLevel)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer a.Close()

	r := api.NewRouter(a)

	// --- DEPLOYMENT: Serve the React frontend ---
	r.Static("/assets", "./web/assets")
	r.StaticFile("/vite.svg", "./web/vite.svg")

	// SPA Catch-All: refreshing on "/reports" serves index.html so React can route it
	r.NoRoute(func(c *gin.Context) {
		c.File("./web/index.html")
	})

	log.Info().
		Str("url", cfg.Server.BaseURL).
		Str("store", cfg.Store.Driver).
		Str("timezone", cfg.Report.TimeZone).
		Msg("server starting")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed to start")
	}
}
