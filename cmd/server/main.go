package main

import (
	"log"

	_ "pedalboard/docs"
	"pedalboard/internal/config"
	"pedalboard/internal/logger"
	"pedalboard/internal/server"
)

// @title           Pedalboard API
// @version         1.0
// @description     API for composing and sharing pedalboard layouts.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	zl, cleanup := logger.New(cfg.LogLevel, cfg.LogJSON, cfg.LogFile)
	defer cleanup()

	s, err := server.Init(cfg, zl)
	if err != nil {
		log.Fatalf("server initialization failed: %v", err)
	}

	s.Run()
}
