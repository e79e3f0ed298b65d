package main

import (
	"log"
	"os"

	"github.com/jengzang/elevation-backend-go/internal/api"
	"github.com/jengzang/elevation-backend-go/internal/config"
	"github.com/jengzang/elevation-backend-go/internal/database"
	"github.com/jengzang/elevation-backend-go/internal/handler"
	"github.com/jengzang/elevation-backend-go/internal/repository"
	"github.com/jengzang/elevation-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	migrator := database.NewMigrationManager(db, cfg.MigrationsPath)
	if err := migrator.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	analysisRepo := repository.NewAnalysisRepository(db)
	benchmarkRepo := repository.NewBenchmarkRepository(db)
	analysisService := service.NewAnalysisService(analysisRepo, benchmarkRepo, cfg.GPXDir, cfg.Workers)
	analysisHandler := handler.NewAnalysisHandler(analysisService, cfg.BenchmarkCSV)

	// Seed benchmarks when the CSV exists; the reload endpoint covers updates.
	if _, err := os.Stat(cfg.BenchmarkCSV); err == nil {
		if _, err := analysisService.ReloadBenchmarks(cfg.BenchmarkCSV); err != nil {
			log.Printf("[Server] benchmark seed failed: %v", err)
		}
	}

	router := api.SetupRouter(cfg, analysisHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
