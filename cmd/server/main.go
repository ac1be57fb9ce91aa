package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/takerupon/ai-ocr-test/internal/config"
	"github.com/takerupon/ai-ocr-test/internal/export/excel"
	"github.com/takerupon/ai-ocr-test/internal/extract/gemini"
	"github.com/takerupon/ai-ocr-test/internal/handler"
	"github.com/takerupon/ai-ocr-test/internal/router"
	"github.com/takerupon/ai-ocr-test/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; deployments set environment variables directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	extractor := gemini.NewClient(&cfg.Gemini)
	if extractor.DemoMode() {
		log.Println("no Gemini API key configured; extraction runs in demo mode")
	}
	exporter := excel.NewExporter()

	workflowSvc := service.NewWorkflowService(extractor, exporter, &cfg.Upload)

	workflowH := handler.NewWorkflowHandler(workflowSvc)
	healthH := handler.NewHealthHandler()

	r := router.Setup(cfg, workflowH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
