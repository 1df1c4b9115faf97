package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/floorsight/floorplan-api/internal/analyzer"
	"github.com/floorsight/floorplan-api/internal/config"
	"github.com/floorsight/floorplan-api/internal/logger"
	"github.com/floorsight/floorplan-api/internal/metrics"
	"github.com/floorsight/floorplan-api/internal/raster"
	"github.com/floorsight/floorplan-api/internal/search"
	"github.com/floorsight/floorplan-api/internal/server"
	"github.com/floorsight/floorplan-api/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const module = "main"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("floorplan-api %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("floorplan-api - floor plan analysis HTTP service")
			fmt.Println()
			fmt.Println("Usage: floorplan-api [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PORT                      Listen port (default 8000)")
			fmt.Println("  ANTHROPIC_API_KEY         Vision analysis API key")
			fmt.Println("  RASTERSCAN_API_KEY        Floor plan vectorization API key")
			fmt.Println("  THORDATA_API_KEY          Product search API key")
			fmt.Println("  IMGBB_API_KEY             Image hosting API key")
			fmt.Println("  OVERLAY_ALPHA             Overlay opacity 0-255 (default 140)")
			fmt.Println("  MAX_UPLOAD_BYTES          Upload size limit (default 20MB)")
			fmt.Println("  UPSTREAM_TIMEOUT_SECONDS  Upstream request timeout (default 120)")
			fmt.Println("  LOG_LEVEL                 debug, info, warn, error, or silent")
			fmt.Println()
			fmt.Println("Collaborator keys are optional; missing ones degrade the")
			fmt.Println("matching features instead of failing the service.")
			return
		}
	}

	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel), os.Stderr, true)
	logger.Info(module, "floorplan-api %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	visionClient := vision.New(vision.Options{
		BaseURL: cfg.AnthropicBaseURL,
		APIKey:  cfg.AnthropicAPIKey,
		Model:   cfg.AnthropicModel,
		Timeout: cfg.UpstreamTimeout,
	})
	rasterClient := raster.New(raster.Options{
		URL:     cfg.RasterScanURL,
		APIKey:  cfg.RasterScanAPIKey,
		Timeout: cfg.UpstreamTimeout,
	})
	searchClient := search.New(search.Options{
		BaseURL:   cfg.ThorDataURL,
		APIKey:    cfg.ThorDataAPIKey,
		UploadURL: cfg.ImgBBURL,
		UploadKey: cfg.ImgBBAPIKey,
		Timeout:   cfg.UpstreamTimeout,
	})

	if !visionClient.Configured() {
		logger.Warn(module, "vision API key missing; room and furniture analysis degraded")
	}
	if !rasterClient.Configured() {
		logger.Warn(module, "raster API key missing; overlays disabled")
	}
	if !searchClient.Configured() {
		logger.Warn(module, "search API key missing; product lookups disabled")
	}

	m := metrics.New()
	core := analyzer.New(analyzer.Options{
		Vision:       visionClient,
		Raster:       rasterClient,
		Finder:       searchClient,
		Metrics:      m,
		OverlayAlpha: uint8(cfg.OverlayAlpha),
	})

	srv := server.New(server.Options{
		Analyzer:       core,
		Agent:          search.NewAgent(visionClient),
		Searcher:       searchClient,
		Metrics:        m,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, cfg.Addr); err != nil {
		logger.Error(module, "server error: %v", err)
		os.Exit(1)
	}
	logger.Info(module, "server stopped")
}
