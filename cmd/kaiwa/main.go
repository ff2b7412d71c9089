// Package main is the Kaiwa CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hyperjump/kaiwa/internal/chat"
	"github.com/hyperjump/kaiwa/internal/config"
	"github.com/hyperjump/kaiwa/internal/embedding"
	"github.com/hyperjump/kaiwa/internal/extract"
	"github.com/hyperjump/kaiwa/internal/ingest"
	"github.com/hyperjump/kaiwa/internal/llm"
	"github.com/hyperjump/kaiwa/internal/server"
	"github.com/hyperjump/kaiwa/pkg/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kaiwa/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used instead. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "version", "--version", "-v":
		fmt.Printf("kaiwa version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	// Pick up GROQ_API_KEY and friends from a local .env if present.
	_ = godotenv.Load()

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	embedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		logger.Fatal("Failed to initialize embedder", zap.Error(err))
	}
	defer embedder.Close()

	pipeline := ingest.NewPipeline(
		extract.NewExtractor(),
		ingest.NewChunker(cfg.Search.ChunkSize, cfg.Search.ChunkOverlap),
		embedder,
		logger,
	)
	generator := chat.NewGenerator(llm.NewGroqClient(cfg.LLM), embedder, cfg.Search.TopK)

	srv := server.NewServer(generator, pipeline, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func printUsage() {
	fmt.Println(`kaiwa - chat API with PDF question answering

Usage:
  kaiwa server [--config path] [--debug]   start the HTTP API
  kaiwa version                            print version
  kaiwa help                               show this help`)
}
