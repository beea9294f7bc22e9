package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"pulseboard/api/internal/analysis"
	"pulseboard/api/internal/app"
	"pulseboard/api/internal/config"
	"pulseboard/api/internal/repohost"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	if cfg.GitHubToken == "" {
		log.Warn("no GITHUB_TOKEN configured, repository queries will be unauthenticated and heavily rate limited")
	}

	fetcher, err := repohost.New(cfg.GitHubToken, cfg.GitHubBaseURL)
	if err != nil {
		log.Fatal("repository client setup failed", "err", err)
	}
	bridge := analysis.New(cfg.AnalyzerCommand, []string{cfg.AnalyzerScript}, cfg.AnalyzerTimeout)

	service := app.New(fetcher, bridge)
	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Pulseboard API listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", "err", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}

func setupLogger(level string) {
	switch level {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
	log.SetTimeFormat("15:04:05")
}
