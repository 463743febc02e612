package main

import (
	"context"
	"flag"
	"github.com/gissleh/tawngbu/adapters/lexiconfile"
	"github.com/gissleh/tawngbu/adapters/webapi"
	"github.com/gissleh/tawngbu/config"
	"github.com/gissleh/tawngbu/service"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var flagConfig = flag.String("config", "", "Path to a YAML config file")
var flagLexicon = flag.String("lexicon", "", "Lexicon file, overrides the config")
var flagAddr = flag.String("addr", "", "Listen address, overrides the config")

func main() {
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatalln("Failed to load config:", err)
	}
	cfg.Override(*flagLexicon, *flagAddr)

	logger := config.NewLogger(cfg.Log)

	lex, err := lexiconfile.Open(cfg.Lexicon.Path)
	if err != nil {
		log.Fatalln("Failed to load lexicon:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := config.OpenStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatalln("Failed to open storage:", err)
	}
	defer closeStorage()

	svc := service.New(lex, storage, logger)
	stats := svc.Stats()
	logger.Info("Dictionary loaded", "words", stats.Words, "targetTerms", stats.TargetTerms, "storage", cfg.Storage.Driver)

	api, errCh := webapi.Setup(cfg.Server.Addr)

	webapi.Dictionary(api.Group("/api"), svc)
	webapi.Activity(api.Group("/api"), svc)

	logger.Info("Listening", "addr", cfg.Server.Addr)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalln("Failed to listen:", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := api.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}
}
