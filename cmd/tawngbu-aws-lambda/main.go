package main

import (
	"context"
	"flag"
	"github.com/aws/aws-lambda-go/lambda"
	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/gissleh/tawngbu/adapters/lexiconfile"
	"github.com/gissleh/tawngbu/adapters/webapi"
	"github.com/gissleh/tawngbu/config"
	"github.com/gissleh/tawngbu/service"
	"log"
)

var flagLexicon = flag.String("lexicon", "", "Lexicon file, overrides the config")

func main() {
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalln("Failed to load config:", err)
	}
	cfg.Override(*flagLexicon, "")

	logger := config.NewLogger(cfg.Log)

	lex, err := lexiconfile.Open(cfg.Lexicon.Path)
	if err != nil {
		log.Fatalln("Failed to load lexicon:", err)
		return
	}

	// Lambda instances are short-lived, so anything but postgres only lives in memory.
	if cfg.Storage.Driver != config.DriverPostgres {
		cfg.Storage.Driver = config.DriverMemory
	}

	storage, _, err := config.OpenStorage(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalln("Failed to open storage:", err)
		return
	}

	svc := service.New(lex, storage, logger)
	api := webapi.SetupWithoutListener()

	webapi.Dictionary(api.Group("/api"), svc)
	webapi.Activity(api.Group("/api"), svc)

	lambda.Start(echoadapter.New(api).ProxyWithContext)
}
