package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"github.com/nexcat/catalog/config"
	_ "github.com/nexcat/catalog/docs"
	"github.com/nexcat/catalog/internal/app"
	"github.com/nexcat/catalog/internal/catalogapi"
	"github.com/nexcat/catalog/internal/webserver"
)

var (
	conffile = flag.String("c", "/etc/catalogd.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the schema, then exit")
)

// @title catalogd API
// @version 1.0
// @description Product and category catalog service.
// @BasePath /api

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database schema initialized")
		return
	}

	application.StartBackgroundJobs(context.Background())

	ws := webserver.Init(cfg)
	catalogapi.InitRouter(application)

	if err := ws.Start(); err != nil {
		zap.S().Fatal(err)
	}
}
