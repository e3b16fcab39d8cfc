package main

import (
	"context"

	"frontdesk/config"
	"frontdesk/di"
	"frontdesk/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeApp()

	go app.Refresher.Run(context.Background())

	app.HTTP.Serve()
}
