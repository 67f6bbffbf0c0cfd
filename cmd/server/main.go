package main

import (
	"log"

	"github.com/lk16/dropfour/internal"
	"github.com/lk16/dropfour/internal/config"
)

func main() {
	config.SetLogLevel()

	// Setup app
	app, cfg := internal.SetupApp()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	log.Fatal(app.Listen(address))
}
