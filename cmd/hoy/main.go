// Command hoy is a terminal client for the Hoy property-rental
// backend. It drives the same service layer the mobile app uses:
// authentication, messaging, notifications, listings and uploads.
package main

import (
	"flag"
	"log"

	"github.com/hoyapp/hoygo/internal/app"
	"github.com/hoyapp/hoygo/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("hoy: %v", err)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	return a.Run(flag.Args())
}
