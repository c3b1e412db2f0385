package main

import (
	"context"
	"log"

	"github.com/dalemusser/alumnihub/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// Match GOMAXPROCS to the container CPU quota before serving.
	if _, err := maxprocs.Set(maxprocs.Logger(log.Printf)); err != nil {
		log.Printf("maxprocs: %v", err)
	}
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
