package main

import (
	"context"
	"log"

	_ "go.uber.org/automaxprocs"

	"github.com/dalemusser/memberhub/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
