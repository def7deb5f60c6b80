package main

import (
	"log"

	"github.com/MrSnakeDoc/assetd/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ assetd failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ assetd stopped with error: %v", err)
	}
}
