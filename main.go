package main

import (
	"os"

	"github.com/artify-go/artify/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
