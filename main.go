package main

import (
	"os"

	"github.com/campushub/campushub/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
