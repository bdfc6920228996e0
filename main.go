package main

import (
	"os"

	"github.com/machinecoin-project/machinecoin-core/app"
)

func main() {
	if err := app.StartApp(); err != nil {
		os.Exit(1)
	}
}
