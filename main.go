package main

import (
	"os"

	"github.com/Araon/Steno/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
