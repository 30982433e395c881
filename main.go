package main

import (
	"os"

	"github.com/klareapp/progression/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
