package main

import (
	"os"

	"github.com/bnema/poe2-chicken-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
