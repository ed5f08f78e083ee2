package main

import (
	"os"

	"github.com/TotoroEmotoro/Corvo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
