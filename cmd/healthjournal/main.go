package main

import (
	"os"

	"github.com/lazypower/healthjournal/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
