package main

import (
	"os"

	"github.com/rmathes/todotrack/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
