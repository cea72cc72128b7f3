package main

import (
	"os"

	"github.com/Void-n-Null/speedytavern-sub003/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
