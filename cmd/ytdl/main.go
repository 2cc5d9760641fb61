package main

import (
	"os"

	"github.com/iambhvsh/ytdl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
