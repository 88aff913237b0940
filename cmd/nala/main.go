package main

import (
	"os"

	"github.com/rantnar/nala/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
