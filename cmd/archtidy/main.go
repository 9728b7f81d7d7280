package main

import (
	"fmt"
	"os"

	"github.com/archtidy/archtidy/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "archtidy:", err)
		os.Exit(1)
	}
}
