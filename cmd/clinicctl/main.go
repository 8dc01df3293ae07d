package main

import (
	"fmt"
	"os"

	"github.com/aussiebroadwan/clinic/internal/clinic/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "clinicctl:", err)
		os.Exit(1)
	}
}
