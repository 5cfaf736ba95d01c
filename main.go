package main

import (
	"os"

	"github.com/nilabh/campusmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
