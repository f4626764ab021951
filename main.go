package main

import (
	"os"

	"github.com/multikids/portage/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
