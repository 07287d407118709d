package main

import (
	"os"

	"github.com/msto63/errenhanced/cmd/errenhanced/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
