package main

import (
	"os"

	"github.com/apkforge/apkforge/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
