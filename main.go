package main

import (
	"log"
	"os"

	"github.com/samuelfneumann/cliffwalk/config"
)

func main() {
	defaults, err := config.Load()
	if err != nil {
		log.Fatalf("%s %v", config.LogFatal, err)
	}

	if err := newRootCommand(defaults).Execute(); err != nil {
		os.Exit(1)
	}
}
