package main

import (
	"log"
	"rugbyrank/pkg/config"
	"rugbyrank/scheduler/jobs"
)

// Load the config and revalidate the cached rankings of every population.
// Will be executed in a regular basis.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	if err := jobs.RevalidateCache(cfg); err != nil {
		log.Fatal(err)
	}
}
