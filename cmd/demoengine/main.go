// Command demoengine serves canned analyses on POST /analyze for local
// development of the remote backend.
// Usage: go run ./cmd/demoengine [port]
// Default port: 8000
package main

import (
	"log"
	"os"
	"strconv"

	"github.com/raysh454/inspectra/internal/demoengine"
	"github.com/raysh454/inspectra/internal/logging"
)

func main() {
	cfg := demoengine.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	engine := demoengine.New(cfg, logging.NewStdoutLogger("demoengine"))
	if err := engine.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
