package main

import (
	"github.com/booknest/booknest/internal/config"
	"github.com/booknest/booknest/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
