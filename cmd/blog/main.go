package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCmd(version).Execute(); err != nil {
		log.Error().Err(err).Msg("blog failed")
		os.Exit(1)
	}
}
