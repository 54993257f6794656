// internal/cmd/logging.go
package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func configureLogging(debug, quiet bool) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	switch {
	case debug:
		log.SetLevel(log.DebugLevel)
	case quiet:
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
