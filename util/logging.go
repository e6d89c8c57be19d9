package util

import (
	"log"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
)

type journalWriter struct{}

func (journalWriter) Write(p []byte) (int, error) {
	if err := journal.Send(string(p), journal.PriInfo, map[string]string{"SYSLOG_IDENTIFIER": Name}); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetupLogging sends the standard logger to journald when configured and
// available, otherwise to stderr.
func SetupLogging(conf *AppConfig) {
	if conf.Conf.WithJournald && journal.Enabled() {
		log.SetFlags(0)
		log.SetOutput(journalWriter{})
		log.Printf("Logging to journald")
		return
	}
	if conf.Conf.WithJournald {
		log.Printf("journald requested but not available, logging to stderr")
	}
	log.SetFlags(log.LstdFlags)
	log.SetOutput(os.Stderr)
}
