package transitpings

import (
	"log"
	"os"
)

// InitLogging routes log output to stdout with microsecond timestamps.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
