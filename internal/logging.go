package internal

import (
	"log"
	"os"
)

// Logf is the diagnostic logger used by library packages. It defaults to
// log.Printf and may be replaced with SetLogger.
var Logf func(format string, v ...any) = log.Printf

func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// SetLogger replaces Logf. Passing nil mutes library logging.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}
