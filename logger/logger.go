// Package logger provides the leveled loggers shared by every package.
package logger

import (
	"io"
	"log"
	"os"
)

// four logger levels accessible throughout the application
var (
	Info  = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn  = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// SetLogLevel discards debug output in production.
func SetLogLevel(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
		return
	}
	Debug.SetOutput(os.Stdout)
}

// SetOutput redirects every level to w. Tests use it to keep output quiet.
func SetOutput(w io.Writer) {
	Info.SetOutput(w)
	Warn.SetOutput(w)
	Error.SetOutput(w)
	Debug.SetOutput(w)
}
