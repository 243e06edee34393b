package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	InfoLogger  = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	DebugLogger = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// Init points the loggers at their destinations. Debug output is dropped
// unless debug is true.
func Init(debug bool) {
	InfoLogger.SetOutput(os.Stdout)
	ErrorLogger.SetOutput(os.Stderr)
	if debug {
		DebugLogger.SetOutput(os.Stdout)
	} else {
		DebugLogger.SetOutput(io.Discard)
	}
}

// SetOutput redirects every level to w. Used by tests.
func SetOutput(w io.Writer) {
	InfoLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
	DebugLogger.SetOutput(w)
}

// calldepth 2 so Lshortfile reports the caller, not this file.

func Info(msg string) {
	_ = InfoLogger.Output(2, msg)
}

func Infof(format string, v ...interface{}) {
	_ = InfoLogger.Output(2, fmt.Sprintf(format, v...))
}

func Error(msg string) {
	_ = ErrorLogger.Output(2, msg)
}

func Errorf(format string, v ...interface{}) {
	_ = ErrorLogger.Output(2, fmt.Sprintf(format, v...))
}

func Debug(msg string) {
	_ = DebugLogger.Output(2, msg)
}

func Debugf(format string, v ...interface{}) {
	_ = DebugLogger.Output(2, fmt.Sprintf(format, v...))
}

func Fatal(msg string) {
	_ = ErrorLogger.Output(2, msg)
	os.Exit(1)
}

func Fatalf(format string, v ...interface{}) {
	_ = ErrorLogger.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}
