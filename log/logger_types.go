package log

import (
	"io"
	"sync"
)

const (
	timestampFormat = " 02/01/2006 15:04:05 "
	spacer          = " | "
)

var (
	logger = Logger{
		TimestampFormat: timestampFormat,
		Spacer:          spacer,
		InfoHeader:      "[INFO]",
		WarnHeader:      "[WARN]",
		DebugHeader:     "[DEBUG]",
		ErrorHeader:     "[ERROR]",
	}

	subLoggers = map[string]*SubLogger{}

	// read/write mutex for logger
	mu = &sync.RWMutex{}
)

// Logger holds the formatting settings shared by every sub logger
type Logger struct {
	TimestampFormat                                  string
	InfoHeader, ErrorHeader, DebugHeader, WarnHeader string
	Spacer                                           string
}

// Levels flags for each sub logger type
type Levels struct {
	Info, Debug, Warn, Error bool
}

// SubLogger defines a sub logger for a subsystem with its own level
// flags and output writer
type SubLogger struct {
	name string
	Levels
	output io.Writer
}
