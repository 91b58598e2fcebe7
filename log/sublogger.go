package log

import (
	"io"
	"os"
	"strings"
)

// Subsystem loggers registered at package init()
var (
	Global      *SubLogger
	ConfigMgr   *SubLogger
	DataMgr     *SubLogger
	DatabaseMgr *SubLogger
	Spread      *SubLogger
	Strategy    *SubLogger
	Portfolio   *SubLogger
	Exchange    *SubLogger
	BackTester  *SubLogger
	Statistics  *SubLogger
	Scanner     *SubLogger
	Report      *SubLogger
)

// SetLevels overrides the levels of a sub logger
func (sl *SubLogger) SetLevels(newLevels Levels) {
	mu.Lock()
	sl.Levels = newLevels
	mu.Unlock()
}

// SetOutput overrides the output writer of a sub logger
func (sl *SubLogger) SetOutput(o io.Writer) {
	mu.Lock()
	sl.output = o
	mu.Unlock()
}

// SetGlobalLogLevel applies a pipe delimited level string, eg
// "INFO|WARN|ERROR", to every registered sub logger
func SetGlobalLogLevel(level string) {
	mu.Lock()
	l := splitLevel(level)
	for x := range subLoggers {
		subLoggers[x].Levels = l
	}
	mu.Unlock()
}

// SetGlobalOutput points every registered sub logger at the supplied writer
func SetGlobalOutput(o io.Writer) {
	mu.Lock()
	for x := range subLoggers {
		subLoggers[x].output = o
	}
	mu.Unlock()
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch enabledLevels[x] {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}

func registerNewSubLogger(name string) *SubLogger {
	temp := SubLogger{
		name:   strings.ToUpper(name),
		output: os.Stdout,
	}
	temp.Levels = splitLevel("INFO|WARN|ERROR")
	subLoggers[temp.name] = &temp
	return &temp
}

// register all loggers at package init()
func init() {
	Global = registerNewSubLogger("LOG")

	ConfigMgr = registerNewSubLogger("CONFIG")
	DataMgr = registerNewSubLogger("DATA")
	DatabaseMgr = registerNewSubLogger("DATABASE")
	Spread = registerNewSubLogger("SPREAD")
	Strategy = registerNewSubLogger("STRATEGY")
	Portfolio = registerNewSubLogger("PORTFOLIO")
	Exchange = registerNewSubLogger("EXCHANGE")
	BackTester = registerNewSubLogger("BACKTESTER")
	Statistics = registerNewSubLogger("STATISTICS")
	Scanner = registerNewSubLogger("SCANNER")
	Report = registerNewSubLogger("REPORT")
}
