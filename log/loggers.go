package log

import (
	"fmt"
	"log"
	"time"
)

// Info takes a pointer subLogger struct and sends the string to the output
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.InfoHeader, data)
}

// Infoln takes a pointer subLogger struct and interfaces and sends them to the output
func Infoln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.InfoHeader, fmt.Sprint(v...))
}

// Infof takes a pointer subLogger struct, string and interface formats and sends to the output
func Infof(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.InfoHeader, fmt.Sprintf(data, v...))
}

// Debug takes a pointer subLogger struct and sends the string to the output
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.DebugHeader, data)
}

// Debugln takes a pointer subLogger struct and interfaces and sends them to the output
func Debugln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.DebugHeader, fmt.Sprint(v...))
}

// Debugf takes a pointer subLogger struct, string and interface formats and sends to the output
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.DebugHeader, fmt.Sprintf(data, v...))
}

// Warn takes a pointer subLogger struct and sends the string to the output
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.WarnHeader, data)
}

// Warnln takes a pointer subLogger struct and interfaces and sends them to the output
func Warnln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.WarnHeader, fmt.Sprint(v...))
}

// Warnf takes a pointer subLogger struct, string and interface formats and sends to the output
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.WarnHeader, fmt.Sprintf(data, v...))
}

// Error takes a pointer subLogger struct and sends the string to the output
func Error(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.ErrorHeader, data)
}

// Errorln takes a pointer subLogger struct and interfaces and sends them to the output
func Errorln(sl *SubLogger, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.ErrorHeader, fmt.Sprint(v...))
}

// Errorf takes a pointer subLogger struct, string and interface formats and sends to the output
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sl.stage(logger.ErrorHeader, fmt.Sprintf(data, v...))
}

// enabled checks if the log level is enabled
func (sl *SubLogger) enabled(header string) bool {
	switch header {
	case logger.InfoHeader:
		return sl.Info
	case logger.WarnHeader:
		return sl.Warn
	case logger.ErrorHeader:
		return sl.Error
	case logger.DebugHeader:
		return sl.Debug
	}
	return false
}

// stage writes a formatted log event to the sub logger output
func (sl *SubLogger) stage(header, data string) {
	if sl == nil || !sl.enabled(header) {
		return
	}
	_, err := fmt.Fprintln(sl.output,
		time.Now().Format(logger.TimestampFormat)+header+logger.Spacer+sl.name+logger.Spacer+data)
	displayError(err)
}

func displayError(err error) {
	if err != nil {
		log.Printf("Logger write error: %v\n", err)
	}
}
