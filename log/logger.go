package log

import "log"

// LoggerInterface is what every component in warden logs through.
// Plug in your own implementation with SetUserLogger.
type LoggerInterface interface {
	Info(format string, a ...interface{})
	Debug(format string, a ...interface{})
	Warn(format string, a ...interface{})
	Error(format string, a ...interface{})
	Fatal(format string, a ...interface{})
	Panic(format string, a ...interface{})
}

var Logger LoggerInterface

// WLogger writes through the standard library logger with a level prefix
type WLogger struct {
	// Verbose enables Debug output
	Verbose bool
}

func (l *WLogger) Info(format string, a ...interface{}) {
	log.Printf("[INFO] "+format, a...)
}

func (l *WLogger) Debug(format string, a ...interface{}) {
	if !l.Verbose {
		return
	}
	log.Printf("[DEBUG] "+format, a...)
}

func (l *WLogger) Warn(format string, a ...interface{}) {
	log.Printf("[WARN] "+format, a...)
}

func (l *WLogger) Error(format string, a ...interface{}) {
	log.Printf("[ERROR] "+format, a...)
}

func (l *WLogger) Fatal(format string, a ...interface{}) {
	log.Fatalf("[FATAL] "+format, a...)
}

func (l *WLogger) Panic(format string, a ...interface{}) {
	log.Panicf("[PANIC] "+format, a...)
}

// NopLogger discards everything except Fatal and Panic
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

func (NopLogger) Fatal(format string, a ...interface{}) {
	log.Fatalf(format, a...)
}

func (NopLogger) Panic(format string, a ...interface{}) {
	log.Panicf(format, a...)
}

func init() {
	Logger = new(WLogger)
}

func SetUserLogger(logger LoggerInterface) {
	Logger = logger
}
