package client

import "go.uber.org/zap"

// Level classifies a notification
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notifier shows transient messages to the user
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(level Level, message string)

// Notify calls f
func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

// LogNotifier writes notifications to a zap logger
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notify")}
}

// Notify logs successes at info and failures at warn
func (n *LogNotifier) Notify(level Level, message string) {
	if level == LevelError {
		n.logger.Warn(message)
		return
	}
	n.logger.Info(message)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}
