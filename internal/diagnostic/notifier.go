package diagnostic

import (
	"go.uber.org/zap"
)

// Notifier receives notifications. Implementations must not panic.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(level Level, message string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Level, string) {})

// Tee fans a notification out to several notifiers.
func Tee(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(level Level, message string) {
		for _, n := range notifiers {
			n.Notify(level, message)
		}
	})
}

// Threshold forwards notifications at or above min.
func Threshold(min Level, next Notifier) Notifier {
	return NotifierFunc(func(level Level, message string) {
		if level >= min {
			next.Notify(level, message)
		}
	})
}

// ZapNotifier writes notifications to a zap logger.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a notifier backed by logger. A nil logger discards.
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapNotifier{logger: logger}
}

// Notify implements Notifier.
func (z *ZapNotifier) Notify(level Level, message string) {
	field := zap.String("level", level.String())

	switch level {
	case LevelAdmonition:
		z.logger.Info(message, field)
	case LevelAlert:
		z.logger.Warn(message, field)
	default:
		z.logger.Error(message, field)
	}
}

// Sync flushes buffered log entries.
func (z *ZapNotifier) Sync() error {
	return z.logger.Sync()
}
