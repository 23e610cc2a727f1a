package console

import "github.com/productbazar/bazaaradmin/pkg/logger"

// Notifier is the toast channel. Calls are fire-and-forget.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier records toasts in the structured log.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	logger.Info("toast_success", map[string]interface{}{"message": msg})
}

func (LogNotifier) Error(msg string) {
	logger.Warn("toast_error", map[string]interface{}{"message": msg})
}

// Notifiers fans a toast out to several notifiers.
type Notifiers []Notifier

func (ns Notifiers) Success(msg string) {
	for _, n := range ns {
		n.Success(msg)
	}
}

func (ns Notifiers) Error(msg string) {
	for _, n := range ns {
		n.Error(msg)
	}
}
