package store

import "go.uber.org/zap"

// Notifier показывает пользователю результат операции.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier выводит уведомления в лог.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier создаёт Notifier поверх логгера.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Success пишет уведомление об успехе на уровне info.
func (n *LogNotifier) Success(message string) {
	n.logger.Info("notice", zap.String("kind", "success"), zap.String("message", message))
}

// Error пишет уведомление об ошибке на уровне warn.
func (n *LogNotifier) Error(message string) {
	n.logger.Warn("notice", zap.String("kind", "error"), zap.String("message", message))
}
