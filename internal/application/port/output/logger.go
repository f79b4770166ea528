package output

// LoggerPort is the structured logging surface used across the application.
// Args are alternating key/value pairs.
type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	WithField(key string, value any) LoggerPort

	Close() error
}
