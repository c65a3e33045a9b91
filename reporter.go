package spatial

import "context"

// ErrorReporter receives unrecoverable configuration errors. Fatal must not
// return; if it does, the caller panics with msg.
type ErrorReporter interface {
	Fatal(msg string)
}

// PanicReporter logs msg at error level and panics with it.
type PanicReporter struct {
	Logger *Logger
}

// Fatal implements ErrorReporter.
func (r PanicReporter) Fatal(msg string) {
	if r.Logger != nil {
		r.Logger.ErrorContext(context.Background(), "fatal configuration error", "error", msg)
	}
	panic(msg)
}
