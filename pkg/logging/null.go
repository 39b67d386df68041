package logging

import "context"

// NullLogger discards everything. It stands in wherever a component
// accepts an optional Logger and none was configured.
type NullLogger struct{}

var _ Logger = NullLogger{}

// NewNullLogger returns a logger that discards all output
func NewNullLogger() NullLogger {
	return NullLogger{}
}

func (NullLogger) Debug(context.Context, string, Fields)        {}
func (NullLogger) Info(context.Context, string, Fields)         {}
func (NullLogger) Warn(context.Context, string, Fields)         {}
func (NullLogger) Error(context.Context, string, error, Fields) {}

func (l NullLogger) WithFields(Fields) Logger { return l }

func (NullLogger) Close() error { return nil }
