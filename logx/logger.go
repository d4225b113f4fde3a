package logx

type Data struct {
	Key   string
	Value interface{}
}

type Logger interface {
	WithName(name string) Logger
	WithData(data ...Data) Logger

	Debug(msg string, data ...Data)
	Info(msg string, data ...Data)
	Error(msg string, err error, data ...Data)
}

// NewNoOpLogger returns a Logger that discards everything. It is the
// default for components constructed without a logging option.
func NewNoOpLogger() Logger {
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) WithName(string) Logger { return l }

func (l *noOpLogger) WithData(...Data) Logger { return l }

func (l *noOpLogger) Debug(string, ...Data) {}

func (l *noOpLogger) Info(string, ...Data) {}

func (l *noOpLogger) Error(string, error, ...Data) {}
