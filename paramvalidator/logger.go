package paramvalidator

import "log/slog"

// Logger receives the factory's diagnostics: validator construction and
// failed validations at debug level, schema compilation failures at error
// level. Attributes are slog-style key-value pairs.
//
// *slog.Logger fits through [NewSlogAdapter]:
//
//	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	f, err := paramvalidator.New(
//	    paramvalidator.WithAPI(doc),
//	    paramvalidator.WithLogger(paramvalidator.NewSlogAdapter(slog.New(handler))),
//	)
type Logger interface {
	Debug(msg string, attrs ...any)
	Error(msg string, attrs ...any)

	// With returns a Logger that adds attrs to every record.
	With(attrs ...any) Logger
}

// NopLogger discards everything. It is the default.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}

func (NopLogger) Error(string, ...any) {}

func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter is a Logger backed by a *slog.Logger.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter wraps logger, or slog.Default() when it is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{Logger: logger}
}

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{Logger: s.Logger.With(attrs...)}
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)
