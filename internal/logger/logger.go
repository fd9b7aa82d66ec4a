package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger: development config (console, debug level) when debug is set,
// production config (JSON, info level) otherwise.
func New(debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Named("vendas"), nil
}

// Must is New, panicking on failure. For use in main.
func Must(debug bool) *zap.Logger {
	l, err := New(debug)
	if err != nil {
		panic(err)
	}
	return l
}
