package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init configures the global logger. Call once at startup; helpers fall back
// to a production logger if Init was never called.
func Init(env string) {
	once.Do(func() {
		var l *zap.Logger
		var err error
		if env == "development" {
			l, err = zap.NewDevelopment()
		} else {
			l, err = zap.NewProduction()
		}
		if err != nil {
			l = zap.NewNop()
		}
		sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	})
}

func get() *zap.SugaredLogger {
	if sugar == nil {
		Init("production")
	}
	return sugar
}

func Debug(msg string, keysAndValues ...any) {
	get().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	get().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	get().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	get().Errorw(msg, keysAndValues...)
}

func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
