package lambdautils

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	baseMu     sync.RWMutex
	baseLogger = newJSONLogger(os.Stdout)
)

func newJSONLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// SetLogOutput replaces the destination of every logger returned by Logger.
// Lambda ships stdout to CloudWatch, which is the default.
func SetLogOutput(w io.Writer) {
	baseMu.Lock()
	defer baseMu.Unlock()
	baseLogger = newJSONLogger(w)
}

// Logger returns a JSON logger annotated with the invocation metadata found
// in ctx.
func Logger(ctx context.Context) *slog.Logger {
	baseMu.RLock()
	l := baseLogger
	baseMu.RUnlock()

	if attrs := GetLambdaMetaData(ctx).LogAttrs(); len(attrs) > 0 {
		return l.With(attrs...)
	}
	return l
}
