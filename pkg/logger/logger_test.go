package logger

import (
	"context"
	"errors"
	"syscall"
	"testing"
)

// testLogLevel is a valid zapcore.Level value for testing.
const testLogLevel int8 = 0 // zapcore.InfoLevel

func TestGetReturnsLoggerInstance(t *testing.T) {
	logger := Get(testLogLevel)
	if logger == nil {
		t.Fatal("Get should return a non-nil logger")
	}
}

func TestGetReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Get(testLogLevel)
	logger2 := Get(testLogLevel)
	if logger1 != logger2 {
		t.Error("Get should return the same logger instance on subsequent calls")
	}
}

func TestWithLoggerAddsLoggerToContext(t *testing.T) {
	ctx := context.Background()
	logger := Get(testLogLevel)
	newCtx := WithLogger(ctx, logger)

	got := newCtx.Value(loggerContextKey{})
	if got == nil {
		t.Fatal("WithLogger should add logger to context")
	}
	if got != logger {
		t.Error("WithLogger should store the provided logger in context")
	}
}

func TestWithLoggerReturnsSameContextIfLoggerAlreadySet(t *testing.T) {
	logger := Get(testLogLevel)
	ctxWithLogger := context.WithValue(context.Background(), loggerContextKey{}, logger)

	resultCtx := WithLogger(ctxWithLogger, logger)
	if resultCtx != ctxWithLogger {
		t.Error("WithLogger should return the same context if logger is already set and matches")
	}
}

func TestFromContextReturnsLoggerFromContext(t *testing.T) {
	logger := Get(testLogLevel)
	ctxWithLogger := context.WithValue(context.Background(), loggerContextKey{}, logger)

	got := FromContext(ctxWithLogger)
	if got != logger {
		t.Error("FromContext should return the logger stored in context")
	}
}

func TestFromContextReturnsGlobalLoggerIfNoLoggerInContext(t *testing.T) {
	globalLogger := Get(testLogLevel)

	got := FromContext(context.Background())
	if got != globalLogger {
		t.Error("FromContext should return the global logger if none in context")
	}
}

func TestFromContextReturnsNoopLoggerIfNoGlobalOrContextLogger(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	got := FromContext(context.Background())
	if got != &defaultNoopLogger {
		t.Error("FromContext should return defaultNoopLogger if no logger is set")
	}
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sync should not panic when globalZapLogger is nil, but got panic: %v", r)
		}
	}()
	Sync()
}

func TestGetGlobalLoggerReturnsNoopLoggerIfGlobalLoggerNil(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	got := GetGlobalLogger()
	if got != &defaultNoopLogger {
		t.Error("GetGlobalLogger should return defaultNoopLogger when globalLogrLogger is nil")
	}
}

func TestGetNoopLoggerReturnsDefaultNoopLogger(t *testing.T) {
	got := GetNoopLogger()
	if got != &defaultNoopLogger {
		t.Error("GetNoopLogger should return defaultNoopLogger")
	}
}

func TestWithValuesReturnsNewLoggerWithValues(t *testing.T) {
	logger := Get(testLogLevel)

	newLogger := WithValues(logger, "key", "value")
	if newLogger == nil {
		t.Fatal("WithValues should return a non-nil logger")
	}
	if newLogger == logger {
		t.Error("WithValues should return a new logger instance, not the original")
	}
}

func TestIsIgnorableSyncError(t *testing.T) {
	if !isIgnorableSyncError(syscall.ENOTTY) {
		t.Error("ENOTTY should be ignorable")
	}
	if !isIgnorableSyncError(syscall.EINVAL) {
		t.Error("EINVAL should be ignorable")
	}
	if isIgnorableSyncError(errors.New("disk on fire")) {
		t.Error("unexpected errors should not be ignorable")
	}
}
