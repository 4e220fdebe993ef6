package log

// Dual-core zap setup: everything goes to logs/app.log at debug level,
// while the console only shows successes and errors. Falls back to a nop
// logger if initialization fails.

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger
var consoleLogger *zap.Logger
var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		if err := initializeLoggers(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize loggers: %v\n", err)
			Logger = zap.NewNop()
			consoleLogger = zap.NewNop()
		}
	})
}

func initializeLoggers() error {
	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	fileConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	fileCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(fileConfig),
		zapcore.AddSync(openLogFile(filepath.Join(logsDir, "app.log"))),
		zapcore.DebugLevel,
	)
	Logger = zap.New(fileCore)

	consoleConfig := zap.NewDevelopmentConfig()
	consoleConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleConfig.EncoderConfig.EncodeCaller = nil
	consoleConfig.DisableStacktrace = true
	consoleConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	var err error
	consoleLogger, err = consoleConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build console logger: %w", err)
	}

	return nil
}

// GenerateRequestID returns a random id for correlating request logs.
func GenerateRequestID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// LogRequest records an outgoing HTTP request in the log file.
func LogRequest(requestID, method, endpoint string, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	}, fields...)
	Logger.Info("HTTP request", allFields...)
}

// LogResponse records an HTTP response; failures also reach the console.
func LogResponse(requestID string, statusCode int, durationMs int64, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("request_id", requestID),
		zap.Int("status_code", statusCode),
		zap.Int64("duration_ms", durationMs),
	}, fields...)

	if statusCode >= 200 && statusCode < 300 {
		Logger.Info("HTTP response", allFields...)
	} else {
		Logger.Error("HTTP response", allFields...)
		consoleLogger.Error(fmt.Sprintf("✗ HTTP request failed [%d]", statusCode))
	}
}

func LogInfo(message string, fields ...zap.Field) {
	Logger.Info(message, fields...)
}

// LogSuccess logs to the file and prints a checkmark line on the console.
func LogSuccess(message string, fields ...zap.Field) {
	Logger.Info(message, fields...)
	consoleLogger.Info("✓ " + message)
}

// LogError logs to the file and prints a cross line on the console.
func LogError(message string, fields ...zap.Field) {
	Logger.Error(message, fields...)
	consoleLogger.Error("✗ " + message)
}

func LogWarn(message string, fields ...zap.Field) {
	Logger.Warn(message, fields...)
}

func LogDebug(message string, fields ...zap.Field) {
	Logger.Debug(message, fields...)
}

const maxLogFileSize = 50 * 1024 * 1024

type rotatingLogWriter struct {
	file *os.File
	path string
	mu   sync.Mutex
}

func (w *rotatingLogWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := w.file.Stat()
	if err == nil && info.Size() > maxLogFileSize {
		w.file.Close()
		w.file, err = os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return 0, fmt.Errorf("failed to truncate log file: %w", err)
		}
	}

	return w.file.Write(p)
}

func (w *rotatingLogWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Sync()
}

// openLogFile opens the log file in append mode; the writer truncates it
// once it outgrows maxLogFileSize. Falls back to stderr when the file is
// unusable.
func openLogFile(path string) zapcore.WriteSyncer {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v, falling back to stderr\n", path, err)
		return zapcore.AddSync(os.Stderr)
	}
	return zapcore.AddSync(&rotatingLogWriter{file: file, path: path})
}
