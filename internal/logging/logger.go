package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HomeEnv overrides the location of the hotelix directory.
const HomeEnv = "HOTELIX_HOME"

type Service struct {
	logger *zap.Logger
}

var (
	logInstance *Service
	auxLogger   *log.Logger
)

// GetHotelixDir returns the .hotelix directory path, creating it if it doesn't exist
func GetHotelixDir() (string, error) {
	dir := os.Getenv(HomeEnv)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %v", err)
		}
		dir = filepath.Join(homeDir, ".hotelix")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %v", dir, err)
	}
	return dir, nil
}

// GetLogsDir returns <hotelix dir>/logs.
func GetLogsDir() (string, error) {
	hotelixDir, err := GetHotelixDir()
	if err != nil {
		return "", err
	}
	logsDir := filepath.Join(hotelixDir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create logs directory: %v", err)
	}
	return logsDir, nil
}

// New creates a new logging service instance (singleton)
func New() (*Service, func(), error) {
	if logInstance != nil {
		return logInstance, nil, nil
	}

	logsDir, err := GetLogsDir()
	if err != nil {
		return nil, nil, err
	}
	logPath := filepath.Join(logsDir, "app.log")
	auxLogPath := filepath.Join(logsDir, "aux.log")

	// aux log is recreated on each start
	if err := os.Remove(auxLogPath); err != nil && !os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("failed to remove existing aux log file: %v", err)
	}
	auxLogFile, err := tea.LogToFile(auxLogPath, "aux")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create aux log file: %v", err)
	}
	if auxLogger == nil {
		auxLogger = log.New(auxLogFile, "", log.LstdFlags)
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    2, // megabytes
		MaxBackups: 5,
		MaxAge:     15, // days
		Compress:   true,
	})

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	encoder := zapcore.NewJSONEncoder(cfg.EncoderConfig)

	fileCore := zapcore.NewCore(encoder, fileWriter, ParseLevel(os.Getenv("LOG_LEVEL")))
	logger := zap.New(fileCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	logInstance = &Service{
		logger: logger,
	}

	return logInstance, func() {
		logger.Sync()
		auxLogFile.Close()
	}, nil
}

// ParseLevel maps LOG_LEVEL values to zap levels. Unknown values mean INFO.
func ParseLevel(value string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger returns the zap logger instance
func (s *Service) GetLogger() *zap.Logger {
	return s.logger
}

// Close flushes any buffered log entries
func (s *Service) Close() error {
	if s.logger != nil {
		return s.logger.Sync()
	}
	return nil
}

var globalLogger *zap.Logger

// InitGlobalLogger initializes the global logger instance
func InitGlobalLogger() (func(), error) {
	service, closeFn, err := New()
	if err != nil {
		return nil, err
	}
	globalLogger = service.GetLogger()
	return closeFn, nil
}

// GetGlobalLogger returns the global logger, or a no-op logger before InitGlobalLogger.
func GetGlobalLogger() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

func Debug(msg string, fields ...zap.Field) {
	if globalLogger != nil {
		globalLogger.Debug(msg, fields...)
	}
}

func Info(msg string, fields ...zap.Field) {
	if globalLogger != nil {
		globalLogger.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...zap.Field) {
	if globalLogger != nil {
		globalLogger.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...zap.Field) {
	if globalLogger != nil {
		globalLogger.Error(msg, fields...)
	}
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	if globalLogger != nil {
		globalLogger.Fatal(msg, fields...)
	}
}

// GetAuxLogger returns the auxiliary logger singleton instance
func GetAuxLogger() *log.Logger {
	return auxLogger
}

func AuxLog(msg string) {
	if auxLogger != nil {
		auxLogger.Println(msg)
	}
}

func AuxLogf(format string, v ...interface{}) {
	if auxLogger != nil {
		auxLogger.Printf(format, v...)
	}
}

// LogPanic appends a recovered panic value with its stack to logs/panic.log.
// Use it as `defer logging.LogPanic()`; the panic is re-raised after it was written.
func LogPanic() {
	r := recover()
	if r == nil {
		return
	}
	WritePanic(r, debug.Stack())
	panic(r)
}

// WritePanic writes a panic report to logs/panic.log and to the global logger.
func WritePanic(value any, stack []byte) {
	Error("panic", zap.Any("value", value), zap.ByteString("stack", stack))
	logsDir, err := GetLogsDir()
	if err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(logsDir, "panic.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s panic: %v\n%s\n", time.Now().Format(time.RFC3339), value, stack)
}
