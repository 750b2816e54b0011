package services

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"SalesDashboard/app/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerService handles application logging
type LoggerService struct {
	logDir string
	file   *dailyFile
	logger *zap.Logger
}

// NewLoggerService creates a logger writing to stdout and, when a log
// directory is available, to one file per day
func NewLoggerService(cfg *config.AppConfig) *LoggerService {
	var encoderCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder
	if cfg.IsProduction() {
		// Production mode: structured JSON logs
		encoderCfg = zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		// Development mode: human-readable logs
		encoderCfg = zap.NewDevelopmentEncoderConfig()
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	s := &LoggerService{logDir: resolveLogDir(cfg.Log.Dir)}
	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)}

	if s.logDir != "" {
		if err := os.MkdirAll(s.logDir, 0755); err == nil {
			s.file = &dailyFile{dir: s.logDir}
			// Files always get JSON so they can be grepped with jq
			fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
			cores = append(cores, zapcore.NewCore(fileEncoder, s.file, level))
		} else {
			fmt.Fprintf(os.Stderr, "Warning: could not create logs directory %s: %v. Logging to stdout only.\n", s.logDir, err)
			s.logDir = ""
		}
	}

	s.logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	s.LogInfo("Logger initialized", zap.String("level", level.String()), zap.String("dir", s.logDir))
	return s
}

// NewLoggerServiceFrom wraps an existing zap logger, e.g. zap.NewNop() in tests
func NewLoggerServiceFrom(logger *zap.Logger) *LoggerService {
	return &LoggerService{logger: logger}
}

func resolveLogDir(dir string) string {
	if dir != "" {
		return dir
	}
	data, err := config.DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(data, "logs")
}

// Logger returns the underlying zap logger
func (s *LoggerService) Logger() *zap.Logger {
	return s.logger.WithOptions(zap.AddCallerSkip(-1))
}

// Named returns a child logger for one component
func (s *LoggerService) Named(name string) *zap.Logger {
	return s.Logger().Named(name)
}

// LogInfo logs an informational message
func (s *LoggerService) LogInfo(message string, fields ...zap.Field) {
	s.logger.Info(message, fields...)
}

// LogWarning logs a warning message
func (s *LoggerService) LogWarning(message string, fields ...zap.Field) {
	s.logger.Warn(message, fields...)
}

// LogError logs an error message
func (s *LoggerService) LogError(message string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	s.logger.Error(message, fields...)
}

// LogPanic logs a panic with stack trace
func (s *LoggerService) LogPanic(recovered interface{}) {
	s.logger.Error("Recovered from panic",
		zap.Any("panic", recovered),
		zap.ByteString("stack", debug.Stack()),
	)
}

// RecoverPanic is a helper to recover from panics in goroutines
func (s *LoggerService) RecoverPanic() {
	if r := recover(); r != nil {
		s.LogPanic(r)
	}
}

// GetLogDirectory returns the directory where logs are stored
func (s *LoggerService) GetLogDirectory() string {
	return s.logDir
}

// GetTodayLogPath returns the path to today's log file
func (s *LoggerService) GetTodayLogPath() string {
	return filepath.Join(s.logDir, time.Now().Format("2006-01-02")+".log")
}

// CleanOldLogs removes log files older than daysToKeep
func (s *LoggerService) CleanOldLogs(daysToKeep int) error {
	if s.logDir == "" {
		return nil
	}
	files, err := os.ReadDir(s.logDir)
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -daysToKeep)
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".log" {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.logDir, file.Name())
			s.LogInfo("Deleting old log file", zap.String("path", path))
			os.Remove(path)
		}
	}
	return nil
}

// Close flushes the logger and closes the log file
func (s *LoggerService) Close() {
	_ = s.logger.Sync()
	if s.file != nil {
		s.file.Close()
	}
}

// dailyFile is a zapcore.WriteSyncer that switches to a new YYYY-MM-DD.log
// file when the day changes
type dailyFile struct {
	mu   sync.Mutex
	dir  string
	day  string
	file *os.File
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.rotate(); err != nil {
		return 0, err
	}
	return d.file.Write(p)
}

func (d *dailyFile) Sync() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	return d.file.Sync()
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// rotate opens today's file if it is not already open
func (d *dailyFile) rotate() error {
	today := time.Now().Format("2006-01-02")
	if d.day == today && d.file != nil {
		return nil
	}
	if d.file != nil {
		d.file.Close()
	}

	path := filepath.Join(d.dir, today+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	d.file = file
	d.day = today
	return nil
}
