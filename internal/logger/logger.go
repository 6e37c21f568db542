package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"seoscope/internal/config"
)

// New - создает zap-логгер: консоль (stderr) и, если задан путь, файл с ротацией
func New(cfg config.LogConfig) *zap.Logger {
	level := zap.NewAtomicLevelAt(parseLogLevel(cfg.Level))

	cores := []zapcore.Core{
		zapcore.NewCore(createEncoder(cfg.Format), zapcore.Lock(os.Stderr), level),
	}

	if cfg.File.Path != "" {
		fileFormat := cfg.Format
		if fileFormat == config.LogFormatConsole || fileFormat == "" {
			fileFormat = config.LogFormatText
		}
		cores = append(cores, zapcore.NewCore(createEncoder(fileFormat), createFileWriter(cfg.File), level))
	}

	if len(cores) == 1 {
		return zap.New(cores[0])
	}
	return zap.New(zapcore.NewTee(cores...))
}

func parseLogLevel(level string) zapcore.Level {
	switch level {
	case config.LogLevelDebug:
		return zap.DebugLevel
	case config.LogLevelInfo:
		return zap.InfoLevel
	case config.LogLevelWarn:
		return zap.WarnLevel
	case config.LogLevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func createEncoder(format string) zapcore.Encoder {
	if format == config.LogFormatJSON {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if format == config.LogFormatText {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func createFileWriter(cfg config.FileLogConfig) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	})
}
