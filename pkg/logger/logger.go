package logger

import (
	"lexchange/conf"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// zap的薄封装，业务侧统一调 logger.Infof / logger.Pair 这类方法

var (
	lg    *zap.Logger
	sugar *zap.SugaredLogger
)

func init() {
	// 没有Init之前也能打日志，方便测试
	lg, _ = zap.NewDevelopment(zap.AddCallerSkip(1))
	sugar = lg.Sugar()
}

// Init 根据配置初始化日志，支持文件滚动和控制台双写
func Init(cfg conf.LogConfig) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(timeFormat))
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := make([]zapcore.Core, 0, 2)
	if cfg.FileName != "" {
		// lumberjack 负责日志文件滚动
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}
	if cfg.Console || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level))
	}

	lg = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	sugar = lg.Sugar()
}

// Pair 构造一个结构化日志字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Info(msg string, fields ...zap.Field)  { lg.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { lg.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { lg.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { lg.Fatal(msg, fields...) }

func Debugf(format string, args ...interface{}) { sugar.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { sugar.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { sugar.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { sugar.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { sugar.Fatalf(format, args...) }

// Sync 退出前刷掉缓冲
func Sync() error {
	return lg.Sync()
}
