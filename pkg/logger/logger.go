package logger

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Config selects the level and sink. Output is "stdout", "stderr" or a file path.
type Config struct {
	Level  string
	Output string
}

var globalLogger = zap.NewNop()

// New builds a JSON zap logger whose message key is the action name.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "action",
			LevelKey:   "level",
			TimeKey:    "timestamp",
			CallerKey:  "caller",
			EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
				enc.AppendString(l.String())
			},
			EncodeTime:   zapcore.ISO8601TimeEncoder,
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapCfg.Build(zap.AddCallerSkip(2))
}

// Init replaces the process-wide logger.
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

// Set installs l as the process-wide logger. A nil l installs a no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	globalLogger = l
}

// L returns the process-wide logger.
func L() *zap.Logger {
	return globalLogger
}

func Sync() {
	_ = globalLogger.Sync()
}

func log(level zapcore.Level, action string, userID *string, details map[string]interface{}, err error) {
	fields := make([]zap.Field, 0, len(details)+2)
	if userID != nil {
		fields = append(fields, zap.String("user_id", *userID))
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, details[k]))
	}
	if err != nil {
		fields = append(fields, zap.String("error", err.Error()))
	}
	if ce := globalLogger.Check(level, action); ce != nil {
		ce.Write(fields...)
	}
}

func Debug(action string, details map[string]interface{}) {
	log(zapcore.DebugLevel, action, nil, details, nil)
}

func Info(action string, details map[string]interface{}) {
	log(zapcore.InfoLevel, action, nil, details, nil)
}

func InfoWithUser(userID string, action string, details map[string]interface{}) {
	log(zapcore.InfoLevel, action, &userID, details, nil)
}

func Warn(action string, details map[string]interface{}) {
	log(zapcore.WarnLevel, action, nil, details, nil)
}

func WarnWithUser(userID string, action string, details map[string]interface{}) {
	log(zapcore.WarnLevel, action, &userID, details, nil)
}

func Error(action string, err error, details map[string]interface{}) {
	log(zapcore.ErrorLevel, action, nil, details, err)
}

func ErrorWithUser(userID string, action string, err error, details map[string]interface{}) {
	log(zapcore.ErrorLevel, action, &userID, details, err)
}

func GenerateRequestID() string {
	return uuid.New().String()
}
