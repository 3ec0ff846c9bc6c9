package mylog

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MarcGrol/partnerstorefront/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGcloudLogger
	}
}

// Cloud Logging parses these keys from stdout, so the encoder uses them verbatim.
func newCloudEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey: "message",
		LevelKey:   "severity",
		TimeKey:    "timestamp",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
	}
}

type structuredLogger struct {
	componentName string
	logger        *zap.Logger
}

func newGcloudLogger(componentName string) Logger {
	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(zapcore.DebugLevel),
		Encoding:          "json",
		EncoderConfig:     newCloudEncoderConfig(),
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	logger, err := cfg.Build()
	if err != nil {
		log.Printf("error creating structured logger for %s, falling back to standard: %s", componentName, err)
		return newStandardLogger(componentName)
	}

	return newStructuredLogger(componentName, logger)
}

func newStructuredLogger(componentName string, logger *zap.Logger) Logger {
	return structuredLogger{
		componentName: componentName,
		logger:        logger.With(zap.String("component", componentName)),
	}
}

func (l structuredLogger) Log(c context.Context, traceLabel string, severity Severity, format string, a ...any) {
	fields := []zap.Field{
		zap.Any("logging.googleapis.com/labels", map[string]string{"aggregate": traceLabel}),
	}
	if trace, ok := c.Value(mycontext.CtxTraceContext{}).(string); ok && trace != "" {
		fields = append(fields, zap.String("logging.googleapis.com/trace", trace))
	}

	msg := l.componentName + ":" + fmt.Sprintf(format, a...)

	switch severity {
	case SeverityDebug:
		l.logger.Debug(msg, fields...)
	case SeverityWarn:
		l.logger.Warn(msg, fields...)
	case SeverityError:
		l.logger.Error(msg, fields...)
	default:
		l.logger.Info(msg, fields...)
	}
}
