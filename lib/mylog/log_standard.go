package mylog

import (
	"context"
	"fmt"
	"os"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	componentName string
}

func newStandardLogger(componentName string) Logger {
	return standardLogger{
		componentName: componentName,
	}
}

func (l standardLogger) Log(c context.Context, traceLabel string, severity Severity, format string, a ...any) {
	if traceLabel == "" {
		traceLabel = "-"
	}
	fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", string(severity), l.componentName, traceLabel, fmt.Sprintf(format, a...))
}
