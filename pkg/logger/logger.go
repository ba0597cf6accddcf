// Package logger provides the process-wide leveled logger. It is configured
// once at startup and used through package-level functions; the CF variants
// tag each line with a component name and structured fields.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var (
	mu       sync.Mutex
	minLevel = LevelInfo
	out      = os.Stderr
)

// SetLevel sets the minimum level from a name ("debug", "info", "warn",
// "error"). Unknown names fall back to info.
func SetLevel(name string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(name) {
	case "debug":
		minLevel = LevelDebug
	case "warn", "warning":
		minLevel = LevelWarn
	case "error":
		minLevel = LevelError
	default:
		minLevel = LevelInfo
	}
}

func logf(level Level, component, msg string, fields map[string]interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}

	line := fmt.Sprintf("%s %-5s", time.Now().Format("2006-01-02 15:04:05"), levelNames[level])
	if component != "" {
		line += fmt.Sprintf(" [%s]", component)
	}
	line += " " + msg
	if len(fields) > 0 {
		if data, err := json.Marshal(fields); err == nil {
			line += " " + string(data)
		}
	}
	fmt.Fprintln(out, line)
}

func Debug(msg string) { logf(LevelDebug, "", msg, nil) }
func Info(msg string)  { logf(LevelInfo, "", msg, nil) }
func Warn(msg string)  { logf(LevelWarn, "", msg, nil) }
func Error(msg string) { logf(LevelError, "", msg, nil) }

// DebugCF logs a debug message for a component with structured fields.
func DebugCF(component, msg string, fields map[string]interface{}) {
	logf(LevelDebug, component, msg, fields)
}

// InfoCF logs an info message for a component with structured fields.
func InfoCF(component, msg string, fields map[string]interface{}) {
	logf(LevelInfo, component, msg, fields)
}

// WarnCF logs a warning for a component with structured fields.
func WarnCF(component, msg string, fields map[string]interface{}) {
	logf(LevelWarn, component, msg, fields)
}

// ErrorCF logs an error for a component with structured fields.
func ErrorCF(component, msg string, fields map[string]interface{}) {
	logf(LevelError, component, msg, fields)
}
