package nls

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/kataras/golog"
)

const formatterName = "FeedFormatter"
const newline = "\n"

var Log = newLogger()

// FeedFormatter writes one line per log: time, level, calling function, the
// fields attached to the log and the message.
type FeedFormatter struct{}

func (f *FeedFormatter) String() string {
	return formatterName
}

// no options currently
func (f *FeedFormatter) Options(_ ...interface{}) golog.Formatter {
	return f
}

func (f *FeedFormatter) Format(dest io.Writer, log *golog.Log) bool {
	sb := strings.Builder{}
	sb.WriteString(log.Time.UTC().Format(time.RFC1123))
	sb.WriteString(" ")
	sb.WriteString(golog.Levels[log.Level].Text(true))
	sb.WriteString(" ")
	sb.WriteString(callerName())
	sb.WriteString(":")
	if tags := formatFields(log.Fields); len(tags) > 0 {
		sb.WriteString(" [")
		sb.WriteString(tags)
		sb.WriteString("]")
	}
	sb.WriteString(" ")
	if log.Logger != nil {
		sb.WriteString(log.Logger.Prefix)
	}
	sb.WriteString(log.Message)
	sb.WriteString(newline)

	if _, err := io.WriteString(dest, sb.String()); err != nil {
		fmt.Printf("[FATAL] error in logger: %+v\n", err)
		return false
	}
	return true
}

func newLogger() *golog.Logger {
	logger := golog.New()
	logger.RegisterFormatter(&FeedFormatter{})
	logger.SetLevel("info")
	logger.SetFormat(formatterName)
	return logger
}

// FeedFields tags a log with the feed it is about. Pass it as the last
// argument of any Log call.
func FeedFields(name string) golog.Fields {
	return golog.Fields{"feed": name}
}

// RunFields tags a log with the feed and the validation run it is about.
func RunFields(name string, runID string) golog.Fields {
	return golog.Fields{"feed": name, "run": runID}
}

// formatFields renders fields as space separated key=value pairs, sorted by
// key.
func formatFields(fields golog.Fields) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for idx, key := range keys {
		pairs[idx] = fmt.Sprintf("%s=%v", key, fields[key])
	}
	return strings.Join(pairs, " ")
}

// callerName returns the short name of the function that logged. Frames of
// golog, pio and this file are skipped.
func callerName() string {
	programCounters := make([]uintptr, 32)
	n := runtime.Callers(2, programCounters)
	frames := runtime.CallersFrames(programCounters[:n])

	for {
		frame, more := frames.Next()
		if len(frame.Function) > 0 && !isLoggingFrame(frame) {
			return shortFunctionName(frame.Function)
		}
		if !more {
			return "unknown"
		}
	}
}

func isLoggingFrame(frame runtime.Frame) bool {
	return strings.Contains(frame.Function, "github.com/kataras/") ||
		strings.HasSuffix(frame.File, "/logging.go")
}

// shortFunctionName drops the import path, leaving package.Function or
// package.(*Type).Method.
func shortFunctionName(function string) string {
	if idx := strings.LastIndex(function, "/"); idx >= 0 {
		function = function[idx+1:]
	}
	return function
}
