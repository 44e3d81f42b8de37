package logging

import (
	"context"
	"fmt"
	"regexp"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonlview/tui/theme"
)

// ansiRegex matches ANSI escape sequences for stripping
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// UnifiedLogger writes one message to two places: a styled line for the
// person at the terminal and a structured entry in the component log.
//
//	ulog := logging.NewUnifiedLogger("replace")
//	ulog.Success("Replaced 3 occurrences").Field("count", 3).Log(ctx)
type UnifiedLogger struct {
	component  string
	structured *logrus.Entry
}

// NewUnifiedLogger creates a new unified logger for a specific component.
func NewUnifiedLogger(component string) *UnifiedLogger {
	structured := NewLogger(component)
	// The caller is recorded by logStructured so that it points at the call
	// site rather than at this wrapper.
	structured.Logger.SetReportCaller(false)

	return &UnifiedLogger{
		component:  component,
		structured: structured,
	}
}

func (u *UnifiedLogger) entry(level logrus.Level, msg, icon, status string) *LogEntry {
	e := &LogEntry{
		logger: u,
		msg:    msg,
		level:  level,
		fields: logrus.Fields{},
		icon:   icon,
	}
	if status != "" {
		e.fields["status"] = status
	}
	return e
}

// Debug returns a LogEntry at DEBUG level. Its pretty line is printed only
// when the component logger is at debug level.
func (u *UnifiedLogger) Debug(msg string) *LogEntry {
	return u.entry(logrus.DebugLevel, msg, "", "")
}

// Info returns a LogEntry at INFO level.
func (u *UnifiedLogger) Info(msg string) *LogEntry {
	return u.entry(logrus.InfoLevel, msg, "", "")
}

// Warn returns a LogEntry at WARN level with IconWarning.
func (u *UnifiedLogger) Warn(msg string) *LogEntry {
	return u.entry(logrus.WarnLevel, msg, theme.IconWarning, "")
}

// Error returns a LogEntry at ERROR level with IconError.
func (u *UnifiedLogger) Error(msg string) *LogEntry {
	return u.entry(logrus.ErrorLevel, msg, theme.IconError, "")
}

// Success returns an INFO entry with IconSuccess and status=success.
func (u *UnifiedLogger) Success(msg string) *LogEntry {
	return u.entry(logrus.InfoLevel, msg, theme.IconSuccess, "success")
}

// Progress returns an INFO entry with IconRunning and status=progress.
func (u *UnifiedLogger) Progress(msg string) *LogEntry {
	return u.entry(logrus.InfoLevel, msg, theme.IconRunning, "progress")
}

// Status returns an INFO entry with IconInfo and status=info.
func (u *UnifiedLogger) Status(msg string) *LogEntry {
	return u.entry(logrus.InfoLevel, msg, theme.IconInfo, "info")
}

// Component returns the component name for this logger.
func (u *UnifiedLogger) Component() string {
	return u.component
}

// WithStructured returns the underlying logrus entry.
func (u *UnifiedLogger) WithStructured() *logrus.Entry {
	return u.structured
}

// LogEntry accumulates options before writing to both outputs.
// Nothing is written until Log is called.
type LogEntry struct {
	logger     *UnifiedLogger
	msg        string
	level      logrus.Level
	fields     logrus.Fields
	icon       string
	prettyMsg  string
	prettyOnly bool
	structOnly bool
	noIcon     bool
	err        error
}

// Field adds a structured field. Fields do not appear in the pretty line.
func (e *LogEntry) Field(key string, value interface{}) *LogEntry {
	e.fields[key] = value
	return e
}

// Fields adds multiple structured fields.
func (e *LogEntry) Fields(fields map[string]interface{}) *LogEntry {
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

// Err attaches an error, recorded as the "error" field. A nil error is ignored.
func (e *LogEntry) Err(err error) *LogEntry {
	if err != nil {
		e.err = err
		e.fields["error"] = err.Error()
	}
	return e
}

// Icon overrides the default icon.
func (e *LogEntry) Icon(icon string) *LogEntry {
	e.icon = icon
	return e
}

// NoIcon suppresses the icon in pretty output.
func (e *LogEntry) NoIcon() *LogEntry {
	e.noIcon = true
	return e
}

// Pretty replaces the styled line. The structured entry keeps the plain msg.
func (e *LogEntry) Pretty(styled string) *LogEntry {
	e.prettyMsg = styled
	return e
}

// PrettyOnly skips structured output.
func (e *LogEntry) PrettyOnly() *LogEntry {
	e.prettyOnly = true
	return e
}

// StructuredOnly skips pretty output.
func (e *LogEntry) StructuredOnly() *LogEntry {
	e.structOnly = true
	return e
}

// Log writes the entry. The pretty line goes to the writer attached to ctx
// (see WithWriter), the structured entry to the component logger.
func (e *LogEntry) Log(ctx context.Context) {
	prettyOutput := e.computePrettyOutput()

	showPretty := !e.structOnly
	if e.level == logrus.DebugLevel && !e.logger.structured.Logger.IsLevelEnabled(logrus.DebugLevel) {
		showPretty = false
	}
	if showPretty {
		fmt.Fprintf(GetWriter(ctx), "%s\n", prettyOutput)
	}

	if !e.prettyOnly {
		e.logStructured(prettyOutput)
	}
}

// computePrettyOutput generates the styled output string.
func (e *LogEntry) computePrettyOutput() string {
	if e.prettyMsg != "" {
		return e.prettyMsg
	}

	output := e.msg
	if !e.noIcon {
		icon := e.icon
		if icon == "" {
			icon = theme.IconBullet
		}
		output = icon + " " + e.msg
	}

	styles := DefaultPrettyStyles()
	switch e.level {
	case logrus.WarnLevel:
		return styles.Warning.Render(output)
	case logrus.ErrorLevel:
		return styles.Error.Render(output)
	case logrus.DebugLevel:
		return styles.Key.Render(output)
	}

	switch e.icon {
	case theme.IconSuccess:
		return styles.Success.Render(output)
	case theme.IconRunning, theme.IconInfo:
		return styles.Info.Render(output)
	}
	return output
}

// logStructured writes the structured log entry to logrus.
func (e *LogEntry) logStructured(prettyOutput string) {
	// skip: 0=logStructured, 1=Log, 2=call site
	if pc, file, line, ok := runtime.Caller(2); ok {
		funcName := ""
		if fn := runtime.FuncForPC(pc); fn != nil {
			funcName = fn.Name()
		}
		e.fields["file"] = fmt.Sprintf("%s:%d", file, line)
		e.fields["func"] = funcName
	}

	e.fields["pretty_text"] = ansiRegex.ReplaceAllString(prettyOutput, "")

	e.logger.structured.WithFields(e.fields).Log(e.level, e.msg)
}
