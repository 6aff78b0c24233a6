// Package logging provides structured JSON logging for coursework.
// Every entry is a single JSON object per line so logs can be shipped to any
// aggregator without a custom parser.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// LogLevel is the severity of an entry.
type LogLevel string

const (
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
	LogLevelEvent    LogLevel = "EVENT"
)

// EventType names a domain event recorded with Logger.Event.
type EventType string

const (
	EventRecordSaved       EventType = "record_saved"
	EventRecordDeleted     EventType = "record_deleted"
	EventValidationFailed  EventType = "validation_failed"
	EventProjectRecounted  EventType = "project_recounted"
	EventEmployeeLinked    EventType = "employee_linked"
	EventEmployeeUnlinked  EventType = "employee_unlinked"
	EventFileServed        EventType = "file_served"
	EventFileMissing       EventType = "file_missing"
	EventMigrationsApplied EventType = "migrations_applied"
	EventWriteThrottled    EventType = "write_throttled"
)

// LogEntry is the JSON shape written for every log line.
// Optional fields are omitted when empty.
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     LogLevel               `json:"level"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error,omitempty"`
	EventType EventType              `json:"event_type,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Method    string                 `json:"method,omitempty"`
	Path      string                 `json:"path,omitempty"`
	Status    int                    `json:"status,omitempty"`
	LatencyMS int64                  `json:"latency_ms,omitempty"`
	IPAddress string                 `json:"ip_address,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// Logger writes LogEntry values as JSON lines.
// It is safe for concurrent use because log.Logger serializes writes.
type Logger struct {
	output *log.Logger
	app    string
}

// NewLogger returns a Logger writing to stdout.
func NewLogger() *Logger {
	return New(os.Stdout)
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{output: log.New(w, "", 0)}
}

// With returns a copy of the logger that tags every entry with the application name.
func (l *Logger) With(app string) *Logger {
	return &Logger{output: l.output, app: app}
}

// Info logs an informational message.
func (l *Logger) Info(message string) {
	l.write(LogEntry{Level: LogLevelInfo, Message: message})
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning.
func (l *Logger) Warn(message string) {
	l.write(LogEntry{Level: LogLevelWarning, Message: message})
}

// Error logs an error; err may be nil.
func (l *Logger) Error(message string, err error) {
	l.write(LogEntry{Level: LogLevelError, Message: message, Error: errString(err)})
}

// Critical logs a failure that stops the process or a request path entirely.
func (l *Logger) Critical(message string, err error) {
	l.write(LogEntry{Level: LogLevelCritical, Message: message, Error: errString(err)})
}

// Event records a domain event with free-form fields.
func (l *Logger) Event(eventType EventType, extra map[string]interface{}) {
	l.write(LogEntry{
		Level:     LogLevelEvent,
		Message:   string(eventType),
		EventType: eventType,
		Extra:     extra,
	})
}

// HTTPRequest records one handled request.
//
// Parameters:
//   - method, path: request line
//   - status: response status code
//   - latencyMS: handler latency in milliseconds
//   - ip, userAgent: client details
//   - requestID: value of the X-Request-ID header (may be empty)
func (l *Logger) HTTPRequest(method, path string, status int, latencyMS int64, ip, userAgent, requestID string) {
	l.write(LogEntry{
		Level:     LogLevelInfo,
		Message:   fmt.Sprintf("%s %s %d", method, path, status),
		RequestID: requestID,
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMS: latencyMS,
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

func (l *Logger) write(entry LogEntry) {
	entry.Timestamp = time.Now().UTC()
	if l.app != "" {
		if entry.Extra == nil {
			entry.Extra = map[string]interface{}{}
		}
		entry.Extra["app"] = l.app
	}

	data, err := json.Marshal(entry)
	if err != nil {
		// Extra carried something json cannot encode; keep the line, drop the fields.
		entry.Extra = nil
		entry.Error = fmt.Sprintf("%s (log encode: %v)", entry.Error, err)
		data, _ = json.Marshal(entry)
	}
	l.output.Println(string(data))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
