package audit

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Structured data IDs (RFC5424). 32473 is the documentation PEN from RFC5612.
const (
	SDIDObject       = "object@32473"
	SDIDRelationship = "relationship@32473"
	SDIDSnapshot     = "snapshot@32473"
	SDIDAction       = "action@32473"
	SDIDClient       = "client@32473"
)

// AppName is reported in the APP-NAME field of every line
const AppName = "invmang"

// Syslog facility constants
const (
	FacilityUser   = 1  // LOG_USER
	FacilityLocal0 = 16 // LOG_LOCAL0 - inventory writes
)

// Severity levels matching syslog (RFC5424)
type Severity int

const (
	SeverityEmergency Severity = iota // 0
	SeverityAlert                     // 1
	SeverityCritical                  // 2
	SeverityError                     // 3
	SeverityWarning                   // 4
	SeverityNotice                    // 5
	SeverityInfo                      // 6
	SeverityDebug                     // 7
)

// Event represents an audit event
type Event interface {
	MessageID() string
	Message() string
	Severity() Severity
	Facility() int
	StructuredData() map[string]map[string]string
}

// Logger handles audit logging in RFC5424 syslog format
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	hostname string
	appName  string
	pid      int
	now      func() time.Time
}

// NewLogger creates a new audit logger writing to stdout
func NewLogger() *Logger {
	hostname, _ := os.Hostname()
	return &Logger{
		writer:   os.Stdout,
		hostname: hostname,
		appName:  AppName,
		pid:      os.Getpid(),
		now:      time.Now,
	}
}

// SetWriter sets the output writer for the logger
func (l *Logger) SetWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writer = w
}

// Format renders an event as a single RFC5424 line without the trailing newline.
// <PRI>VERSION TIMESTAMP HOSTNAME APP-NAME PROCID MSGID SD MSG
func (l *Logger) Format(event Event) string {
	pri := event.Facility()*8 + int(event.Severity())
	timestamp := l.now().UTC().Format("2006-01-02T15:04:05.000Z")

	sd := formatStructuredData(event.StructuredData())
	if sd == "" {
		sd = "-"
	}
	hostname := l.hostname
	if hostname == "" {
		hostname = "-"
	}

	return fmt.Sprintf("<%d>1 %s %s %s %d %s %s %s",
		pri,
		timestamp,
		hostname,
		l.appName,
		l.pid,
		event.MessageID(),
		sd,
		event.Message(),
	)
}

// Log writes an audit event
func (l *Logger) Log(event Event) {
	line := l.Format(event) + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.writer, line)
}

// formatStructuredData formats structured data according to RFC5424.
// Elements and params are sorted so output is stable.
func formatStructuredData(sd map[string]map[string]string) string {
	if len(sd) == 0 {
		return ""
	}

	ids := make([]string, 0, len(sd))
	for id := range sd {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		params := sd[id]
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("[")
		b.WriteString(id)
		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(escapeSDValue(params[k]))
		}
		b.WriteString("]")
	}
	return b.String()
}

// escapeSDValue escapes special characters in structured data values per RFC5424 6.3.3
func escapeSDValue(value string) string {
	value = strings.ReplaceAll(value, "\\", "\\\\")
	value = strings.ReplaceAll(value, "\"", "\\\"")
	value = strings.ReplaceAll(value, "]", "\\]")
	return "\"" + value + "\""
}

// DefaultLogger is used by the package level Log
var DefaultLogger = NewLogger()

// DefaultStore persists events; nil when AUDIT_DATABASE_URL is not set
var DefaultStore *Store

var (
	enabledMu     sync.RWMutex
	auditEnabled  = true
	enabledOnce   sync.Once
	storeInitOnce sync.Once
)

// IsEnabled returns whether audit logging is enabled.
// INVMANG_AUDIT_ENABLED=false disables it unless SetEnabled was called.
func IsEnabled() bool {
	enabledOnce.Do(func() {
		if env := os.Getenv("INVMANG_AUDIT_ENABLED"); env != "" {
			enabledMu.Lock()
			auditEnabled = env != "false" && env != "0" && env != "no"
			enabledMu.Unlock()
		}
	})
	enabledMu.RLock()
	defer enabledMu.RUnlock()
	return auditEnabled
}

// SetEnabled overrides the environment setting
func SetEnabled(enabled bool) {
	enabledOnce.Do(func() {})
	enabledMu.Lock()
	auditEnabled = enabled
	enabledMu.Unlock()
}

// Log writes an event to the default logger and store when audit is enabled
func Log(event Event) {
	if !IsEnabled() {
		return
	}
	DefaultLogger.Log(event)

	storeInitOnce.Do(func() {
		store, err := NewStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "audit: failed to connect to audit database: %v\n", err)
			return
		}
		if store == nil {
			return
		}
		if err := store.EnsureSchema(); err != nil {
			fmt.Fprintf(os.Stderr, "audit: failed to prepare audit table: %v\n", err)
			_ = store.Close()
			return
		}
		DefaultStore = store
	})

	if DefaultStore != nil {
		if err := DefaultStore.Save(event); err != nil {
			fmt.Fprintf(os.Stderr, "audit: failed to save event: %v\n", err)
		}
	}
}
