package inbox

// Severity grades a transient user-visible notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a transient user-visible message, typically rendered as a toast
// by the out-of-scope UI layer. Request failures are surfaced this way and
// never rethrown to a global handler.
type Notice struct {
	Title       string
	Description string
	Severity    Severity
}

// NoticeFunc receives notices. A nil sink drops them.
type NoticeFunc func(Notice)
