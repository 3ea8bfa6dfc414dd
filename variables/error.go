package variables

import "strings"

// Error is a resolution failure. The engine adds line and label context.
type Error struct {
	Reason  string
	Subject string
	Extra   string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason)
	if e.Subject != "" {
		b.WriteString(": ")
		b.WriteString(e.Subject)
	}
	if e.Extra != "" {
		b.WriteString(", ")
		b.WriteString(e.Extra)
	}
	return b.String()
}

func errorf(reason, subject, extra string) error {
	return &Error{
		Reason:  reason,
		Subject: subject,
		Extra:   extra,
	}
}
