package ports

import "github.com/bnema/poe2-chicken-bot/internal/domain"

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	}
	return "info"
}

// DisplaySink is the user-facing surface the monitor talks to. All setters
// are fire-and-forget and are called from the polling goroutine; an
// implementation must not block it.
type DisplaySink interface {
	// SelectedResource returns the resource chosen by the user. Read once
	// at session start.
	SelectedResource() domain.ResourceKey
	// ThresholdText returns the user-entered threshold. Read once at
	// session start; non-numeric text falls back to the configured
	// default.
	ThresholdText() string
	SetCurrentValue(key domain.ResourceKey, value int64)
	SetEscaped(escaped bool)
	ReportStatus(msg string, severity Severity)
}
