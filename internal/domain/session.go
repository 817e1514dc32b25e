package domain

import "time"

// Session is the transient state of one monitoring run. It lives from a
// successful attach until Stop (or an unrecoverable panic-delivery
// failure) and is owned exclusively by the polling goroutine; the escaped
// flag never outlives the session.
type Session struct {
	Escaped    bool
	LastAttach time.Time
}

// EscapeDecision is the outcome of comparing a sampled value against the
// threshold.
type EscapeDecision int

const (
	DecideNone EscapeDecision = iota
	DecidePanic
	DecideReset
)

// Decide returns the escape transition for a sampled value. At most one
// panic fires per threshold crossing: once escaped, further low samples
// are ignored until the value climbs back above the threshold.
func (s Session) Decide(value, threshold int64) EscapeDecision {
	switch {
	case value <= threshold && !s.Escaped:
		return DecidePanic
	case value > threshold && s.Escaped:
		return DecideReset
	}
	return DecideNone
}

// ShouldReattach reports whether the backend should be re-attached now.
// A zero or absurdly large sample means the resolved pointer is reading
// garbage; either condition (or an active escape) requests a reattach,
// throttled to one attempt per interval.
func (s Session) ShouldReattach(value, garbageCeiling int64, now time.Time, interval time.Duration) bool {
	if value != 0 && value < garbageCeiling && !s.Escaped {
		return false
	}
	return now.Sub(s.LastAttach) >= interval
}
