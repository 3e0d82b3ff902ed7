// Package notify keeps the station's on-screen notifications and event log.
package notify

// Priority ranks a notification
type Priority int

// Notification priorities
const (
	Info     Priority = iota // General information
	Warning                  // Something needs attention
	Critical                 // Urgent action required
	Success                  // Positive feedback
)

func (p Priority) String() string {
	switch p {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Critical:
		return "Critical"
	case Success:
		return "Success"
	default:
		return "Unknown"
	}
}

// Defaults for a new Log
const (
	DefaultDuration  = 5.0
	DefaultMaxLog    = 100
	DefaultMaxActive = 5
)

// Notification is one message shown to the player
type Notification struct {
	Message   string
	Priority  Priority
	Timestamp float64 // seconds of game time when raised
	Duration  float64 // seconds it stays active
}

// Expired reports whether the notification has run its course at time now
func (n Notification) Expired(now float64) bool {
	return now-n.Timestamp >= n.Duration
}

// Log holds active notifications and a bounded history of every notification raised
type Log struct {
	active    []Notification
	history   []Notification
	maxLog    int
	maxActive int
	total     int
}

// NewLog creates a log with the given caps; non-positive caps use the defaults
func NewLog(maxLog, maxActive int) *Log {
	if maxLog <= 0 {
		maxLog = DefaultMaxLog
	}
	if maxActive <= 0 {
		maxActive = DefaultMaxActive
	}
	return &Log{maxLog: maxLog, maxActive: maxActive}
}

// Add raises a notification at time now. A non-positive duration uses DefaultDuration.
// When the active list is full the oldest active entry is dropped.
func (l *Log) Add(now float64, message string, priority Priority, duration float64) Notification {
	if duration <= 0 {
		duration = DefaultDuration
	}
	n := Notification{
		Message:   message,
		Priority:  priority,
		Timestamp: now,
		Duration:  duration,
	}

	l.total++
	l.history = append(l.history, n)
	if len(l.history) > l.maxLog {
		l.history = l.history[len(l.history)-l.maxLog:]
	}

	l.active = append(l.active, n)
	if len(l.active) > l.maxActive {
		l.active = l.active[len(l.active)-l.maxActive:]
	}
	return n
}

// Expire drops active notifications that have expired at time now and
// returns how many were removed
func (l *Log) Expire(now float64) int {
	kept := l.active[:0]
	for _, n := range l.active {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	removed := len(l.active) - len(kept)
	l.active = kept
	return removed
}

// Active returns the notifications currently shown, oldest first
func (l *Log) Active() []Notification {
	out := make([]Notification, len(l.active))
	copy(out, l.active)
	return out
}

// History returns the event log, oldest first
func (l *Log) History() []Notification {
	out := make([]Notification, len(l.history))
	copy(out, l.history)
	return out
}

// Total returns how many notifications were ever raised, including those
// dropped from the history
func (l *Log) Total() int {
	return l.total
}

// Since returns the notifications raised after the first seen of Total(),
// limited to what the history still holds
func (l *Log) Since(seen int) []Notification {
	n := l.total - seen
	if n <= 0 {
		return nil
	}
	if n > len(l.history) {
		n = len(l.history)
	}
	out := make([]Notification, n)
	copy(out, l.history[len(l.history)-n:])
	return out
}

// Clear dismisses all active notifications. The history is kept.
func (l *Log) Clear() {
	l.active = nil
}
