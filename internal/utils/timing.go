package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// SlowOperationThreshold is the duration above which a timed operation is
// logged at warn level.
const SlowOperationThreshold = 10 * time.Second

// Timer measures one operation and logs its duration when stopped.
type Timer struct {
	start time.Time
	name  string
	log   zerolog.Logger
	slow  time.Duration
	now   func() time.Time
}

// NewTimer starts a timer for the named operation.
func NewTimer(name string, log zerolog.Logger) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
		log:   log,
		slow:  SlowOperationThreshold,
		now:   time.Now,
	}
}

// Stop logs the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	return t.StopWithRows(-1)
}

// StopWithRows logs the elapsed time together with the number of rows the
// operation produced. A negative count is omitted.
func (t *Timer) StopWithRows(rows int) time.Duration {
	duration := t.now().Sub(t.start)

	event := t.log.Debug()
	if duration > t.slow {
		event = t.log.Warn()
	}
	event = event.Str("operation", t.name).Dur("duration_ms", duration)
	if rows >= 0 {
		event = event.Int("rows", rows)
	}

	if duration > t.slow {
		event.Msg("Slow operation detected")
	} else {
		event.Msg("Operation completed")
	}

	return duration
}
