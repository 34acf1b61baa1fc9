package subscriber

import "time"

const (
	defaultBackoffFloor   = 2 * time.Second
	defaultBackoffCeiling = 30 * time.Second
	defaultBackoffFactor  = 1.5
)

// backoff computes reconnect delays: start at floor, multiply by factor after
// each failed attempt, cap at ceiling, reset to floor on success. Not safe
// for concurrent use; the run loop is its only caller.
type backoff struct {
	floor   time.Duration
	ceiling time.Duration
	factor  float64
	next    time.Duration
}

func newBackoff(floor, ceiling time.Duration, factor float64) *backoff {
	return &backoff{floor: floor, ceiling: ceiling, factor: factor, next: floor}
}

// Next returns the delay to wait before the upcoming attempt and advances
// the schedule.
func (b *backoff) Next() time.Duration {
	delay := b.next
	b.next = min(time.Duration(float64(b.next)*b.factor), b.ceiling)
	return delay
}

// Reset returns the schedule to the floor delay.
func (b *backoff) Reset() {
	b.next = b.floor
}
