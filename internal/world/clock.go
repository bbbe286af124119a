package world

import "time"

// Clock supplies the timestamps of the collision cooldown ledger.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, whose monotonic reading makes differences
// immune to wall-clock jumps.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
