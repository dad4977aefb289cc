package domain

import "github.com/jonboulle/clockwork"

// clock stamps dataset and fixture metadata. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the metadata time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Clock returns the current metadata time source.
func Clock() clockwork.Clock {
	return clock
}
