package search

import "time"

// DebounceDelay is the trailing delay between the last input change and the
// filter run.
const DebounceDelay = 300 * time.Millisecond

// Debouncer tracks the latest scheduled trailing run. Every Bump supersedes
// the previously scheduled run; a run only proceeds via Fire with the latest
// sequence number.
type Debouncer struct {
	seq     uint64
	pending bool
}

// Bump schedules a new run and returns its sequence number.
func (d *Debouncer) Bump() uint64 {
	d.seq++
	d.pending = true
	return d.seq
}

// Fire reports whether seq is the pending run, consuming it.
func (d *Debouncer) Fire(seq uint64) bool {
	if !d.pending || seq != d.seq {
		return false
	}
	d.pending = false
	return true
}

// Cancel drops any pending run.
func (d *Debouncer) Cancel() {
	d.seq++
	d.pending = false
}

func (d *Debouncer) Pending() bool {
	return d.pending
}
