// Package idgen provides pluggable id generation for records and hotspots.
package idgen

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// TimeBased returns ids of the form "<prefix><unix millis>", matching the
// ids user-created records have always carried. Issued values are strictly
// increasing: when the clock has not moved past the last issued millisecond,
// the next millisecond is used instead.
func TimeBased(prefix string, now func() time.Time) Generator {
	if now == nil {
		now = time.Now
	}

	var last atomic.Int64

	return func() string {
		for {
			prev := last.Load()
			next := now().UnixMilli()
			if next <= prev {
				next = prev + 1
			}
			if last.CompareAndSwap(prev, next) {
				return prefix + strconv.FormatInt(next, 10)
			}
		}
	}
}

// UUID returns a Generator of random UUIDv4 strings with the given prefix.
func UUID(prefix string) Generator {
	return func() string {
		return prefix + uuid.NewString()
	}
}
