package service

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	trackingPrefix = "SC"
	suffixDigits   = 100000 // 5-digit random suffix

	// maxTrackingAttempts bounds the create retry loop. A 5-digit suffix
	// within one day-window makes collisions rare but possible, so a
	// duplicate from the store is recoverable, not fatal.
	maxTrackingAttempts = 5
)

// generateTrackingNumber returns an identifier in the format SCyymmddNNNNN:
// fixed carrier prefix, creation day, and a uniformly random 5-digit suffix.
func generateTrackingNumber(now time.Time) string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%s%s%05d", trackingPrefix, now.Format("060102"), now.UnixNano()%suffixDigits)
	}
	n := binary.BigEndian.Uint64(b[:]) % suffixDigits
	return fmt.Sprintf("%s%s%05d", trackingPrefix, now.Format("060102"), n)
}
