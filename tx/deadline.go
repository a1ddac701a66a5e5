package tx

import (
	"fmt"
	"time"

	"github.com/bitfsorg/catapult-go/ids"
)

// MaxDeadline is the furthest in the future a deadline may be set.
const MaxDeadline = 24 * time.Hour

// Epoch is the network time origin, 2016-04-01T00:00:00Z.
var Epoch = time.Date(2016, time.April, 1, 0, 0, 0, 0, time.UTC)

// Deadline is a ledger-level expiry in milliseconds since Epoch.
type Deadline ids.UInt64

// CreateDeadline returns now+d. d must lie in (0, MaxDeadline].
func CreateDeadline(now time.Time, d time.Duration) (Deadline, error) {
	if d <= 0 {
		return 0, fmt.Errorf("%w: duration %s must be positive", ErrInvalidDeadline, d)
	}
	if d > MaxDeadline {
		return 0, fmt.Errorf("%w: duration %s exceeds %s", ErrInvalidDeadline, d, MaxDeadline)
	}
	return DeadlineFromTime(now.Add(d)), nil
}

// DeadlineFromTime converts an absolute time. Times before Epoch map to zero.
func DeadlineFromTime(t time.Time) Deadline {
	ms := t.Sub(Epoch).Milliseconds()
	if ms < 0 {
		return 0
	}
	return Deadline(ms)
}

// Time returns the deadline as an absolute UTC time.
func (d Deadline) Time() time.Time {
	return Epoch.Add(time.Duration(d) * time.Millisecond)
}

// UInt64 returns the raw wire value.
func (d Deadline) UInt64() ids.UInt64 { return ids.UInt64(d) }

// validate checks that d lies in (now, now+MaxDeadline].
func (d Deadline) validate(now time.Time) error {
	if d == 0 {
		return fmt.Errorf("%w: deadline is not set", ErrInvalidDeadline)
	}
	if !d.Time().After(now) {
		return fmt.Errorf("%w: %s is not after %s",
			ErrInvalidDeadline, d.Time().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	}
	if d.Time().After(now.Add(MaxDeadline)) {
		return fmt.Errorf("%w: %s is more than %s ahead of %s",
			ErrInvalidDeadline, d.Time().Format(time.RFC3339), MaxDeadline, now.UTC().Format(time.RFC3339))
	}
	return nil
}
