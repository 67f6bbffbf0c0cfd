package search

import "time"

// TimeLeftFunc returns the time left in the current move budget.
// It must be non-increasing during a single search.
type TimeLeftFunc func() time.Duration

// Deadline returns a TimeLeftFunc counting down to deadline.
func Deadline(deadline time.Time) TimeLeftFunc {
	return func() time.Duration {
		return time.Until(deadline)
	}
}

// Budget returns a TimeLeftFunc that expires d from now.
func Budget(d time.Duration) TimeLeftFunc {
	return Deadline(time.Now().Add(d))
}

// Unlimited never runs out. It is useful with a MaxDepth cap.
func Unlimited() time.Duration {
	return time.Duration(1<<63 - 1)
}
