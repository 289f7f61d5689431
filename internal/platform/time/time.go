// Package time contains time related helpers
package time

import "time"

// UTC returns t in UTC as a pointer, or nil if t is zero, for omitempty timestamps
func UTC(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}
