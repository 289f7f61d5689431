package time

import (
	"testing"
	"time"
)

func TestUTC(t *testing.T) {
	if UTC(time.Time{}) != nil {
		t.Fatalf("zero time should be nil")
	}
	in := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	got := UTC(in)
	if got == nil || got.Location() != time.UTC || !got.Equal(in) {
		t.Fatalf("UTC = %v", got)
	}
}
