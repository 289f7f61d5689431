// Package paging implements a window sized cursor over any ordered sequence
//
// The cursor holds no reference to the sequence it indexes, callers pass the
// length (or the sequence) on every call. Every operation re-clamps the cursor
// on entry, so a stale cursor never points past the current bounds.
package paging

import (
	"fmt"
	"strings"
)

// Direction of a step
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection accepts "left"/"prev" and "right"/"next", anything else is an error
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "prev", "previous":
		return Left, nil
	case "right", "next":
		return Right, nil
	default:
		return 0, fmt.Errorf("paging: unknown direction %q", s)
	}
}

// Cursor is the offset/window pair of a visible slice
type Cursor struct {
	Offset int `json:"offset"`
	Window int `json:"window"`
}

// New returns a cursor at offset 0 with window clamped to at least 1
func New(window int) Cursor {
	return Cursor{Window: max(1, window)}
}

func maxOffset(window, length int) int {
	return max(0, length-window)
}

// Reclamp forces c into [0, max(0, length-window)] and window into >= 1
func Reclamp(c Cursor, length int) Cursor {
	c.Window = max(1, c.Window)
	length = max(0, length)
	c.Offset = min(max(0, c.Offset), maxOffset(c.Window, length))
	return c
}

// Step moves c by one full window in direction d
// stepping past either end is a no-op
func Step(c Cursor, d Direction, length int) Cursor {
	c = Reclamp(c, length)
	switch d {
	case Right:
		c.Offset = min(maxOffset(c.Window, length), c.Offset+c.Window)
	case Left:
		c.Offset = max(0, c.Offset-c.Window)
	}
	return c
}

// VisibleSlice returns seq[offset:offset+window] clipped to the bounds of seq
// the result shares backing storage with seq
func VisibleSlice[T any](c Cursor, seq []T) []T {
	c = Reclamp(c, len(seq))
	end := min(len(seq), c.Offset+c.Window)
	return seq[c.Offset:end:end]
}

// CanStepLeft reports whether a left step would move the cursor
func CanStepLeft(c Cursor) bool {
	return c.Offset > 0
}

// CanStepRight reports whether a right step would move the cursor
func CanStepRight(c Cursor, length int) bool {
	c = Reclamp(c, length)
	return c.Offset < length-c.Window
}

// Pages is the number of window sized slides needed to show length items
func Pages(c Cursor, length int) int {
	c = Reclamp(c, length)
	if length <= 0 {
		return 0
	}
	return (length + c.Window - 1) / c.Window
}

// CurrentPage is the zero based slide the cursor is on
// a clamped tail offset reports the last page
func CurrentPage(c Cursor, length int) int {
	c = Reclamp(c, length)
	p := (c.Offset + c.Window - 1) / c.Window
	if n := Pages(c, length); n > 0 && p > n-1 {
		p = n - 1
	}
	return p
}

// Jump places the cursor on page p (zero based), clamped
func Jump(c Cursor, page, length int) Cursor {
	c.Window = max(1, c.Window)
	c.Offset = max(0, page) * c.Window
	return Reclamp(c, length)
}
