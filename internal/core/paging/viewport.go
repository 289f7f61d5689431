package paging

// Viewport classifies a client viewport width into a carousel window size
type Viewport struct {
	Breakpoint int // widths below this are narrow
	Narrow     int
	Wide       int
}

// DefaultViewport matches the carousels: two cards on phones, five otherwise
var DefaultViewport = Viewport{Breakpoint: 768, Narrow: 2, Wide: 5}

// WindowFor returns the window size for a viewport width
// width <= 0 means unknown and gets the wide window
func (v Viewport) WindowFor(width int) int {
	v = v.normalized()
	if width > 0 && width < v.Breakpoint {
		return v.Narrow
	}
	return v.Wide
}

// IsNarrow reports whether width falls below the breakpoint
func (v Viewport) IsNarrow(width int) bool {
	v = v.normalized()
	return width > 0 && width < v.Breakpoint
}

func (v Viewport) normalized() Viewport {
	if v.Breakpoint <= 0 {
		v.Breakpoint = DefaultViewport.Breakpoint
	}
	if v.Narrow < 1 {
		v.Narrow = DefaultViewport.Narrow
	}
	if v.Wide < 1 {
		v.Wide = DefaultViewport.Wide
	}
	return v
}

// Resize re-clamps c for the window of a new viewport width
func (v Viewport) Resize(c Cursor, width, length int) Cursor {
	c.Window = v.WindowFor(width)
	return Reclamp(c, length)
}
