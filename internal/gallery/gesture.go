package gallery

// Swipes shorter than this settle back to the resting position instead of
// changing the index.
const swipeMinDistance = 50.0

// SwipeDirection is the resolved outcome of a completed drag.
type SwipeDirection int

const (
	// SwipeNone means the drag was too short or vertically dominated.
	SwipeNone SwipeDirection = iota
	// SwipeLeft is a leftward drag, mapped to the next image.
	SwipeLeft
	// SwipeRight is a rightward drag, mapped to the previous image.
	SwipeRight
)

// DragTracker interprets a single touch drag over the lightbox. Horizontal
// movement beyond the distance threshold with horizontal dominance resolves
// to a swipe; anything else resolves to SwipeNone and the image settles back.
type DragTracker struct {
	active         bool
	startX, startY float64
	lastX, lastY   float64
}

// Start begins tracking a drag at the given point.
func (d *DragTracker) Start(x, y float64) {
	d.active = true
	d.startX, d.startY = x, y
	d.lastX, d.lastY = x, y
}

// Move records pointer movement and returns the current horizontal offset,
// used to slide the image with the finger.
func (d *DragTracker) Move(x, y float64) float64 {
	if !d.active {
		return 0
	}
	d.lastX, d.lastY = x, y
	return d.Offset()
}

// Offset is the horizontal distance from the drag origin. Zero when no drag
// is active.
func (d *DragTracker) Offset() float64 {
	if !d.active {
		return 0
	}
	return d.lastX - d.startX
}

// End finishes the drag and resolves its direction.
func (d *DragTracker) End() SwipeDirection {
	if !d.active {
		return SwipeNone
	}
	dx := d.lastX - d.startX
	dy := d.lastY - d.startY
	d.active = false

	if abs(dx) < swipeMinDistance || abs(dx) <= abs(dy) {
		return SwipeNone
	}
	if dx < 0 {
		return SwipeLeft
	}
	return SwipeRight
}

// Active reports whether a drag is in progress.
func (d *DragTracker) Active() bool { return d.active }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
