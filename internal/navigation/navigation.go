// Package navigation computes previous/next plant links from the catalog
// order and interprets swipe gestures for page-level navigation.
package navigation

import "time"

// Default thresholds for page swipes. A swipe must cover the minimum
// horizontal distance, finish within the maximum duration, and be
// horizontally dominant.
const (
	DefaultMinDistance = 60.0
	DefaultMaxDuration = 500 * time.Millisecond
)

// Direction is a resolved page swipe.
type Direction int

const (
	// DirectionNone means the gesture did not qualify as a swipe.
	DirectionNone Direction = iota
	// DirectionLeft is a leftward swipe, mapped to the next plant.
	DirectionLeft
	// DirectionRight is a rightward swipe, mapped to the previous plant.
	DirectionRight
)

// Neighbors returns the slugs before and after current in catalog order.
// Missing neighbors (first/last entry, or current not in order) come back
// empty.
func Neighbors(order []string, current string) (prevSlug, nextSlug string) {
	for i, slug := range order {
		if slug != current {
			continue
		}
		if i > 0 {
			prevSlug = order[i-1]
		}
		if i < len(order)-1 {
			nextSlug = order[i+1]
		}
		return prevSlug, nextSlug
	}
	return "", ""
}

// Pager holds the neighbor links for one detail page.
type Pager struct {
	prevSlug string
	nextSlug string
}

// NewPager computes the pager for current within the given catalog order.
func NewPager(order []string, current string) *Pager {
	prev, next := Neighbors(order, current)
	return &Pager{prevSlug: prev, nextSlug: next}
}

// PrevSlug returns the previous plant's slug, or "" at the start.
func (p *Pager) PrevSlug() string { return p.prevSlug }

// NextSlug returns the next plant's slug, or "" at the end.
func (p *Pager) NextSlug() string { return p.nextSlug }

// Target maps a swipe direction to the neighbor it navigates to. A leftward
// swipe advances to the next plant. ok is false when no neighbor exists in
// that direction.
func (p *Pager) Target(dir Direction) (slug string, ok bool) {
	switch dir {
	case DirectionLeft:
		return p.nextSlug, p.nextSlug != ""
	case DirectionRight:
		return p.prevSlug, p.prevSlug != ""
	default:
		return "", false
	}
}

// SwipeDetector resolves raw touch begin/end points into page swipes. Once a
// gesture triggers it is latched; further End calls from the same gesture
// return DirectionNone until a new gesture begins.
type SwipeDetector struct {
	minDistance float64
	maxDuration time.Duration

	active         bool
	latched        bool
	startX, startY float64
	startTime      time.Time
}

// NewSwipeDetector creates a detector with the default thresholds.
func NewSwipeDetector() *SwipeDetector {
	return &SwipeDetector{
		minDistance: DefaultMinDistance,
		maxDuration: DefaultMaxDuration,
	}
}

// Begin starts tracking a new gesture, clearing any latch from the previous
// one.
func (s *SwipeDetector) Begin(x, y float64, at time.Time) {
	s.active = true
	s.latched = false
	s.startX, s.startY = x, y
	s.startTime = at
}

// End resolves the gesture ending at the given point and time. Gestures that
// are too short, too slow, or vertically dominated resolve to DirectionNone.
func (s *SwipeDetector) End(x, y float64, at time.Time) Direction {
	if !s.active || s.latched {
		return DirectionNone
	}

	dx := x - s.startX
	dy := y - s.startY
	elapsed := at.Sub(s.startTime)

	if abs(dx) < s.minDistance || abs(dx) <= abs(dy) || elapsed > s.maxDuration {
		return DirectionNone
	}

	s.latched = true
	if dx < 0 {
		return DirectionLeft
	}
	return DirectionRight
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
