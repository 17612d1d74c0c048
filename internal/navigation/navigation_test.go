package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogOrder = []string{"saguaro-cactus", "ocotillo", "palo-verde"}

func TestNeighbors(t *testing.T) {
	tests := []struct {
		name         string
		current      string
		expectedPrev string
		expectedNext string
	}{
		{name: "middle", current: "ocotillo", expectedPrev: "saguaro-cactus", expectedNext: "palo-verde"},
		{name: "first", current: "saguaro-cactus", expectedPrev: "", expectedNext: "ocotillo"},
		{name: "last", current: "palo-verde", expectedPrev: "ocotillo", expectedNext: ""},
		{name: "unknown slug", current: "tumbleweed", expectedPrev: "", expectedNext: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, next := Neighbors(catalogOrder, tt.current)
			assert.Equal(t, tt.expectedPrev, prev)
			assert.Equal(t, tt.expectedNext, next)
		})
	}
}

func TestLeftwardSwipeNavigatesToNextSlug(t *testing.T) {
	// 80px horizontal, 10px vertical, inside 300ms, on a page with both
	// neighbors defined.
	p := NewPager(catalogOrder, "ocotillo")
	d := NewSwipeDetector()

	start := time.Now()
	d.Begin(300, 400, start)
	dir := d.End(220, 410, start.Add(300*time.Millisecond))
	require.Equal(t, DirectionLeft, dir)

	slug, ok := p.Target(dir)
	require.True(t, ok)
	assert.Equal(t, "palo-verde", slug)
}

func TestRightwardSwipeNavigatesToPrevSlug(t *testing.T) {
	p := NewPager(catalogOrder, "ocotillo")
	d := NewSwipeDetector()

	start := time.Now()
	d.Begin(100, 200, start)
	dir := d.End(260, 195, start.Add(150*time.Millisecond))
	require.Equal(t, DirectionRight, dir)

	slug, ok := p.Target(dir)
	require.True(t, ok)
	assert.Equal(t, "saguaro-cactus", slug)
}

func TestSwipeRejections(t *testing.T) {
	tests := []struct {
		name    string
		dx, dy  float64
		elapsed time.Duration
	}{
		{name: "too short", dx: -30, dy: 5, elapsed: 100 * time.Millisecond},
		{name: "too slow", dx: -120, dy: 5, elapsed: 900 * time.Millisecond},
		{name: "vertically dominated", dx: -70, dy: 110, elapsed: 100 * time.Millisecond},
		{name: "equal axes", dx: 70, dy: 70, elapsed: 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewSwipeDetector()
			start := time.Now()
			d.Begin(300, 300, start)
			assert.Equal(t, DirectionNone, d.End(300+tt.dx, 300+tt.dy, start.Add(tt.elapsed)))
		})
	}
}

func TestSwipeLatchesUntilNewGesture(t *testing.T) {
	d := NewSwipeDetector()
	start := time.Now()

	d.Begin(300, 300, start)
	require.Equal(t, DirectionLeft, d.End(200, 300, start.Add(100*time.Millisecond)))

	// Duplicate End events from the same gesture do not re-trigger.
	assert.Equal(t, DirectionNone, d.End(180, 300, start.Add(120*time.Millisecond)))

	// A new gesture clears the latch.
	d.Begin(300, 300, start.Add(time.Second))
	assert.Equal(t, DirectionLeft, d.End(200, 300, start.Add(time.Second+100*time.Millisecond)))
}

func TestEndWithoutBegin(t *testing.T) {
	d := NewSwipeDetector()
	assert.Equal(t, DirectionNone, d.End(0, 0, time.Now()))
}

func TestTargetWithMissingNeighbor(t *testing.T) {
	p := NewPager(catalogOrder, "palo-verde")

	_, ok := p.Target(DirectionLeft)
	assert.False(t, ok)

	slug, ok := p.Target(DirectionRight)
	require.True(t, ok)
	assert.Equal(t, "ocotillo", slug)

	_, ok = p.Target(DirectionNone)
	assert.False(t, ok)
}
