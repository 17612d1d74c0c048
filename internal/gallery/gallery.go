// Package gallery implements the lightbox state machine: which image of an
// ordered set is active, zoom state, and boundary-aware navigation.
package gallery

import (
	"go-desert-guide/internal/models"

	log "github.com/sirupsen/logrus"
)

// Phase is the lifecycle state of the lightbox.
type Phase int

const (
	// PhaseClosed means no lightbox is showing.
	PhaseClosed Phase = iota
	// PhaseOpen means an image is displayed and input is accepted.
	PhaseOpen
	// PhaseTransitioning means a slide animation is in flight; navigation
	// and zoom input is rejected until EndTransition.
	PhaseTransitioning
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpen:
		return "open"
	case PhaseTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// ScrollLocker is the scoped page resource held while the lightbox is open.
// Acquire is called on open and Release on every path back to closed.
type ScrollLocker interface {
	Acquire()
	Release()
}

// Result reports what a navigation request did. The zero value means the
// request was ignored (closed or mid-transition).
type Result struct {
	// Moved is true when the index changed.
	Moved bool
	// Bounced is true when the request hit a boundary; callers use it to
	// play a bounded bounce animation.
	Bounced bool
}

// Controller drives one plant's lightbox. It is not safe for concurrent use;
// callers feed it discrete events from a single loop.
type Controller struct {
	images []models.GalleryImage
	lock   ScrollLocker

	phase  Phase
	index  int
	zoomed bool

	// OnIndexChange fires with the new index when the lightbox opens and
	// after every successful move. Preloading hangs off this hook.
	OnIndexChange func(index int)
}

// NewController creates a closed controller over the given image set. lock
// may be nil when there is no page scroll to manage.
func NewController(images []models.GalleryImage, lock ScrollLocker) *Controller {
	return &Controller{images: images, lock: lock}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Activate opens the lightbox at startIndex, clamped into range. An empty
// image set falls back to a single-element set containing the activating
// thumbnail's own source; with no thumbnail either, the lightbox stays
// closed. Returns whether the lightbox opened.
func (c *Controller) Activate(startIndex int, thumbnail models.GalleryImage) bool {
	if c.phase != PhaseClosed {
		return false
	}
	if len(c.images) == 0 {
		if thumbnail.URL == "" {
			log.Warn("Not opening lightbox: no images and no thumbnail source")
			return false
		}
		c.images = []models.GalleryImage{thumbnail}
	}

	c.index = clamp(startIndex, 0, len(c.images)-1)
	c.zoomed = false
	c.phase = PhaseOpen
	if c.lock != nil {
		c.lock.Acquire()
	}
	c.notify()
	return true
}

// Close returns the lightbox to closed from any open phase, abandoning an
// in-flight transition. Zoom resets and the scroll lock is released. Safe to
// call when already closed.
func (c *Controller) Close() {
	if c.phase == PhaseClosed {
		return
	}
	c.phase = PhaseClosed
	c.zoomed = false
	if c.lock != nil {
		c.lock.Release()
	}
}

// Next advances to the following image. At the last index the request
// bounces instead of moving. Ignored unless the phase is open.
func (c *Controller) Next() Result {
	return c.move(1)
}

// Prev moves to the preceding image, bouncing at index 0.
func (c *Controller) Prev() Result {
	return c.move(-1)
}

func (c *Controller) move(delta int) Result {
	if c.phase != PhaseOpen {
		return Result{}
	}
	target := c.index + delta
	if target < 0 || target > len(c.images)-1 {
		return Result{Bounced: true}
	}
	c.index = target
	c.zoomed = false
	c.phase = PhaseTransitioning
	c.notify()
	return Result{Moved: true}
}

// EndTransition marks the slide animation complete, re-enabling input.
func (c *Controller) EndTransition() {
	if c.phase == PhaseTransitioning {
		c.phase = PhaseOpen
	}
}

// ToggleZoom flips the zoom flag. Ignored unless the phase is open. Returns
// the resulting zoom state.
func (c *Controller) ToggleZoom() bool {
	if c.phase == PhaseOpen {
		c.zoomed = !c.zoomed
	}
	return c.zoomed
}

func (c *Controller) notify() {
	if c.OnIndexChange != nil {
		c.OnIndexChange(c.index)
	}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// IsOpen reports whether the lightbox is showing (open or transitioning).
func (c *Controller) IsOpen() bool { return c.phase != PhaseClosed }

// Index returns the active image index.
func (c *Controller) Index() int { return c.index }

// Zoomed reports the zoom flag.
func (c *Controller) Zoomed() bool { return c.zoomed }

// Len returns the image set size.
func (c *Controller) Len() int { return len(c.images) }

// Current returns the active image while the lightbox is showing.
func (c *Controller) Current() (models.GalleryImage, bool) {
	if c.phase == PhaseClosed || len(c.images) == 0 {
		return models.GalleryImage{}, false
	}
	return c.images[c.index], true
}

// Images returns the image set the controller was opened with.
func (c *Controller) Images() []models.GalleryImage { return c.images }
