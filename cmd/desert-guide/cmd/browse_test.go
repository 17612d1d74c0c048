package cmd

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-desert-guide/internal/localdata"
	"go-desert-guide/internal/preload"
)

func newTestBrowseModel() browseModel {
	return newBrowseModel(localdata.Plants(), preload.NewScheduler(nil), nil)
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func update(t *testing.T, m browseModel, msg tea.Msg) browseModel {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(browseModel)
	require.True(t, ok)
	return out
}

func TestDetailLeftwardSwipeOpensNextPlant(t *testing.T) {
	m := newTestBrowseModel().openDetail(1)
	startSlug := m.plants[m.current].Slug

	m = update(t, m, press(300, 20))
	m = update(t, m, release(200, 25))

	assert.Equal(t, modeDetail, m.mode)
	assert.Equal(t, m.order[2], m.plants[m.current].Slug)
	assert.NotEqual(t, startSlug, m.plants[m.current].Slug)
}

func TestDetailRightwardSwipeOpensPrevPlant(t *testing.T) {
	m := newTestBrowseModel().openDetail(1)

	m = update(t, m, press(100, 20))
	m = update(t, m, release(220, 18))

	assert.Equal(t, m.order[0], m.plants[m.current].Slug)
}

func TestDetailSwipeAtBoundaryIsNoOp(t *testing.T) {
	// First plant has no previous neighbor.
	m := newTestBrowseModel().openDetail(0)

	m = update(t, m, press(100, 20))
	m = update(t, m, release(220, 18))

	assert.Equal(t, m.order[0], m.plants[m.current].Slug)
}

func TestGalleryDragAdvancesImage(t *testing.T) {
	m := newTestBrowseModel().openDetail(0).openGallery(0)
	require.Equal(t, modeGallery, m.mode)
	require.Equal(t, 0, m.gal.Index())

	m = update(t, m, press(200, 10))
	m = update(t, m, motion(120, 12))
	m = update(t, m, release(120, 12))

	assert.Equal(t, 1, m.gal.Index())
}

func TestGalleryShortDragSettles(t *testing.T) {
	m := newTestBrowseModel().openDetail(0).openGallery(0)

	m = update(t, m, press(200, 10))
	m = update(t, m, motion(180, 12))
	m = update(t, m, release(180, 12))

	assert.Equal(t, 0, m.gal.Index())
	assert.False(t, m.bounced)
}

func TestGalleryRightwardDragAtFirstImageBounces(t *testing.T) {
	m := newTestBrowseModel().openDetail(0).openGallery(0)

	m = update(t, m, press(100, 10))
	m = update(t, m, motion(220, 12))
	m = update(t, m, release(220, 12))

	assert.Equal(t, 0, m.gal.Index())
	assert.True(t, m.bounced)
}

func TestGalleryVerticalDragIsNotASwipe(t *testing.T) {
	m := newTestBrowseModel().openDetail(0).openGallery(0)

	m = update(t, m, press(200, 10))
	m = update(t, m, motion(130, 120))
	m = update(t, m, release(130, 120))

	assert.Equal(t, 0, m.gal.Index())
}
