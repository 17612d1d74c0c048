package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-desert-guide/internal/catalog"
	"go-desert-guide/internal/fetcher"
	"go-desert-guide/internal/gallery"
	"go-desert-guide/internal/imagecache"
	"go-desert-guide/internal/models"
	"go-desert-guide/internal/navigation"
	"go-desert-guide/internal/preload"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the field guide in the terminal",
	Long: `An interactive terminal browser over the merged catalog: pick a
plant, read its entry, and walk its image gallery. Gallery neighbors are
prefetched into the image cache in the background.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}

	plants := provider.AllPlants(cmd.Context())
	if len(plants) == 0 {
		return fmt.Errorf("catalog is empty, nothing to browse")
	}

	cache, err := imagecache.Open(filepath.Join(globalConfig.CachePath, "images"))
	if err != nil {
		return fmt.Errorf("failed to open image cache: %w", err)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			log.WithError(err).Error("Error closing image cache")
		}
	}()

	preloader := preload.NewScheduler(fetcher.NewFetcher(newHTTPClient(), cache))

	m := newBrowseModel(plants, preloader, cache)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}

	// Let in-flight preloads land in the cache before it closes.
	preloader.Wait()
	return nil
}

type viewMode int

const (
	modeList viewMode = iota
	modeDetail
	modeGallery
)

// transitionDoneMsg ends a gallery slide animation.
type transitionDoneMsg struct{}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
	sciNameStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("108"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	captionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bounceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	zoomStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("217"))
	frameStyle    = lipgloss.NewStyle().Padding(1, 2)
)

// plantItem adapts a PlantRecord to the list widget.
type plantItem struct {
	rec models.PlantRecord
}

func (i plantItem) Title() string { return i.rec.Name }
func (i plantItem) Description() string {
	return fmt.Sprintf("%s · %s", i.rec.ScientificName, i.rec.Category)
}
func (i plantItem) FilterValue() string {
	return i.rec.Name + " " + i.rec.ScientificName
}

// scrollState stands in for the page scroll lock while the lightbox is open.
type scrollState struct {
	locked bool
}

func (s *scrollState) Acquire() { s.locked = true }
func (s *scrollState) Release() { s.locked = false }

type browseModel struct {
	plants []models.PlantRecord
	order  []string

	list      list.Model
	mode      viewMode
	current   int
	pager     *navigation.Pager
	gal       *gallery.Controller
	scroll    *scrollState
	preloader *preload.Scheduler
	cache     *imagecache.Store
	drag      gallery.DragTracker
	swipe     *navigation.SwipeDetector
	bounced   bool

	width, height int
}

func newBrowseModel(plants []models.PlantRecord, preloader *preload.Scheduler, cache *imagecache.Store) browseModel {
	items := make([]list.Item, len(plants))
	order := make([]string, len(plants))
	for i, rec := range plants {
		items[i] = plantItem{rec: rec}
		order[i] = rec.Slug
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Desert Plant Field Guide"
	l.SetShowStatusBar(false)

	return browseModel{
		plants:    plants,
		order:     order,
		list:      l,
		mode:      modeList,
		scroll:    &scrollState{},
		preloader: preloader,
		cache:     cache,
		swipe:     navigation.NewSwipeDetector(),
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case transitionDoneMsg:
		if m.gal != nil {
			m.gal.EndTransition()
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeGallery:
			return m.updateGallery(msg)
		case modeDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}

	case tea.MouseMsg:
		switch m.mode {
		case modeGallery:
			return m.mouseGallery(msg)
		case modeDetail:
			return m.mouseDetail(msg)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(plantItem); ok {
				for i, rec := range m.plants {
					if rec.Slug == item.rec.Slug {
						return m.openDetail(i), nil
					}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) openDetail(i int) browseModel {
	m.current = i
	m.mode = modeDetail
	m.pager = navigation.NewPager(m.order, m.plants[i].Slug)
	return m
}

func (m browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = modeList
		return m, nil
	case "enter", "g":
		return m.openGallery(0), nil
	case "right", "l":
		if slug, ok := m.pager.Target(navigation.DirectionLeft); ok {
			return m.openDetail(m.indexOf(slug)), nil
		}
		return m, nil
	case "left", "h":
		if slug, ok := m.pager.Target(navigation.DirectionRight); ok {
			return m.openDetail(m.indexOf(slug)), nil
		}
		return m, nil
	}
	return m, nil
}

func (m browseModel) indexOf(slug string) int {
	for i, rec := range m.plants {
		if rec.Slug == slug {
			return i
		}
	}
	return m.current
}

func (m browseModel) openGallery(start int) browseModel {
	rec := m.plants[m.current]
	images := catalog.ImageSet(rec)

	ctrl := gallery.NewController(images, m.scroll)
	preloader := m.preloader
	ctrl.OnIndexChange = func(idx int) {
		preloader.ScheduleAround(context.Background(), ctrl.Images(), idx)
	}

	thumbnail := models.GalleryImage{URL: rec.MainImage, Alt: rec.Name}
	if !ctrl.Activate(start, thumbnail) {
		// Nothing to show; stay on the detail page.
		return m
	}
	m.gal = ctrl
	m.mode = modeGallery
	m.bounced = false
	return m
}

func (m browseModel) updateGallery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.bounced = false
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.gal.Close()
		m.mode = modeDetail
		return m, nil
	case "right", "l":
		return m.applyMove(m.gal.Next())
	case "left", "h":
		return m.applyMove(m.gal.Prev())
	case "z", " ":
		m.gal.ToggleZoom()
		return m, nil
	}
	return m, nil
}

// mouseGallery feeds a mouse drag through the drag tracker; a resolved
// swipe maps to the matching gallery move.
func (m browseModel) mouseGallery(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.drag.Start(float64(msg.X), float64(msg.Y))
	case msg.Action == tea.MouseActionMotion:
		m.drag.Move(float64(msg.X), float64(msg.Y))
	case msg.Action == tea.MouseActionRelease:
		m.bounced = false
		switch m.drag.End() {
		case gallery.SwipeLeft:
			return m.applyMove(m.gal.Next())
		case gallery.SwipeRight:
			return m.applyMove(m.gal.Prev())
		}
	}
	return m, nil
}

// mouseDetail interprets a horizontal drag on the detail page as page
// navigation to the neighbor plant.
func (m browseModel) mouseDetail(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.swipe.Begin(float64(msg.X), float64(msg.Y), time.Now())
	case msg.Action == tea.MouseActionRelease:
		dir := m.swipe.End(float64(msg.X), float64(msg.Y), time.Now())
		if slug, ok := m.pager.Target(dir); ok {
			return m.openDetail(m.indexOf(slug)), nil
		}
	}
	return m, nil
}

func (m browseModel) applyMove(res gallery.Result) (tea.Model, tea.Cmd) {
	if res.Bounced {
		m.bounced = true
		return m, nil
	}
	if !res.Moved {
		return m, nil
	}
	return m, tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return transitionDoneMsg{}
	})
}

func (m browseModel) View() string {
	switch m.mode {
	case modeGallery:
		return m.viewGallery()
	case modeDetail:
		return m.viewDetail()
	default:
		return m.list.View()
	}
}

func (m browseModel) viewDetail() string {
	rec := m.plants[m.current]
	var b strings.Builder

	b.WriteString(titleStyle.Render(rec.Name) + "\n")
	b.WriteString(sciNameStyle.Render(rec.ScientificName) + "  ")
	b.WriteString(categoryStyle.Render("["+string(rec.Category)+"]") + "\n\n")
	b.WriteString(rec.Description + "\n")

	if len(rec.QuickFacts) > 0 {
		b.WriteString("\n" + titleStyle.Render("Quick Facts") + "\n")
		for _, f := range rec.QuickFacts {
			b.WriteString(fmt.Sprintf("  %s: %s\n", f.Label, f.Value))
		}
	}
	for _, section := range []struct {
		title string
		body  models.StringOrStringSlice
	}{
		{"Quick ID", rec.QuickID},
		{"Seasonal Notes", rec.SeasonalNotes},
		{"Uses", rec.Uses},
		{"Wildlife Value", rec.WildlifeValue},
		{"Interesting Facts", rec.Facts},
		{"Ethics", rec.Ethics},
	} {
		if section.body.Empty() {
			continue
		}
		b.WriteString("\n" + titleStyle.Render(section.title) + "\n")
		for _, line := range section.body {
			b.WriteString("  " + line + "\n")
		}
	}

	imageCount := len(catalog.ImageSet(rec))
	b.WriteString(captionStyle.Render(fmt.Sprintf("\n%d images", imageCount)) + "\n")

	var nav []string
	if m.pager.PrevSlug() != "" {
		nav = append(nav, "← "+m.pager.PrevSlug())
	}
	if m.pager.NextSlug() != "" {
		nav = append(nav, m.pager.NextSlug()+" →")
	}
	if len(nav) > 0 {
		b.WriteString(captionStyle.Render(strings.Join(nav, "   ")) + "\n")
	}

	b.WriteString(helpStyle.Render("\ng/enter gallery · ←/→ neighbors · esc back · q quit"))
	return frameStyle.Render(b.String())
}

func (m browseModel) viewGallery() string {
	img, ok := m.gal.Current()
	if !ok {
		return frameStyle.Render("no image")
	}

	var b strings.Builder
	rec := m.plants[m.current]

	b.WriteString(titleStyle.Render(rec.Name) + "  ")
	b.WriteString(captionStyle.Render(fmt.Sprintf("image %d/%d", m.gal.Index()+1, m.gal.Len())) + "\n\n")

	b.WriteString(img.URL + "\n")
	if img.Alt != "" {
		b.WriteString(captionStyle.Render(img.Alt) + "\n")
	}
	if img.Title != "" {
		b.WriteString(img.Title + "\n")
	}
	if img.Description != "" {
		b.WriteString(img.Description + "\n")
	}

	if m.cache != nil && m.cache.Has(img.URL) {
		b.WriteString(captionStyle.Render("(cached)") + "\n")
	}
	if m.gal.Zoomed() {
		b.WriteString(zoomStyle.Render("\n[zoomed]") + "\n")
	}
	if m.bounced {
		b.WriteString(bounceStyle.Render("\n· end of gallery ·") + "\n")
	}

	b.WriteString(helpStyle.Render("\n←/→ navigate · z zoom · esc close"))
	return frameStyle.Render(b.String())
}
