package ui

import (
	"fmt"
	"time"

	"github.com/cadencefm/cadence/internal/catalog"
	"github.com/cadencefm/cadence/internal/formatter"
	"github.com/cadencefm/cadence/internal/search"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	ResultsView
)

// Category indexes the per-category result lists.
type Category int

const (
	TrackCategory Category = iota
	AlbumCategory
	ArtistCategory
	PlaylistCategory
	categoryCount
)

func (c Category) String() string {
	switch c {
	case TrackCategory:
		return "Tracks"
	case AlbumCategory:
		return "Albums"
	case ArtistCategory:
		return "Artists"
	case PlaylistCategory:
		return "Playlists"
	default:
		return "Unknown"
	}
}

// Model represents the TUI application state.
type Model struct {
	registry *search.Registry
	backend  catalog.Backend
	opts     search.Options
	timeout  time.Duration

	view     ViewState
	width    int
	height   int
	page     int
	category Category
	lists    [categoryCount]list.Model
	current  *search.Search
	results  *formatter.Results
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model. The search described by opts is issued
// when the program starts; timeout bounds each page load.
func NewModel(reg *search.Registry, backend catalog.Backend, opts search.Options, timeout time.Duration) *Model {
	return &Model{
		registry: reg,
		backend:  backend,
		opts:     opts,
		timeout:  timeout,
		view:     LoadingView,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by issuing the first search.
func (m *Model) Init() tea.Cmd {
	return m.runSearch()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.view == ResultsView {
			for i := range m.lists {
				m.lists[i].SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LoadingView:
			return m.handleLoadingKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		}

	case Msg:
		res := msg.data.(searchResult)
		switch msg.kind {
		case MsgSearchLoaded:
			if res.err != nil {
				m.err = res.err
				return m, nil
			}
			m.page = 1
			return m.showPage(res.search)

		case MsgMoreLoaded:
			if res.err != nil {
				m.err = res.err
				m.view = ResultsView
				return m, nil
			}
			if m.current != nil {
				m.current.Close()
			}
			m.page++
			return m.showPage(res.search)
		}
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case LoadingView:
		return styles.title.Render(fmt.Sprintf("Searching for %q...", m.opts.Query))
	case ResultsView:
		return m.renderResults()
	default:
		return ""
	}
}

// Close releases the model's search handle. Call after the program exits.
func (m *Model) Close() {
	if m.current != nil {
		m.current.Close()
		m.current = nil
	}
}

func (m *Model) handleLoadingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.category = (m.category + 1) % categoryCount
		return m, nil
	case "m":
		m.view = LoadingView
		return m, m.runMore()
	}

	var cmd tea.Cmd
	m.lists[m.category], cmd = m.lists[m.category].Update(msg)
	return m, cmd
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != ResultsView {
		return m, nil
	}
	var cmd tea.Cmd
	m.lists[m.category], cmd = m.lists[m.category].Update(msg)
	return m, cmd
}

// showPage snapshots a loaded search handle into the per-category lists.
func (m *Model) showPage(s *search.Search) (tea.Model, tea.Cmd) {
	results, err := formatter.Collect(s)
	if err != nil {
		s.Close()
		m.err = err
		return m, nil
	}

	m.current = s
	m.results = results

	trackItems := make([]list.Item, len(results.Tracks))
	for i, t := range results.Tracks {
		trackItems[i] = trackItem{track: t}
	}
	albumItems := make([]list.Item, len(results.Albums))
	for i, a := range results.Albums {
		albumItems[i] = albumItem{album: a}
	}
	artistItems := make([]list.Item, len(results.Artists))
	for i, a := range results.Artists {
		artistItems[i] = artistItem{artist: a}
	}
	playlistItems := make([]list.Item, len(results.Playlists))
	for i, p := range results.Playlists {
		playlistItems[i] = playlistItem{playlist: p}
	}

	totals := [categoryCount]int{results.TrackTotal, results.AlbumTotal, results.ArtistTotal, results.PlaylistTotal}
	for c, items := range [categoryCount][]list.Item{trackItems, albumItems, artistItems, playlistItems} {
		l := list.New(items, list.NewDefaultDelegate(), 0, 0)
		l.Title = fmt.Sprintf("%s (%d of %d)", Category(c), len(items), totals[c])
		l.SetShowHelp(false)
		l.SetSize(m.width-4, m.height-8)
		m.lists[c] = l
	}

	m.view = ResultsView
	return m, nil
}

func (m *Model) runSearch() tea.Cmd {
	return func() tea.Msg {
		s, err := search.New(m.registry, m.backend, m.opts)
		if err != nil {
			return searchLoadedMsg(nil, err)
		}
		if _, err := s.Load(m.timeout); err != nil {
			s.Close()
			return searchLoadedMsg(nil, err)
		}
		return searchLoadedMsg(s, nil)
	}
}

func (m *Model) runMore() tea.Cmd {
	current := m.current
	timeout := m.timeout
	return func() tea.Msg {
		next, err := current.More(search.MoreOptions{})
		if err != nil {
			return moreLoadedMsg(nil, err)
		}
		if _, err := next.Load(timeout); err != nil {
			next.Close()
			return moreLoadedMsg(nil, err)
		}
		return moreLoadedMsg(next, nil)
	}
}

func (m *Model) renderResults() string {
	header := styles.title.Render(fmt.Sprintf("Results for %q", m.results.Query))
	if m.results.DidYouMean != "" {
		header += "\n" + styles.warn.Render(fmt.Sprintf("Did you mean %q?", m.results.DidYouMean))
	}
	header += "\n" + styles.meta.Render(fmt.Sprintf("Page %d • %s mode", m.page, m.results.Kind))

	moreKey := key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "next page"))
	helpKeys := []key.Binding{m.keys.category, moreKey, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s\n\n%s", header, m.lists[m.category].View(), helpView)
}
