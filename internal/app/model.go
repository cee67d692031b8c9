// Package app is the terminal UI for browsing recorded sessions.
package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"retrace/internal/config"
	"retrace/internal/logging"
	"retrace/internal/timeline"
	"retrace/internal/transcript"
	"retrace/internal/types"
	"retrace/internal/usage"
)

const (
	minContentHeight = 6
	chromeLines      = 4
	defaultUsageDays = 30
)

type viewMode int

const (
	viewHome viewMode = iota
	viewSession
	viewUsage
)

type sessionTab int

const (
	tabTranscript sessionTab = iota
	tabFiles
)

type Model struct {
	api   StoreAPI
	log   logging.Logger
	prefs config.Preferences
	cache *usage.SummaryCache

	mode   viewMode
	width  int
	height int
	status string

	loading bool
	loader  spinner.Model

	// home
	listSeq         int
	projectSeq      int
	searchSeq       int
	sessions        []types.SessionSummary
	groups          []timeline.Group
	projects        []types.Project
	activeProject   string
	selection       int
	collapsedGroups map[string]bool

	searching     bool
	searchInput   textinput.Model
	searchQuery   string
	searchResults []types.SearchResult

	// session
	sessionID string
	detail    *types.SessionDetail
	views     []transcript.MessageView
	tstate    *transcript.State
	tab       sessionTab
	msgCursor int
	viewport  viewport.Model

	// usage
	usageSeq     int
	usageDays    int
	usageSummary *types.UsageSummary
	usageDetail  *types.UsageDetail
}

func NewModel(api StoreAPI, prefs config.Preferences, log logging.Logger) Model {
	if log == nil {
		log = logging.Nop()
	}
	loader := spinner.New()
	loader.Spinner = spinner.Line

	search := textinput.New()
	search.Placeholder = "search sessions"
	search.CharLimit = 256

	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(minContentHeight))

	return Model{
		api:             api,
		log:             log,
		prefs:           prefs,
		cache:           usage.NewSummaryCache(nil),
		loader:          loader,
		searchInput:     search,
		viewport:        vp,
		tstate:          transcript.NewState(nil),
		collapsedGroups: map[string]bool{},
		usageDays:       defaultUsageDays,
	}
}

func Run(api StoreAPI, prefs config.Preferences, log logging.Logger) error {
	model := NewModel(api, prefs, log)
	p := tea.NewProgram(&model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshHome(), m.loader.Tick)
}

// refreshHome reissues the list and project fetches under fresh sequence
// numbers; responses from earlier fetches are discarded on arrival.
func (m *Model) refreshHome() tea.Cmd {
	m.listSeq++
	m.projectSeq++
	m.loading = true
	return tea.Batch(
		fetchSessionsCmd(m.api, m.listSeq, m.activeProject, m.prefs.Source),
		fetchProjectsCmd(m.api, m.projectSeq, m.prefs.Source),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetWidth(max(20, msg.Width))
		m.viewport.SetHeight(max(minContentHeight, msg.Height-chromeLines))
		m.searchInput.SetWidth(max(20, msg.Width-4))
		if m.mode == viewSession {
			m.syncSessionViewport()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		return m, cmd

	case sessionsMsg:
		if msg.seq != m.listSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = "sessions error: " + msg.err.Error()
			m.log.Error("list sessions failed", logging.F("err", msg.err))
			return m, nil
		}
		m.sessions = msg.sessions
		m.groups = timeline.GroupSessions(time.Now(), msg.sessions)
		m.clampSelection()
		m.status = ""
		return m, nil

	case projectsMsg:
		if msg.seq != m.projectSeq {
			return m, nil
		}
		if msg.err != nil {
			m.status = "projects error: " + msg.err.Error()
			return m, nil
		}
		m.projects = msg.projects
		m.clampSelection()
		return m, nil

	case searchMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = "search error: " + msg.err.Error()
			return m, nil
		}
		m.searchResults = msg.results
		m.searchQuery = msg.query
		m.selection = 0
		m.status = ""
		return m, nil

	case sessionDetailMsg:
		if msg.id != m.sessionID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = "session error: " + msg.err.Error()
			m.log.Error("load session failed", logging.F("session", msg.id), logging.F("err", msg.err))
			return m, nil
		}
		m.detail = msg.detail
		m.views = transcript.Build(msg.detail.Messages)
		m.tstate.Reset()
		m.msgCursor = 0
		m.tab = tabTranscript
		m.status = ""
		m.syncSessionViewport()
		m.viewport.GotoTop()
		return m, nil

	case sessionContextMsg:
		if msg.id != m.sessionID {
			return m, nil
		}
		if msg.err != nil {
			m.status = "context error: " + msg.err.Error()
			return m, nil
		}
		if _, err := copyTextToClipboard(msg.context); err != nil {
			m.status = "copy failed: " + err.Error()
			return m, nil
		}
		m.tstate.MarkCopied(contextCopyKey(msg.id))
		m.status = ""
		m.syncSessionViewport()
		return m, copyExpiryCmd(contextCopyKey(msg.id), transcript.CopiedTTL)

	case prefsSavedMsg:
		if msg.err != nil {
			m.status = "preferences error: " + msg.err.Error()
		}
		return m, nil

	case copyExpiredMsg:
		// State expires on its own clock; this tick just forces a redraw.
		if m.mode == viewSession {
			m.syncSessionViewport()
		}
		return m, nil

	case usageSummaryMsg:
		if msg.seq != m.usageSeq || msg.source != m.prefs.Source {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = "usage error: " + msg.err.Error()
			return m, nil
		}
		m.usageSummary = msg.summary
		m.status = ""
		return m, nil

	case usageDetailMsg:
		if msg.seq != m.usageSeq || msg.days != m.usageDays {
			return m, nil
		}
		if msg.err != nil {
			m.status = "usage detail error: " + msg.err.Error()
			return m, nil
		}
		m.usageDetail = msg.detail
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		if m.mode == viewHome {
			return m, tea.Quit
		}
		m.exitToHome()
		return m, nil
	case "esc":
		switch m.mode {
		case viewHome:
			if len(m.searchResults) > 0 || m.searchQuery != "" {
				m.searchResults = nil
				m.searchQuery = ""
				m.selection = 0
				return m, nil
			}
			if m.activeProject != "" {
				m.activeProject = ""
				m.selection = 0
				return m, m.refreshHome()
			}
		default:
			m.exitToHome()
		}
		return m, nil
	}

	switch m.mode {
	case viewHome:
		return m.handleHomeKey(key)
	case viewSession:
		return m.handleSessionKey(key, msg)
	case viewUsage:
		return m.handleUsageKey(key)
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		m.searching = false
		m.searchInput.Blur()
		if query == "" {
			return m, nil
		}
		m.searchSeq++
		m.loading = true
		return m, searchCmd(m.api, m.searchSeq, query, m.prefs.Source)
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleHomeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "/":
		m.searching = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()
	case "tab", "v":
		if m.prefs.ViewMode == config.ViewModeProject {
			m.prefs.ViewMode = config.ViewModeTimeline
		} else {
			m.prefs.ViewMode = config.ViewModeProject
		}
		m.selection = 0
		return m, m.savePrefs()
	case "s":
		m.prefs.Source = nextSource(m.prefs.Source)
		m.searchResults = nil
		m.searchQuery = ""
		m.activeProject = ""
		m.selection = 0
		return m, tea.Batch(m.savePrefs(), m.refreshHome())
	case "u":
		m.mode = viewUsage
		return m, m.refreshUsage()
	case "r":
		return m, m.refreshHome()
	case "up", "k":
		m.moveSelection(-1)
		return m, nil
	case "down", "j":
		m.moveSelection(1)
		return m, nil
	case "[":
		m.jumpGroup(-1)
		return m, nil
	case "]":
		m.jumpGroup(1)
		return m, nil
	case "enter":
		return m.activateSelection()
	}
	return m, nil
}

func (m *Model) handleSessionKey(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "tab":
		if m.tab == tabTranscript {
			m.tab = tabFiles
		} else {
			m.tab = tabTranscript
		}
		m.syncSessionViewport()
		m.viewport.GotoTop()
		return m, nil
	case "n":
		m.moveMessageCursor(1)
		return m, nil
	case "p":
		m.moveMessageCursor(-1)
		return m, nil
	case "enter", "e":
		m.toggleSelectedToolCalls()
		return m, nil
	case "c":
		return m, m.copySelectedMessage()
	case "y":
		if m.sessionID == "" {
			return m, nil
		}
		return m, fetchSessionContextCmd(m.api, m.sessionID, m.prefs.Source)
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleUsageKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "1":
		return m, m.setUsageDays(7)
	case "2":
		return m, m.setUsageDays(30)
	case "3":
		return m, m.setUsageDays(90)
	case "4":
		return m, m.setUsageDays(365)
	case "s":
		m.prefs.Source = nextSource(m.prefs.Source)
		return m, tea.Batch(m.savePrefs(), m.refreshUsage())
	case "r":
		m.cache.Invalidate(m.prefs.Source)
		return m, m.refreshUsage()
	}
	return m, nil
}

func (m *Model) setUsageDays(days int) tea.Cmd {
	if m.usageDays == days {
		return nil
	}
	m.usageDays = days
	m.usageSeq++
	return fetchUsageDetailCmd(m.api, m.usageSeq, m.usageDays, m.prefs.Source)
}

func (m *Model) refreshUsage() tea.Cmd {
	m.usageSeq++
	m.loading = true
	return tea.Batch(
		fetchUsageSummaryCmd(m.api, m.cache, m.usageSeq, m.prefs.Source),
		fetchUsageDetailCmd(m.api, m.usageSeq, m.usageDays, m.prefs.Source),
	)
}

func (m *Model) exitToHome() {
	m.mode = viewHome
	m.sessionID = ""
	m.detail = nil
	m.views = nil
}

func (m *Model) savePrefs() tea.Cmd {
	prefs := m.prefs
	return savePreferencesCmd(func() error {
		return config.SavePreferences(prefs)
	})
}

func (m *Model) copySelectedMessage() tea.Cmd {
	view, ok := m.selectedMessage()
	if !ok {
		return nil
	}
	if _, err := copyTextToClipboard(view.Message.Content); err != nil {
		m.status = "copy failed: " + err.Error()
		return nil
	}
	m.tstate.MarkCopied(view.Message.ID)
	m.syncSessionViewport()
	return copyExpiryCmd(view.Message.ID, transcript.CopiedTTL)
}

func (m *Model) selectedMessage() (transcript.MessageView, bool) {
	if m.msgCursor < 0 || m.msgCursor >= len(m.views) {
		return transcript.MessageView{}, false
	}
	return m.views[m.msgCursor], true
}

func (m *Model) moveMessageCursor(delta int) {
	if len(m.views) == 0 {
		return
	}
	m.msgCursor += delta
	if m.msgCursor < 0 {
		m.msgCursor = 0
	}
	if m.msgCursor >= len(m.views) {
		m.msgCursor = len(m.views) - 1
	}
	m.syncSessionViewport()
}

func (m *Model) toggleSelectedToolCalls() {
	view, ok := m.selectedMessage()
	if !ok {
		return
	}
	for _, call := range view.ToolCalls {
		m.tstate.Toggle(call.Call.ID)
	}
	m.syncSessionViewport()
}

func (m *Model) openSession(id string) tea.Cmd {
	m.mode = viewSession
	m.sessionID = id
	m.detail = nil
	m.views = nil
	m.loading = true
	return fetchSessionDetailCmd(m.api, id, m.prefs.Source)
}

func (m *Model) syncSessionViewport() {
	if m.mode != viewSession {
		return
	}
	if m.tab == tabFiles {
		m.viewport.SetContent(m.renderFileChanges())
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}

func nextSource(source string) string {
	sources := config.Sources()
	for i, s := range sources {
		if s == source {
			return sources[(i+1)%len(sources)]
		}
	}
	return sources[0]
}

func contextCopyKey(id string) string {
	return "context:" + id
}

func (m *Model) View() string {
	switch m.mode {
	case viewSession:
		return m.viewSessionScreen()
	case viewUsage:
		return m.viewUsageScreen()
	default:
		return m.viewHomeScreen()
	}
}
