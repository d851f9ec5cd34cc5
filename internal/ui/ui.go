package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/services"
	"github.com/desertthunder/jbx/internal/session"
	"github.com/desertthunder/jbx/internal/shared"
	"github.com/desertthunder/jbx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	QueueView ViewState = iota
	SearchView
	ResultsView
	ConfirmClearView
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	svc    services.Service
	admin  *session.AdminState
	syncer *tasks.SyncClient
	gate   *tasks.Gateway
	logger *log.Logger

	width  int
	height int

	snapshot    *models.QueueSnapshot
	notice      *tasks.Notice
	searchInput textinput.Model
	resultsList list.Model
	haveResults bool

	snapshotChan chan models.QueueSnapshot
	noticeChan   chan tasks.Notice

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies. The
// sync client and enqueue gateway are wired internally so snapshots and
// notices flow back into the Elm loop through channels.
func NewModel(ctx context.Context, svc services.Service, admin *session.AdminState, participantID func() string, config *shared.Config, logger *log.Logger) *Model {
	input := textinput.New()
	input.Placeholder = "Search for a track..."
	input.CharLimit = 120

	m := &Model{
		ctx:          ctx,
		view:         QueueView,
		svc:          svc,
		admin:        admin,
		logger:       logger,
		searchInput:  input,
		snapshotChan: make(chan models.QueueSnapshot, 8),
		noticeChan:   make(chan tasks.Notice, 8),
		help:         help.New(),
		keys:         newKeyMap(),
	}

	m.syncer = tasks.NewSyncClient(tasks.SyncClientOpts{
		Service:  svc,
		Interval: config.PollInterval(),
		Logger:   logger,
		OnSnapshot: func(s models.QueueSnapshot) {
			m.snapshotChan <- s
		},
		OnError: func(error) {
			m.noticeChan <- tasks.Notice{Kind: tasks.NoticeError, Message: "Queue refresh failed"}
		},
	})
	m.gate = tasks.NewGateway(tasks.GatewayOpts{
		Service:   svc,
		Logger:    logger,
		Debounce:  config.Debounce(),
		RateFloor: config.RateFloor(),
		Notify: func(n tasks.Notice) {
			m.noticeChan <- n
		},
		Refresh: func() {
			go m.syncer.Refresh(ctx)
		},
		ParticipantID: participantID,
		IsAdmin:       admin.Active,
	})

	return m
}

// Init starts the background poll loop and begins listening for
// snapshots and notices.
func (m *Model) Init() tea.Cmd {
	go m.syncer.Run(m.ctx)
	return tea.Batch(m.waitForSnapshot(), m.waitForNotice())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.haveResults {
			m.resultsList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case QueueView:
			return m.handleQueueKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case ConfirmClearView:
			return m.handleConfirmClearKeys(msg)
		}

	case snapshotMsg:
		snapshot := models.QueueSnapshot(msg)
		m.snapshot = &snapshot
		return m, m.waitForSnapshot()

	case noticeMsg:
		notice := tasks.Notice(msg)
		m.notice = &notice
		return m, m.waitForNotice()

	case resultsMsg:
		if msg.err != nil {
			m.notice = &tasks.Notice{Kind: tasks.NoticeError, Message: "Search failed"}
			m.view = QueueView
			return m, nil
		}
		items := make([]list.Item, len(msg.tracks))
		for i, track := range msg.tracks {
			items[i] = trackItem{track: track}
		}
		m.resultsList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.resultsList.Title = fmt.Sprintf("Results for '%s'", msg.query)
		m.resultsList.SetSize(m.width-4, m.height-10)
		m.haveResults = true
		m.view = ResultsView
		return m, nil

	case adminCheckedMsg:
		if msg.err == nil && msg.activated {
			m.notice = &tasks.Notice{Kind: tasks.NoticeSuccess, Message: "Admin mode activated"}
			m.view = QueueView
			return m, nil
		}
		// Not the keyword (or check failed): treat the input as a search.
		return m, m.runSearch(m.searchInput.Value())
	}

	if m.view == ResultsView && m.haveResults {
		var cmd tea.Cmd
		m.resultsList, cmd = m.resultsList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case QueueView:
		return m.renderQueue()
	case SearchView:
		return m.renderSearch()
	case ResultsView:
		return m.renderResults()
	case ConfirmClearView:
		return m.renderConfirmClear()
	default:
		return ""
	}
}

func (m *Model) handleQueueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.view = SearchView
		return m, textinput.Blink
	case key.Matches(msg, m.keys.skip):
		if m.admin.Active() {
			return m, m.runAdminAction(services.AdminSkipTrack)
		}
	case key.Matches(msg, m.keys.clear):
		if m.admin.Active() {
			m.view = ConfirmClearView
			return m, nil
		}
	}

	if msg.String() == "d" && m.admin.Active() {
		return m, m.runDeactivate()
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searchInput.Blur()
		m.view = QueueView
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searchInput.Blur()
		// The query may be the admin keyword; the server decides.
		return m, m.checkAdminKeyword(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = QueueView
		return m, nil
	case key.Matches(msg, m.keys.enter), key.Matches(msg, m.keys.add):
		if item, ok := m.resultsList.SelectedItem().(trackItem); ok {
			m.gate.Add(item.track)
			m.notice = &tasks.Notice{Kind: tasks.NoticeInfo, Message: fmt.Sprintf("Adding %s...", item.track.Name)}
		}
		return m, nil
	case key.Matches(msg, m.keys.playNow):
		if m.admin.Active() {
			if item, ok := m.resultsList.SelectedItem().(trackItem); ok {
				return m, m.runPlay(item.track, true)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.playNext):
		if m.admin.Active() {
			if item, ok := m.resultsList.SelectedItem().(trackItem); ok {
				return m, m.runPlay(item.track, false)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultsList, cmd = m.resultsList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmClearKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.view = QueueView
		return m, m.runAdminAction(services.AdminClearQueue)
	case "n", "esc", "q":
		m.view = QueueView
		return m, nil
	}
	return m, nil
}

func (m *Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-m.snapshotChan)
	}
}

func (m *Model) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-m.noticeChan)
	}
}

func (m *Model) checkAdminKeyword(query string) tea.Cmd {
	return func() tea.Msg {
		activated, err := m.admin.CheckKeyword(m.ctx, query)
		return adminCheckedMsg{activated: activated, err: err}
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.svc.Search(m.ctx, query)
		return resultsMsg{query: query, tracks: tracks, err: err}
	}
}

// runPlay and friends push their outcome through noticeChan so the
// single pending waitForNotice listener stays the only notice consumer.
func (m *Model) runPlay(track models.Track, now bool) tea.Cmd {
	return func() tea.Msg {
		var result *services.StatusResult
		var err error
		if now {
			result, err = m.svc.PlayNow(m.ctx, track.URI)
		} else {
			result, err = m.svc.PlayNext(m.ctx, track.URI)
		}
		switch {
		case err != nil:
			m.noticeChan <- tasks.Notice{Kind: tasks.NoticeError, Message: "Error playing track"}
		case !result.OK():
			m.noticeChan <- tasks.Notice{Kind: tasks.NoticeError, Message: result.Message}
		default:
			go m.syncer.Refresh(m.ctx)
			m.noticeChan <- tasks.Notice{Kind: tasks.NoticeSuccess, Message: fmt.Sprintf("Playing %s", track.Name)}
		}
		return nil
	}
}

func (m *Model) runAdminAction(action services.AdminActionKind) tea.Cmd {
	return func() tea.Msg {
		result, err := m.svc.AdminAction(m.ctx, action)
		switch {
		case err != nil:
			m.noticeChan <- tasks.Notice{Kind: tasks.NoticeError, Message: fmt.Sprintf("Error performing %s", action)}
		case !result.OK():
			m.noticeChan <- tasks.Notice{Kind: tasks.NoticeError, Message: result.Message}
		default:
			go m.syncer.Refresh(m.ctx)
			m.noticeChan <- tasks.Notice{Kind: tasks.NoticeSuccess, Message: result.Message}
		}
		return nil
	}
}

func (m *Model) runDeactivate() tea.Cmd {
	return func() tea.Msg {
		m.admin.Deactivate(m.ctx)
		m.noticeChan <- tasks.Notice{Kind: tasks.NoticeInfo, Message: "Admin mode deactivated"}
		return nil
	}
}

func (m *Model) renderQueue() string {
	title := styles.title.Render("Jukebox Queue")
	if m.admin.Active() {
		title = styles.title.Render("Jukebox Queue") + " " + styles.warn.Render("[admin]")
	}

	var body strings.Builder
	if m.snapshot == nil {
		body.WriteString("Loading queue...\n")
	} else {
		body.WriteString(m.renderSnapshot())
	}

	helpKeys := []key.Binding{m.keys.search, m.keys.quit}
	if m.admin.Active() {
		helpKeys = []key.Binding{m.keys.search, m.keys.skip, m.keys.clear, m.keys.quit}
	}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n%s", title, body.String(), m.renderNotice(), helpView)
}

func (m *Model) renderSnapshot() string {
	var b strings.Builder

	b.WriteString(styles.ok.Render("Now Playing"))
	b.WriteString("\n")
	if m.snapshot.CurrentTrack != nil {
		b.WriteString(fmt.Sprintf("  %s by %s\n", m.snapshot.CurrentTrack.Name, m.snapshot.CurrentTrack.Artists))
	} else {
		b.WriteString("  No track playing\n")
	}

	if len(m.snapshot.UserQueue) > 0 {
		b.WriteString("\nIn Queue\n")
		for i, track := range m.snapshot.UserQueue {
			b.WriteString(fmt.Sprintf("  %d. %s by %s\n", i+1, track.Name, track.Artists))
		}
	}

	if len(m.snapshot.RadioQueue) > 0 {
		b.WriteString("\nUp Next\n")
		preview := m.snapshot.RadioQueue
		if len(preview) > 5 {
			preview = preview[:5]
		}
		for _, track := range preview {
			b.WriteString(fmt.Sprintf("  %s by %s\n", track.Name, track.Artists))
		}
		if extra := len(m.snapshot.RadioQueue) - 5; extra > 0 {
			b.WriteString(fmt.Sprintf("  + %d more tracks\n", extra))
		}
	}

	if len(m.snapshot.UserQueue) == 0 && len(m.snapshot.RadioQueue) == 0 {
		b.WriteString("\nNo tracks in queue\n")
	}

	if m.snapshot.ParticipantCount > 0 {
		b.WriteString(fmt.Sprintf("\nParticipants: %d\n", m.snapshot.ParticipantCount))
	}

	return b.String()
}

func (m *Model) renderNotice() string {
	if m.notice == nil {
		return ""
	}
	switch m.notice.Kind {
	case tasks.NoticeSuccess:
		return "\n" + styles.ok.Render(m.notice.Message) + "\n"
	case tasks.NoticeError:
		return "\n" + styles.err.Render(m.notice.Message) + "\n"
	default:
		return "\n" + styles.warn.Render(m.notice.Message) + "\n"
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.searchInput.View(), helpView)
}

func (m *Model) renderResults() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	if m.admin.Active() {
		helpKeys = []key.Binding{m.keys.enter, m.keys.playNow, m.keys.playNext, m.keys.back, m.keys.quit}
	}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.resultsList.View(), m.renderNotice(), helpView)
}

func (m *Model) renderConfirmClear() string {
	title := styles.title.Render("Clear the shared queue?")
	info := "\nEvery participant's queued tracks will be removed.\n"
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}
