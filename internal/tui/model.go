package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/garrettladley/sensorlink/internal/credentials"
	"github.com/garrettladley/sensorlink/internal/sdk"
	"github.com/garrettladley/sensorlink/internal/tui/components/footer"
	"github.com/garrettladley/sensorlink/internal/tui/page/home"
	"github.com/garrettladley/sensorlink/internal/tui/page/splash"
	"github.com/garrettladley/sensorlink/internal/tui/theme"
	"github.com/garrettladley/sensorlink/internal/xslog"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	homePage
)

var keyHints = []string{"tab focus", "enter select", "ctrl+u clear field", "ctrl+g new user id", "esc quit"}

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          home.State
	deps           Deps
}

func New(deps Deps) Model {
	return Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps.withDefaults(),
		state: home.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(m.deps.SplashDuration, func(time.Time) tea.Msg {
			return splash.TickMsg{}
		}),
		home.LoadCredentialsCmd(m.deps.Ctx, m.deps.Store, m.deps.Logger, m.deps.CallTimeout),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	noticeID := m.state.NoticeID()
	cmd := m.update(msg)

	if id := m.state.NoticeID(); id != noticeID {
		cmd = tea.Batch(cmd, home.ExpireNoticeCmd(id, m.deps.NoticeDuration))
	}

	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	// splash timer expired - transition to home
	case splash.TickMsg:
		m.page = homePage

	case home.CredentialsLoadedMsg:
		m.state.CredentialsLoaded(msg.Credentials)
		return home.ConfigureCmd(
			m.deps.Ctx,
			m.deps.Client,
			sdk.Settings{Environment: m.deps.Environment},
			m.deps.CallTimeout,
		)

	case home.ConfiguredMsg:
		if !m.state.Configured(msg.Err) {
			if msg.Err != nil {
				m.deps.Logger.ErrorContext(m.deps.Ctx, "failed to configure sdk",
					xslog.Environment(m.deps.Environment.String()),
					xslog.Error(msg.Err),
				)
			}
			return nil
		}
		return tea.Batch(
			home.CheckAuthCmd(m.deps.Ctx, m.deps.Client, m.deps.CallTimeout),
			home.SensorStatusCmd(m.deps.Ctx, m.deps.Client, m.deps.Sensors, m.deps.CallTimeout),
		)

	case home.AuthStatusMsg:
		m.logFailure("is_authenticated", msg.Err)
		m.state.AuthStatusResolved(msg.Authenticated, msg.Err)

	case home.AuthenticatedMsg:
		m.logFailure(home.ActionAuthenticate.String(), msg.Err)
		m.state.AuthenticateDone(msg.Authenticated, msg.Err)
		if msg.Err == nil {
			m.deps.Logger.InfoContext(m.deps.Ctx, "authenticate completed", xslog.AuthStatus(msg.Authenticated))
		}

	case home.SensorStatusMsg:
		m.logFailure(msg.Action.String(), msg.Err)
		m.state.SensorStatusResolved(msg.Action, msg.Status, msg.Err)
		if msg.Err == nil {
			m.deps.Logger.InfoContext(m.deps.Ctx, "sensor status updated",
				xslog.Action(msg.Action.String()),
				xslog.SensorStatus(msg.Status.String()),
			)
		}

	case home.NoticeExpiredMsg:
		m.state.ExpireNotice(msg.ID)
	}

	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	}

	if m.page != homePage {
		return nil
	}

	switch msg.String() {
	case "tab", "down":
		m.state.FocusNext()
	case "shift+tab", "up":
		m.state.FocusPrev()
	case "ctrl+a":
		return m.trigger(home.ActionAuthenticate)
	case "ctrl+k":
		return m.trigger(home.ActionCheckSensors)
	case "ctrl+e":
		return m.trigger(home.ActionEnableSensors)
	case "ctrl+o":
		return m.trigger(home.ActionOpenSettings)
	case "ctrl+g":
		m.state.Edit(credentials.KeyUserID, uuid.NewString())
	case "enter":
		if action, ok := m.state.FocusedAction(); ok {
			return m.trigger(action)
		}
		m.state.FocusNext()
	case "ctrl+u":
		if key, ok := m.state.FocusedField(); ok {
			m.state.Edit(key, home.Fields(m.state)[m.state.Focus].Clear().Value)
		}
	case "backspace":
		if key, ok := m.state.FocusedField(); ok {
			f := home.Fields(m.state)[m.state.Focus].Backspace()
			m.state.Edit(key, f.Value)
		}
	default:
		key, ok := m.state.FocusedField()
		if text := msg.Key().Text; ok && text != "" {
			f := home.Fields(m.state)[m.state.Focus].Insert(text)
			m.state.Edit(key, f.Value)
		}
	}

	return nil
}

// trigger starts a if the screen accepts it and returns the call to run.
func (m *Model) trigger(a home.Action) tea.Cmd {
	if !m.state.Begin(a) {
		return nil
	}

	m.deps.Logger.DebugContext(m.deps.Ctx, "action triggered", xslog.Action(a.String()))

	switch a {
	case home.ActionAuthenticate:
		return home.AuthenticateCmd(
			m.deps.Ctx,
			m.deps.Client,
			m.deps.Store,
			m.deps.Logger,
			m.state.Credentials,
			m.deps.CallTimeout,
		)
	case home.ActionCheckSensors:
		return home.SensorStatusCmd(m.deps.Ctx, m.deps.Client, m.deps.Sensors, m.deps.CallTimeout)
	case home.ActionEnableSensors:
		return home.EnableSensorsCmd(m.deps.Ctx, m.deps.Client, m.deps.Sensors, m.deps.CallTimeout)
	case home.ActionOpenSettings:
		return home.OpenSettingsCmd(m.deps.Ctx, m.deps.Client, m.deps.CallTimeout)
	}

	return nil
}

func (m *Model) logFailure(action string, err error) {
	if err == nil {
		return
	}
	m.deps.Logger.WarnContext(m.deps.Ctx, "sdk call failed",
		xslog.Action(action),
		xslog.Error(err),
	)
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = splash.View(m.theme, m.viewportWidth, m.viewportHeight)
	case homePage:
		f := footer.New(m.viewportWidth, keyHints...).Render()
		body := home.View(
			m.theme,
			m.state,
			m.deps.Environment,
			m.viewportWidth,
			max(m.viewportHeight-lipgloss.Height(f), 0),
		)
		content = lipgloss.JoinVertical(lipgloss.Left, body, f)
	}

	view.SetContent(content)
	return view
}
