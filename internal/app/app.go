package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"qrcheckin.klederson.com/internal/camera"
	"qrcheckin.klederson.com/internal/checkin"
	"qrcheckin.klederson.com/internal/config"
	"qrcheckin.klederson.com/internal/i18n"
	"qrcheckin.klederson.com/internal/nav"
	"qrcheckin.klederson.com/internal/qr"
	"qrcheckin.klederson.com/internal/session"
	"qrcheckin.klederson.com/internal/ui"
	"qrcheckin.klederson.com/internal/viewfinder"
)

// Remote is the webhook surface the screens call.
type Remote interface {
	session.Verifier
	Lookup(ctx context.Context, id, signature string) checkin.Result
	Confirm(ctx context.Context, id, eventID, signature string) checkin.Result
	SendNoShowList(ctx context.Context, signature string) checkin.Result
	SendSummary(ctx context.Context, signature string) checkin.Result
}

// Deps are the collaborators built by main.go.
type Deps struct {
	Config      config.Config
	Camera      camera.Source
	Decoder     qr.Decoder
	Remote      Remote
	Credentials session.CredentialStore
	Settings    session.SettingsStore
	Scheduler   session.Scheduler
	Clock       session.Clock
	Log         *slog.Logger
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	machine  *session.Machine
	history  *Ring[ui.HistoryEntry]
	scanline *viewfinder.Scanline
}

// Model is the root Bubble Tea model for the kiosk.
type Model struct {
	width  int
	height int

	route nav.Route
	deps  Deps
	p     *message.Printer

	shared *shared

	scanner scannerScreen
	confirm confirmScreen
	direct  directScreen
	admin   adminScreen
}

// New creates the model on the scanner screen.
func New(deps Deps) Model {
	if deps.Scheduler == nil {
		deps.Scheduler = session.TeaScheduler{}
	}
	if deps.Clock == nil {
		deps.Clock = session.SystemClock{}
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	m := Model{
		route: nav.Scanner,
		deps:  deps,
		p:     i18n.Printer(deps.Config.Locale),
		shared: &shared{
			history:  NewRing[ui.HistoryEntry](config.HistoryLength),
			scanline: viewfinder.NewScanline(),
		},
	}
	m.shared.machine = m.newMachine()
	m.scanner = newScannerScreen(m.shared.machine, m.p)
	return m
}

func (m Model) newMachine() *session.Machine {
	sh, p, log := m.shared, m.p, m.deps.Log
	return session.New(context.Background(), session.Deps{
		Camera:      m.deps.Camera,
		Decoder:     m.deps.Decoder,
		Verifier:    m.deps.Remote,
		Credentials: m.deps.Credentials,
		Settings:    m.deps.Settings,
		Scheduler:   m.deps.Scheduler,
		Clock:       m.deps.Clock,
		Log:         log,
		Observer: func(tr session.Transition) {
			if e, ok := historyEntry(p, sh.machine, tr); ok {
				sh.history.Push(e)
				log.Info("scan outcome", "to", tr.To, "code", tr.Code, "id", tr.ID)
			}
		},
	}, session.Options{
		EventID:        m.deps.Config.EventID,
		RedirectDelay:  m.deps.Config.RedirectDelay,
		RequestTimeout: m.deps.Config.RequestTimeout,
	})
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.shared.scanline.Update(m.deps.Clock.Now())
		return m, m.tickCmd()

	case nav.NavigateMsg:
		return m.navigate(msg.Path)

	case backMsg:
		if (m.route == nav.Confirm && msg.seq == m.confirm.seq) ||
			(m.route == nav.DirectInput && msg.seq == m.direct.seq) {
			return m.navigate(string(nav.Scanner))
		}
		return m, nil
	}

	switch m.route {
	case nav.Confirm:
		return m.updateConfirm(msg)
	case nav.DirectInput:
		return m.updateDirect(msg)
	case nav.AdminActions:
		return m.updateAdmin(msg)
	}
	return m, m.shared.machine.Update(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "f1":
		return m.navigate(string(nav.Scanner))
	case "f2":
		return m.navigate(string(nav.DirectInput))
	case "f3":
		return m.navigate(string(nav.AdminActions))
	}

	switch m.route {
	case nav.Confirm:
		return m.confirmKey(msg)
	case nav.DirectInput:
		return m.directKey(msg)
	case nav.AdminActions:
		return m.adminKey(msg)
	}
	return m.scannerKey(msg)
}

// navigate switches screens. Leaving the scanner closes the session;
// coming back builds a fresh one at Idle.
func (m Model) navigate(path string) (tea.Model, tea.Cmd) {
	route, values, err := nav.Parse(path)
	if err == nil && !knownRoute(route) {
		err = fmt.Errorf("unknown route %q", route)
	}
	if err != nil {
		m.deps.Log.Warn("bad navigation", "path", path, "error", err)
		return m, nil
	}
	if route == m.route && route != nav.Confirm {
		return m, nil
	}
	m.deps.Log.Info("navigate", "from", m.route, "to", route)

	if m.route == nav.Scanner && route != nav.Scanner {
		m.shared.machine.Close()
	}
	m.route = route

	switch route {
	case nav.Scanner:
		m.shared.machine = m.newMachine()
		m.scanner = newScannerScreen(m.shared.machine, m.p)
		return m, nil
	case nav.Confirm:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.open(m, values)
		return m, cmd
	case nav.DirectInput:
		m.direct = newDirectScreen(m.direct.seq+1, m.p)
		return m, nil
	case nav.AdminActions:
		m.admin = adminScreen{seq: m.admin.seq + 1}
		return m, nil
	}
	return m, nil
}

func knownRoute(r nav.Route) bool {
	switch r {
	case nav.Scanner, nav.Confirm, nav.DirectInput, nav.AdminActions:
		return true
	}
	return false
}

// Close releases the camera. It is safe to call more than once.
func (m Model) Close() {
	m.shared.machine.Close()
}

// Route reports the active screen.
func (m Model) Route() nav.Route { return m.route }

// Machine returns the scan session behind the scanner screen.
func (m Model) Machine() *session.Machine { return m.shared.machine }

func (m Model) credential() string {
	if m.deps.Credentials == nil {
		return ""
	}
	return strings.TrimSpace(m.deps.Credentials.Get(context.Background()))
}

func (m Model) after(d time.Duration, msg tea.Msg) tea.Cmd {
	return m.deps.Scheduler.After(d, msg)
}

func (m Model) tickCmd() tea.Cmd {
	return m.after(time.Second/time.Duration(config.PreviewFPS), TickMsg{})
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing " + config.AppName + "..."
	}

	menuBar := ui.RenderMenuBar(m.width, m.menuItems(), m.deps.Config.EventID, m.deps.Config.Demo, m.p.Sprintf("menu.demo"))
	bodyH := m.height - 2
	if bodyH < 8 {
		bodyH = 8
	}

	switch m.route {
	case nav.Confirm:
		return ui.ComposeScreen(menuBar, m.confirm.view(m, m.width, bodyH), m.statusBar(string(nav.Confirm), ui.KindActive, m.p.Sprintf("help.confirm")))
	case nav.DirectInput:
		return ui.ComposeScreen(menuBar, m.direct.view(m, m.width, bodyH), m.statusBar(string(nav.DirectInput), ui.KindActive, m.p.Sprintf("help.direct")))
	case nav.AdminActions:
		return ui.ComposeScreen(menuBar, m.admin.view(m, m.width, bodyH), m.statusBar(string(nav.AdminActions), ui.KindActive, m.p.Sprintf("help.admin")))
	}
	return m.scannerView(menuBar, bodyH)
}

func (m Model) menuItems() []ui.MenuItem {
	return []ui.MenuItem{
		{Key: "F1", Label: m.p.Sprintf("menu.scanner"), Active: m.route == nav.Scanner || m.route == nav.Confirm},
		{Key: "F2", Label: m.p.Sprintf("menu.direct"), Active: m.route == nav.DirectInput},
		{Key: "F3", Label: m.p.Sprintf("menu.admin"), Active: m.route == nav.AdminActions},
	}
}

func (m Model) statusBar(state string, kind ui.Kind, help string) string {
	cred := "✗"
	if m.credential() != "" {
		cred = "✓"
	}
	info := " DEAuth: " + cred
	return ui.RenderStatusBar(m.width, state, kind, info, help)
}
