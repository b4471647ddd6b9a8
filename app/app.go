package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kastheco/webmon/config"
	"github.com/kastheco/webmon/config/auditlog"
	"github.com/kastheco/webmon/internal/scheduler"
	"github.com/kastheco/webmon/internal/webmnt"
	"github.com/kastheco/webmon/keys"
	"github.com/kastheco/webmon/log"
	"github.com/kastheco/webmon/session"
	"github.com/kastheco/webmon/ui"
	"github.com/kastheco/webmon/ui/overlay"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Remote is the part of the webmnt client the dashboard talks to.
type Remote interface {
	Authenticate(ctx context.Context, creds webmnt.Credentials) (string, error)
	ListSessions(ctx context.Context, token string, page uint, pageSize int) (webmnt.Page, error)
	DeleteSessions(ctx context.Context, token string, ids []string) error
	SendMessage(ctx context.Context, token string, ids []string, text string) (webmnt.MessageResult, error)
}

// tickSource delivers the coalesced refresh and renewal ticks. Done is closed
// when the source stops.
type tickSource interface {
	Wake() <-chan struct{}
	Done() <-chan struct{}
	Drain() scheduler.Pending
}

// Deps are the collaborators Run wires into the dashboard.
type Deps struct {
	Remote Remote
	Audit  auditlog.Logger
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// Run authenticates, fetches the first page and then runs the dashboard until
// the user quits. Failures before the first page are returned and nothing is
// drawn.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	token, page, err := bootstrap(ctx, cfg, deps.Remote, deps.Audit)
	if err != nil {
		return err
	}

	sched := scheduler.New(cfg.RefreshInterval(), cfg.RenewalInterval())
	sched.Start()
	defer func() {
		sched.Stop()
		sched.Wait()
	}()

	restoreBg := ui.SetTerminalBackground(ui.ThemeBackground())
	defer restoreBg()

	h := newHome(ctx, cfg, deps, sched, token)
	h.registry.Replace(page.Items, page.HasNext)
	h.syncViews()

	p := tea.NewProgram(h, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if err != nil && ctx.Err() != nil {
		// canceled from outside, not a failure of the dashboard
		return nil
	}
	return err
}

// bootstrap performs the startup authentication and first list.
func bootstrap(ctx context.Context, cfg *config.Config, remote Remote, audit auditlog.Logger) (string, webmnt.Page, error) {
	if audit == nil {
		audit = auditlog.NopLogger()
	}
	token, err := remote.Authenticate(ctx, credentials(cfg))
	if err != nil {
		return "", webmnt.Page{}, fmt.Errorf("authenticate with %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	audit.Emit(auditlog.NewEvent(auditlog.EventAuthenticated, "authenticated as "+cfg.Login))
	log.InfoLog.Printf("authenticated with %s:%s as %s", cfg.Host, cfg.Port, cfg.Login)

	page, err := remote.ListSessions(ctx, token, 0, cfg.PageSize)
	if err != nil {
		return "", webmnt.Page{}, fmt.Errorf("list sessions: %w", err)
	}
	return token, page, nil
}

func credentials(cfg *config.Config) webmnt.Credentials {
	return webmnt.Credentials{Login: cfg.Login, Password: cfg.Password, Env: cfg.Environment}
}

// home is the dashboard model. Every field is owned by the bubbletea update
// loop; remote calls run as commands and report back through result messages.
type home struct {
	ctx context.Context
	cfg *config.Config

	remote    Remote
	audit     auditlog.Logger
	clipboard func(string) error
	ticks     tickSource

	// token is the current API token, swapped on renewal.
	token string

	registry *session.Registry

	// modal is the open modal, nil when none is open.
	modal   modal
	banners *bannerQueue

	// droppedBanners throttles the warning for failures hidden by BannerKeep.
	droppedBanners *log.Every

	// inflight is set while a remote call runs. Keys that arrive meanwhile
	// wait in deferred; ticks wait in pending.
	inflight bool
	deferred []tea.KeyMsg
	pending  scheduler.Pending

	// -- UI components --

	spinner      spinner.Model
	menu         *ui.Menu
	statusBar    *ui.StatusBar
	table        *ui.SessionTable
	toastManager *overlay.ToastManager
	// toastTicking is set while a toast tick is scheduled.
	toastTicking bool

	width, height int
}

func newHome(ctx context.Context, cfg *config.Config, deps Deps, ticks tickSource, token string) *home {
	audit := deps.Audit
	if audit == nil {
		audit = auditlog.NopLogger()
	}
	clip := deps.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	return &home{
		ctx:            ctx,
		cfg:            cfg,
		remote:         deps.Remote,
		audit:          audit,
		clipboard:      clip,
		ticks:          ticks,
		token:          token,
		registry:       session.NewRegistry(),
		banners:        newBannerQueue(cfg.BannerPolicy),
		droppedBanners: log.NewEvery(time.Minute),
		spinner:        spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		menu:           ui.NewMenu(),
		statusBar:      ui.NewStatusBar(),
		table:          ui.NewSessionTable(),
		toastManager:   overlay.NewToastManager(),
	}
}

func (m *home) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		waitForTick(m.ctx, m.ticks),
	)
}

// tickMsg is delivered when the scheduler has pending ticks.
type tickMsg struct{}

// keyupMsg clears the footer key highlight.
type keyupMsg struct{}

// waitForTick blocks until the tick source wakes, stops or ctx ends.
func waitForTick(ctx context.Context, src tickSource) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-src.Wake():
			return tickMsg{}
		case <-src.Done():
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncViews()
		return m, cmd
	case overlay.ToastTickMsg:
		m.toastManager.Tick()
		if m.toastManager.HasActiveToasts() {
			return m, toastTickCmd()
		}
		m.toastTicking = false
		return m, nil
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case tickMsg:
		cmd := m.resume()
		m.syncViews()
		return m, tea.Batch(cmd, waitForTick(m.ctx, m.ticks))
	case listResultMsg:
		m.inflight = false
		m.handleListResult(msg)
		return m, m.afterCall(nil)
	case deleteResultMsg:
		m.inflight = false
		return m, m.afterCall(m.handleDeleteResult(msg))
	case messageResultMsg:
		m.inflight = false
		m.handleMessageResult(msg)
		return m, m.afterCall(nil)
	case renewResultMsg:
		m.inflight = false
		m.handleRenewResult(msg)
		return m, m.afterCall(nil)
	case tea.KeyMsg:
		cmd := m.handleKeyPress(msg)
		m.syncViews()
		return m, tea.Batch(cmd, m.toastCmd())
	}
	return m, nil
}

// afterCall runs follow-up, which may start another call, and otherwise
// resumes the ticks and keys that waited on the finished call.
func (m *home) afterCall(followUp tea.Cmd) tea.Cmd {
	cmds := []tea.Cmd{followUp}
	if !m.inflight {
		cmds = append(cmds, m.resume())
	}
	m.syncViews()
	return tea.Batch(append(cmds, m.toastCmd())...)
}

// resume drains pending ticks and replays deferred keys in arrival order.
// Before each key the ticks are drained again, so a tick that fired earlier
// is always handled before a key that arrived later. It stops as soon as a
// remote call starts.
func (m *home) resume() tea.Cmd {
	var cmds []tea.Cmd
	for !m.inflight {
		if cmd := m.runPendingTicks(); cmd != nil {
			cmds = append(cmds, cmd)
			break
		}
		if len(m.deferred) == 0 {
			break
		}
		next := m.deferred[0]
		m.deferred = m.deferred[1:]
		cmds = append(cmds, m.handleKey(next))
	}
	return tea.Batch(cmds...)
}

// runPendingTicks starts the call for one pending tick, renewal first. It
// returns nil when nothing was started.
func (m *home) runPendingTicks() tea.Cmd {
	m.pending |= m.ticks.Drain()
	if m.inflight || m.pending.Empty() {
		return nil
	}
	switch {
	case m.pending.Has(scheduler.TickRenewal):
		m.pending = m.pending.Without(scheduler.TickRenewal)
		return m.renewToken()
	case m.pending.Has(scheduler.TickRefresh):
		m.pending = m.pending.Without(scheduler.TickRefresh)
		return m.refresh()
	}
	return nil
}

// handleError logs err, records it in the audit trail and raises the error
// banner according to the configured policy.
func (m *home) handleError(err error, opts ...auditlog.EventOption) {
	if kind, ok := webmnt.KindOf(err); ok {
		log.ErrorLog.Printf("%s failure: %v", kind, err)
		opts = append(opts, auditlog.WithDetail("kind="+kind.String()))
	} else {
		log.ErrorLog.Printf("%v", err)
	}
	m.audit.Emit(auditlog.NewEvent(auditlog.EventError, err.Error(),
		append(opts, auditlog.WithLevel("error"))...))
	m.pushBanner(bannerText(err))
}

// pushBanner raises msg, logging at most once a minute that a kept banner
// hid later ones.
func (m *home) pushBanner(msg string) {
	if !m.banners.push(msg) && m.droppedBanners.ShouldLog() {
		log.WarningLog.Printf("banner kept on screen, later failures only logged: %s", msg)
	}
}

// bannerText prefers the server's own message for remote failures.
func bannerText(err error) string {
	var werr *webmnt.Error
	if errors.As(err, &werr) && werr.Message != "" {
		return fmt.Sprintf("%s failed: %s", werr.Op, werr.Message)
	}
	return err.Error()
}

func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.statusBar.SetSize(msg.Width)
	m.menu.SetSize(msg.Width)
	m.table.SetSize(msg.Width, msg.Height-2)
	if m.modal != nil {
		m.modal.resize(msg.Width)
	}
	m.syncViews()
}

// syncViews pushes the registry and call state into the view components.
func (m *home) syncViews() {
	busy := ""
	if m.inflight {
		busy = m.spinner.View()
	}
	m.statusBar.SetData(ui.StatusBarData{
		Server:      m.cfg.Host + ":" + m.cfg.Port,
		Environment: m.cfg.Environment,
		Page:        m.registry.Page(),
		HasNext:     m.registry.HasNext(),
		Sessions:    m.registry.Len(),
		Marked:      m.registry.MarkCount(),
		MultiSelect: m.registry.MultiSelect(),
		Busy:        busy,
	})
	m.table.SetData(m.registry.Records(), m.registry.Cursor(), m.registry.IsMarked)

	switch {
	case m.modal != nil:
		m.menu.SetState(m.modal.menuState())
	case m.banners.active():
		m.menu.SetState(ui.StateBanner)
	case m.registry.Len() == 0:
		m.menu.SetState(ui.StateEmpty)
	default:
		m.menu.SetState(ui.StateDefault)
	}
}

// keydownCallback highlights name in the footer and clears it shortly after.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}
		return keyupMsg{}
	}
}

// toastTickCmd returns a command that triggers a toast animation tick.
func toastTickCmd() tea.Cmd {
	return tea.Tick(overlay.ToastTickInterval, func(time.Time) tea.Msg {
		return overlay.ToastTickMsg{}
	})
}

// toastCmd starts the toast ticker when a toast is showing and no tick is
// scheduled yet.
func (m *home) toastCmd() tea.Cmd {
	if m.toastTicking || !m.toastManager.HasActiveToasts() {
		return nil
	}
	m.toastTicking = true
	return toastTickCmd()
}

func (m *home) View() string {
	main := ui.FillHeight(lipgloss.JoinVertical(lipgloss.Left,
		m.statusBar.String(),
		m.table.View(),
		m.menu.String(),
	), m.height)

	switch {
	case m.modal != nil:
		main = overlay.PlaceCentered(m.width, m.height, m.modal.render(), main)
	case m.banners.active():
		msg, _ := m.banners.current()
		b := overlay.NewErrorBanner(msg, m.banners.waiting())
		b.SetWidth(boxWidth(m.width, bannerBoxWidth))
		main = overlay.PlaceCentered(m.width, m.height, b.Render(), main)
	}

	if m.toastManager.HasActiveToasts() {
		x, y := m.toastManager.Position(m.width)
		main = overlay.PlaceOverlay(x, y, m.toastManager.View(), main)
	}
	return main
}
