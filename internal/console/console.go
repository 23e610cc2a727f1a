// Package console is the admin role-management state machine. It owns the
// user directory, the search engine, the selection and the mutation
// lifecycle, and is driven by bubbletea messages so every state change
// happens on the single UI task.
package console

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/directory"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"github.com/productbazar/bazaaradmin/internal/search"
	"github.com/productbazar/bazaaradmin/pkg/logger"
)

const (
	DefaultNarrowWidth = 100

	SuccessBannerTTL = 3 * time.Second
	ErrorBannerTTL   = 5 * time.Second
)

// RoleService is the slice of the admin API the console talks to.
type RoleService interface {
	CurrentUser(ctx context.Context) (*api.User, error)
	ListAllUsers(ctx context.Context) ([]api.User, error)
	UpdateUserRole(ctx context.Context, userID string, role roles.Role) error
	UpdateSecondaryRoles(ctx context.Context, userID string, secondary []roles.Role) error
}

// AfterFunc schedules msg to be delivered after d.
type AfterFunc func(d time.Duration, msg tea.Msg) tea.Cmd

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

type Options struct {
	Service  RoleService
	Notifier Notifier

	// NarrowWidth is the terminal width below which list and detail are
	// shown one at a time.
	NarrowWidth int

	After     AfterFunc
	Clipboard func(string) error
	Context   context.Context
}

// Model is the console. It is not safe for concurrent use; all calls must
// come from the UI loop.
type Model struct {
	svc         RoleService
	notify      Notifier
	after       AfterFunc
	copyText    func(string) error
	narrowWidth int

	root       context.Context
	rootCancel context.CancelFunc

	session    Session
	sessionErr string
	gate       GateState

	// per-mount state
	ctx     context.Context
	cancel  context.CancelFunc
	mounted bool
	loading bool
	loads   int

	dir    *directory.Directory
	engine *search.Engine
	sel    Selection
	width  int

	submitting     bool
	mutationCancel context.CancelFunc

	success banner
	failure banner
}

func New(opts Options) *Model {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	root, cancel := context.WithCancel(parent)

	m := &Model{
		svc:         opts.Service,
		notify:      opts.Notifier,
		after:       opts.After,
		copyText:    opts.Clipboard,
		narrowWidth: opts.NarrowWidth,
		root:        root,
		rootCancel:  cancel,
		dir:         directory.New(),
		engine:      search.NewEngine(),
	}
	if m.notify == nil {
		m.notify = LogNotifier{}
	}
	if m.after == nil {
		m.after = tick
	}
	if m.narrowWidth <= 0 {
		m.narrowWidth = DefaultNarrowWidth
	}
	return m
}

// Init fetches the current session.
func (m *Model) Init() tea.Cmd {
	return m.RefreshSession()
}

// Close aborts every in-flight request and stops accepting results.
func (m *Model) Close() {
	m.unmount()
	m.rootCancel()
}

// RefreshSession re-reads the current user from the server.
func (m *Model) RefreshSession() tea.Cmd {
	svc, ctx := m.svc, m.root
	return func() tea.Msg {
		u, err := svc.CurrentUser(ctx)
		return SessionMsg{User: u, Err: err}
	}
}

// SetSession re-evaluates the gate. Opening it mounts the console and
// issues the single directory load; closing it unmounts.
func (m *Model) SetSession(s Session) tea.Cmd {
	m.session = s
	m.gate = Evaluate(s)
	switch m.gate {
	case GateOpen:
		if !m.mounted {
			return m.mount()
		}
	default:
		if m.mounted {
			logger.Warn("console_unmounted", map[string]interface{}{"gate": m.gate.String()})
			m.unmount()
		}
	}
	return nil
}

func (m *Model) mount() tea.Cmd {
	m.ctx, m.cancel = context.WithCancel(m.root)
	m.mounted = true
	m.dir = directory.New()
	m.engine = search.NewEngine()
	m.sel.clear()
	return m.load()
}

func (m *Model) unmount() {
	if !m.mounted {
		return
	}
	m.cancel()
	m.mounted = false
	m.loading = false
	m.submitting = false
	m.mutationCancel = nil
	m.engine.CancelPending()
	m.dir = directory.New()
	m.engine = search.NewEngine()
	m.sel.clear()
}

func (m *Model) load() tea.Cmd {
	m.loading = true
	m.loads++
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		users, err := svc.ListAllUsers(ctx)
		return usersLoadedMsg{ctx: ctx, users: users, err: err}
	}
}

// Update applies a message and returns the follow-up command, if any.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SessionMsg:
		return m.handleSession(msg)
	case usersLoadedMsg:
		return m.handleLoaded(msg)
	case debounceMsg:
		if m.mounted {
			m.engine.Fire(msg.seq, m.dir)
		}
	case mutationDoneMsg:
		return m.handleMutation(msg)
	case bannerExpiredMsg:
		m.expire(msg)
	}
	return nil
}

func (m *Model) handleSession(msg SessionMsg) tea.Cmd {
	if msg.Err != nil {
		if api.IsCanceled(msg.Err) {
			return nil
		}
		m.sessionErr = api.Message(msg.Err, "Failed to load current user")
		logger.Error("session_fetch_failed", msg.Err, nil)
		return m.SetSession(Session{Initialized: true})
	}
	m.sessionErr = ""
	if msg.User != nil {
		logger.InfoWithUser(msg.User.ID, "session_loaded", map[string]interface{}{"admin": msg.User.IsAdmin()})
	}
	return m.SetSession(Session{User: msg.User, Initialized: true})
}

func (m *Model) handleLoaded(msg usersLoadedMsg) tea.Cmd {
	// a load from a previous mount
	if !m.mounted || msg.ctx != m.ctx {
		return nil
	}
	m.loading = false
	if msg.err != nil {
		if api.IsCanceled(msg.err) {
			return nil
		}
		logger.Error("directory_load_failed", msg.err, nil)
		return m.setError(api.Message(msg.err, "Failed to load users"))
	}
	if err := m.dir.Replace(msg.users); err != nil {
		logger.Error("directory_replace_failed", err, nil)
		return m.setError("Failed to load users")
	}
	m.engine.Apply(m.dir)
	logger.Info("directory_loaded", map[string]interface{}{"users": m.dir.Len()})
	if m.dir.Len() > 0 {
		m.DismissError()
	}
	return nil
}

// Resize records the terminal width.
func (m *Model) Resize(width int) {
	m.width = width
}

// Narrow reports whether list and detail are mutually exclusive.
func (m *Model) Narrow() bool {
	return m.width > 0 && m.width < m.narrowWidth
}

func (m *Model) ShowList() bool {
	return !m.Narrow() || !m.sel.DetailVisible
}

func (m *Model) ShowDetail() bool {
	if m.Narrow() {
		return m.sel.DetailVisible
	}
	return true
}

func (m *Model) Gate() GateState {
	return m.gate
}

func (m *Model) Session() Session {
	return m.session
}

// SessionError is the message from a failed session fetch.
func (m *Model) SessionError() string {
	return m.sessionErr
}

func (m *Model) Mounted() bool {
	return m.mounted
}

func (m *Model) Loading() bool {
	return m.loading
}

// Loads counts directory loads issued since construction.
func (m *Model) Loads() int {
	return m.loads
}

func (m *Model) Directory() *directory.Directory {
	return m.dir
}
