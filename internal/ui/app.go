package ui

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/notify"
	"github.com/five82/storefront/internal/prefs"
	"github.com/five82/storefront/internal/state"
	"github.com/five82/storefront/internal/view"
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Store         *state.Store
	Board         *notify.Board
	Catalog       *catalog.Catalog
	Logger        *slog.Logger
	LogFile       string // session log shown in the activity view
	PrefsPath     string
	ThemeName     string
	Sort          string
	CheckoutDelay time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	store         *state.Store
	board         *notify.Board
	catalog       *catalog.Catalog
	logger        *slog.Logger
	logFile       string
	prefsPath     string
	checkoutDelay time.Duration

	keys   keyMap
	router *router

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// State mirror; stateVersion bumps after every mutation
	snapshot     state.Snapshot
	stateVersion uint64

	// Grid
	products   []catalog.Product
	categories []string // "" (all) followed by catalog categories
	query      view.Query
	grid       view.GridView
	cursor     int
	offset     int // first visible grid row

	searchInput textinput.Model
	searching   bool

	// Surfaces
	surface    surface
	panels     panelCache
	cartCursor int
	wishCursor int
	qtyInput   textinput.Model
	editingQty bool
	auth       authForm
	filters    filterPanel
	activity   activityState

	// Checkout
	spinner   spinner.Model
	lastOrder *state.Order

	noticeSeq uint64
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	board := opts.Board
	if board == nil {
		board = notify.NewBoard(0)
	}
	store := opts.Store
	if store == nil {
		store = state.New(nil, board, logger)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	search := textinput.New()
	search.Placeholder = "Search products..."
	search.Prompt = "/ "
	search.CharLimit = 64

	qty := textinput.New()
	qty.Placeholder = "1-10"
	qty.Prompt = "qty: "
	qty.CharLimit = 4

	keys := DefaultKeyMap()
	m := Model{
		ctx:           ctx,
		store:         store,
		board:         board,
		catalog:       opts.Catalog,
		logger:        logger,
		logFile:       opts.LogFile,
		prefsPath:     opts.PrefsPath,
		checkoutDelay: opts.CheckoutDelay,
		keys:          keys,
		router:        newRouter(keys),
		theme:         GetTheme(themeName),
		products:      opts.Catalog.Products(),
		categories:    append([]string{""}, opts.Catalog.Categories()...),
		query:         view.Query{Sort: parseSort(opts.Sort)},
		searchInput:   search,
		qtyInput:      qty,
		auth:          newAuthForm(),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		stateVersion:  1,
	}
	m.filters = newFilterPanel(opts.Catalog)
	m.activity = newActivityState()
	m.sync()
	return m
}

func parseSort(raw string) view.SortKey {
	for _, k := range view.SortKeys {
		if string(k) == strings.TrimSpace(raw) {
			return k
		}
	}
	return view.SortDefault
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.noticeCmd())

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.clampGrid()
		m.resizeActivity()
		return m, nil

	case noticeExpiredMsg:
		m.board.Dismiss(uint64(msg))
		return m, nil

	case checkoutDoneMsg:
		m.finishCheckout()
		return m, m.noticeCmd()

	case spinner.TickMsg:
		if !m.snapshot.CheckoutPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case activityLoadedMsg:
		m.handleActivityLoaded(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.surface != surfaceNone {
		return m.renderSurface()
	}
	return m.renderMain()
}

// renderMain renders the header, the product grid and the footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// sync refreshes the snapshot mirror and everything projected from it.
func (m *Model) sync() {
	m.snapshot = m.store.Snapshot()
	m.refreshGrid()
	m.refreshPanels(false)
}

// mutated records that a store mutator ran.
func (m *Model) mutated() {
	m.stateVersion++
	m.sync()
}

// noticeCmd schedules dismissal of a newly posted notice.
func (m *Model) noticeCmd() tea.Cmd {
	n, ok := m.board.Current()
	if !ok || n.Seq == m.noticeSeq {
		return nil
	}
	m.noticeSeq = n.Seq
	seq := n.Seq
	return tea.Tick(m.board.TTL(), func(time.Time) tea.Msg {
		return noticeExpiredMsg(seq)
	})
}

// Messages

type noticeExpiredMsg uint64

type checkoutDoneMsg struct{}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
