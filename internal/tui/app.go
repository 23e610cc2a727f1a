// Package tui renders the role-management console in the terminal and maps
// keys and mouse events onto console intents.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/productbazar/bazaaradmin/internal/console"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

type pane int

const (
	paneSearch pane = iota
	paneList
	paneDetail
)

// filterOptions is the role selector: all roles first, then each role.
var filterOptions = append([]roles.Role{""}, roles.All()...)

const maxSuggestionWidth = 60

type Options struct {
	NarrowWidth int
	Clipboard   func(string) error
	// Notifier receives toasts in addition to the status line.
	Notifier console.Notifier
}

// App is the bubbletea model wrapping a console.Model.
type App struct {
	console *console.Model
	toast   *toastLine

	input   textinput.Model
	spinner spinner.Model

	focus     pane
	cursor    int
	filterIdx int
	height    int
	quitting  bool
}

func New(svc console.RoleService, opts Options) *App {
	toast := &toastLine{}
	notifiers := console.Notifiers{toast}
	if opts.Notifier != nil {
		notifiers = append(notifiers, opts.Notifier)
	}

	ti := textinput.New()
	ti.Placeholder = "Search by name, email, phone, role, company or location"
	ti.Prompt = "🔎 "
	ti.CharLimit = 120
	ti.Width = maxSuggestionWidth
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return &App{
		console: console.New(console.Options{
			Service:     svc,
			Notifier:    notifiers,
			NarrowWidth: opts.NarrowWidth,
			Clipboard:   opts.Clipboard,
		}),
		toast:   toast,
		input:   ti,
		spinner: sp,
	}
}

// Console exposes the wrapped state machine.
func (a *App) Console() *console.Model {
	return a.console
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.console.Init(), a.spinner.Tick, textinput.Blink)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.console.Resize(msg.Width)
		a.height = msg.Height
		return a, nil
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			a.console.ClickOutside()
		}
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}
	return a, a.console.Update(msg)
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.console.Close()
	a.quitting = true
	return a, tea.Quit
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a.quit()
	case "tab":
		a.console.ClickOutside()
		a.setFocus((a.focus + 1) % 3)
		return a, nil
	case "shift+tab":
		a.console.ClickOutside()
		a.setFocus((a.focus + 2) % 3)
		return a, nil
	}

	if a.console.Gate() != console.GateOpen {
		switch msg.String() {
		case "q", "esc":
			return a.quit()
		case "R":
			return a, a.console.RefreshSession()
		}
		return a, nil
	}

	switch a.focus {
	case paneSearch:
		return a.searchKey(msg)
	case paneList:
		return a.listKey(msg)
	default:
		return a.detailKey(msg)
	}
}

func (a *App) setFocus(p pane) {
	if p == paneDetail {
		if _, ok := a.console.Selected(); !ok {
			p = paneSearch
		}
	}
	a.focus = p
	if p == paneSearch {
		a.input.Focus()
	} else {
		a.input.Blur()
	}
}

func (a *App) searchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyDown:
		if a.console.SuggestionsOpen() {
			a.console.SuggestDown()
		} else {
			a.setFocus(paneList)
		}
		return a, nil
	case tea.KeyUp:
		a.console.SuggestUp()
		return a, nil
	case tea.KeyEnter:
		if a.console.SuggestEnter() {
			a.input.SetValue(a.console.Query())
			a.input.CursorEnd()
			a.cursor = 0
			a.setFocus(paneDetail)
		}
		return a, nil
	case tea.KeyEsc:
		a.console.SuggestEscape()
		return a, nil
	}

	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if v := a.input.Value(); v != before {
		a.cursor = 0
		return a, tea.Batch(cmd, a.console.SetQuery(v))
	}
	return a, cmd
}

func (a *App) listKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	users := a.console.Filtered()
	switch msg.String() {
	case "q":
		return a.quit()
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(users)-1 {
			a.cursor++
		}
	case "enter", "right", "l":
		if a.cursor < len(users) && a.console.Select(users[a.cursor].ID) {
			a.setFocus(paneDetail)
		}
	case "/":
		a.setFocus(paneSearch)
	case "r":
		return a, a.cycleFilter(1)
	case "R":
		return a, a.cycleFilter(-1)
	case "x":
		a.dismiss()
	}
	return a, nil
}

func (a *App) detailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := a.console.Selection()
	editing := sel.Mode == console.Editing

	key := msg.String()
	if editing && len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		opts := roles.SecondaryOptions()
		if n := int(key[0] - '1'); n < len(opts) {
			a.console.ToggleDraftSecondary(opts[n])
		}
		return a, nil
	}

	switch key {
	case "q":
		if !editing {
			return a.quit()
		}
	case "e":
		a.console.BeginEdit()
	case "esc":
		if editing {
			a.console.CancelEdit()
		} else {
			a.back()
		}
	case "b", "backspace":
		if !editing {
			a.back()
		}
	case "c":
		a.console.ToggleCapabilities()
	case "y":
		return a, a.console.CopyID()
	case "left", "h":
		if editing {
			a.cyclePrimary(sel.DraftPrimary, -1)
		}
	case "right", "l":
		if editing {
			a.cyclePrimary(sel.DraftPrimary, 1)
		}
	case "p":
		return a, a.console.CommitPrimary()
	case "s":
		return a, a.console.CommitSecondary()
	case "x":
		a.dismiss()
	}
	return a, nil
}

func (a *App) back() {
	a.console.Back()
	a.setFocus(paneList)
}

func (a *App) dismiss() {
	a.console.DismissSuccess()
	a.console.DismissError()
}

func (a *App) cycleFilter(step int) tea.Cmd {
	n := len(filterOptions)
	a.filterIdx = ((a.filterIdx+step)%n + n) % n
	a.cursor = 0
	return a.console.SetRoleFilter(filterOptions[a.filterIdx])
}

func (a *App) cyclePrimary(current roles.Role, step int) {
	all := roles.All()
	idx := 0
	for i, r := range all {
		if r == current {
			idx = i
		}
	}
	n := len(all)
	a.console.SetDraftPrimary(all[((idx+step)%n+n)%n])
}

// toastLine keeps the most recent toast for the status line.
type toastLine struct {
	text  string
	isErr bool
}

func (t *toastLine) Success(msg string) {
	t.text, t.isErr = msg, false
}

func (t *toastLine) Error(msg string) {
	t.text, t.isErr = msg, true
}
