package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/console"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

type stubService struct {
	users     []api.User
	roleCalls []roles.Role
	secondary [][]roles.Role
}

func (s *stubService) CurrentUser(ctx context.Context) (*api.User, error) {
	return &api.User{ID: "admin", Role: roles.Admin}, nil
}

func (s *stubService) ListAllUsers(ctx context.Context) ([]api.User, error) {
	return s.users, nil
}

func (s *stubService) UpdateUserRole(ctx context.Context, id string, role roles.Role) error {
	s.roleCalls = append(s.roleCalls, role)
	return nil
}

func (s *stubService) UpdateSecondaryRoles(ctx context.Context, id string, secondary []roles.Role) error {
	s.secondary = append(s.secondary, secondary)
	return nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, app *App, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = app.Update(key(k))
	}
	return cmd
}

func openApp(t *testing.T, svc *stubService) *App {
	t.Helper()
	app := New(svc, Options{})
	t.Cleanup(app.Console().Close)
	if !strings.Contains(app.View(), "Checking your session") {
		t.Fatalf("expected loading view, got %q", app.View())
	}
	_, load := app.Update(console.SessionMsg{User: &api.User{ID: "admin", Role: roles.Admin}})
	if load == nil {
		t.Fatal("expected load command")
	}
	app.Update(load())
	return app
}

func fixtures() []api.User {
	return []api.User{
		{ID: "u1", FirstName: "Jane", LastName: "Doe", Email: "jane@x.io", Role: roles.User},
		{ID: "u2", FirstName: "John", LastName: "Smith", Phone: "+4412", Role: roles.Maker},
	}
}

func TestApp_Denied(t *testing.T) {
	app := New(&stubService{}, Options{})
	t.Cleanup(app.Console().Close)
	app.Update(console.SessionMsg{User: &api.User{ID: "u", Role: roles.Maker}})
	if !strings.Contains(app.View(), "Access denied") {
		t.Errorf("expected denied view, got %q", app.View())
	}
	if _, cmd := app.Update(key("q")); cmd == nil {
		t.Error("expected quit command")
	}
}

func TestApp_ListAndDetail(t *testing.T) {
	app := openApp(t, &stubService{users: fixtures()})
	view := app.View()
	for _, want := range []string{"Jane Doe", "John Smith", "All roles (2)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}

	press(t, app, "tab", "down", "enter")
	u, ok := app.Console().Selected()
	if !ok || u.ID != "u2" {
		t.Fatalf("expected u2 selected, got %+v", u)
	}
	view = app.View()
	if !strings.Contains(view, "+4412") || !strings.Contains(view, "Primary") {
		t.Errorf("expected detail in view:\n%s", view)
	}
}

func TestApp_RoleFilter(t *testing.T) {
	app := openApp(t, &stubService{users: fixtures()})
	press(t, app, "tab")
	cmd := press(t, app, "r")
	if cmd == nil {
		t.Fatal("expected debounce command")
	}
	if app.Console().RoleFilter() != roles.User {
		t.Errorf("expected user filter, got %q", app.Console().RoleFilter())
	}
	if !strings.Contains(app.View(), "User (1)") {
		t.Errorf("expected count label in view")
	}
}

func TestApp_EditPrimary(t *testing.T) {
	svc := &stubService{users: fixtures()}
	app := openApp(t, svc)
	press(t, app, "tab", "enter", "e")
	if app.Console().Selection().Mode != console.Editing {
		t.Fatal("expected editing")
	}

	if cmd := press(t, app, "p"); cmd != nil {
		t.Error("unchanged primary must not commit")
	}

	cmd := press(t, app, "right", "p")
	if cmd == nil {
		t.Fatal("expected mutation command")
	}
	if !strings.Contains(app.View(), "Saving") {
		t.Error("expected saving indicator")
	}
	app.Update(cmd())
	if len(svc.roleCalls) != 1 || svc.roleCalls[0] != roles.StartupOwner {
		t.Fatalf("unexpected calls %v", svc.roleCalls)
	}
	view := app.View()
	if !strings.Contains(view, "Updated Jane Doe's role to Startup Owner") {
		t.Errorf("expected success banner:\n%s", view)
	}
	if app.Console().Selection().Mode != console.Viewing {
		t.Error("expected viewing after success")
	}
}

func TestApp_EditSecondary(t *testing.T) {
	svc := &stubService{users: fixtures()}
	app := openApp(t, svc)
	press(t, app, "tab", "enter", "e", "2", "4")
	if !strings.Contains(app.View(), "[x] 2") {
		t.Error("expected toggled checkbox")
	}
	cmd := press(t, app, "s")
	if cmd == nil {
		t.Fatal("expected mutation command")
	}
	app.Update(cmd())
	if len(svc.secondary) != 1 {
		t.Fatalf("expected one call, got %d", len(svc.secondary))
	}
	got := roles.NewSet(svc.secondary[0]...)
	if !got.Equal(roles.NewSet(roles.Investor, roles.Freelancer)) {
		t.Errorf("unexpected secondary roles %v", svc.secondary[0])
	}
}

func TestApp_CancelEdit(t *testing.T) {
	app := openApp(t, &stubService{users: fixtures()})
	press(t, app, "tab", "enter", "e", "right", "esc")
	sel := app.Console().Selection()
	if sel.Mode != console.Viewing {
		t.Errorf("expected viewing, got %s", sel.Mode)
	}
	if u, _ := app.Console().Selected(); u.Role != roles.User {
		t.Error("cancel must not change the role")
	}
}

func TestApp_NarrowLayout(t *testing.T) {
	app := openApp(t, &stubService{users: fixtures()})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	if strings.Contains(app.View(), "Select a user") {
		t.Error("detail pane must be hidden on narrow screens")
	}
	press(t, app, "tab", "enter")
	if !app.Console().ShowDetail() || app.Console().ShowList() {
		t.Error("expected detail only")
	}
	press(t, app, "b")
	if !app.Console().ShowList() {
		t.Error("expected list after back")
	}
}

func TestApp_MouseClosesSuggestions(t *testing.T) {
	app := openApp(t, &stubService{users: fixtures()})
	app.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if app.Console().SuggestionsOpen() {
		t.Error("expected closed dropdown")
	}
}

func TestInitial(t *testing.T) {
	if initial("jane") != "J" || initial("") != "?" {
		t.Error("unexpected initial")
	}
}
