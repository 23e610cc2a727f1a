package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/console"
	"github.com/productbazar/bazaaradmin/internal/output"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

const defaultListRows = 15

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	switch a.console.Gate() {
	case console.GateLoading:
		return fmt.Sprintf("\n %s Checking your session…\n", a.spinner.View())
	case console.GateDenied:
		return a.deniedView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("ProductBazar · Role Management"))
	b.WriteString("\n")
	if s := a.console.SuccessBanner(); s != "" {
		b.WriteString(successStyle.Render("✓ "+s) + mutedStyle.Render("  x to dismiss") + "\n")
	}
	if s := a.console.ErrorBanner(); s != "" {
		b.WriteString(errorStyle.Render("✗ "+s) + mutedStyle.Render("  x to dismiss") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(a.searchView())
	b.WriteString("\n")

	var panes []string
	if a.console.ShowList() {
		panes = append(panes, a.paneBox(paneList, a.listView()))
	}
	if a.console.ShowDetail() {
		panes = append(panes, a.paneBox(paneDetail, a.detailView()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panes...))
	b.WriteString("\n")
	b.WriteString(a.footerView())
	return b.String()
}

func (a *App) deniedView() string {
	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(errorStyle.Render("Access denied"))
	b.WriteString("\n\n The role management console is limited to administrators.\n")
	if msg := a.console.SessionError(); msg != "" {
		b.WriteString(" " + mutedStyle.Render(msg) + "\n")
	}
	b.WriteString("\n " + mutedStyle.Render("R retry · q quit") + "\n")
	return b.String()
}

func (a *App) paneBox(p pane, content string) string {
	if a.focus == p {
		return focusedPaneStyle.Render(content)
	}
	return paneStyle.Render(content)
}

func (a *App) searchView() string {
	var b strings.Builder
	b.WriteString(a.input.View())
	if a.console.Searching() {
		b.WriteString(" " + a.spinner.View())
	}
	b.WriteString("\n")

	if !a.console.SuggestionsOpen() {
		return b.String()
	}
	active := a.console.ActiveSuggestion()
	for i, s := range a.console.Suggestions() {
		contact := s.Email
		if contact == "" {
			contact = s.Phone
		}
		avatar := initial(s.DisplayName)
		if s.ProfilePictureURL != "" {
			avatar = "🖼"
		}
		line := fmt.Sprintf("%s %s  %s  %s", avatar, s.DisplayName, contact, s.Role.Label())
		line = output.Truncate(line, maxSuggestionWidth)
		if i == active {
			b.WriteString("  " + activeStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (a *App) listView() string {
	var b strings.Builder
	r := filterOptions[a.filterIdx]
	label := "All roles"
	if r != "" {
		label = r.Label()
	}
	b.WriteString(fmt.Sprintf("Role: %s (%d)  %s\n\n", label, a.console.RoleCount(r), mutedStyle.Render("r to change")))

	if a.console.Loading() {
		b.WriteString(a.spinner.View() + " Loading users…")
		return b.String()
	}
	users := a.console.Filtered()
	if len(users) == 0 {
		b.WriteString(mutedStyle.Render("No users match your search."))
		return b.String()
	}
	if a.cursor >= len(users) {
		a.cursor = len(users) - 1
	}

	rows := a.listRows()
	start := 0
	if a.cursor >= rows {
		start = a.cursor - rows + 1
	}
	end := start + rows
	if end > len(users) {
		end = len(users)
	}

	selected, _ := a.console.Selected()
	for i := start; i < end; i++ {
		u := users[i]
		marker := "  "
		if i == a.cursor && a.focus == paneList {
			marker = cursorStyle.Render("> ")
		}
		name := output.Truncate(u.DisplayName(), 24)
		if u.ID == selected.ID {
			name = cursorStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", marker, u.Role.Meta().Icon, name, mutedStyle.Render(u.Role.Label())))
	}
	if len(users) > rows {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(users))))
	}
	return b.String()
}

func (a *App) listRows() int {
	if a.height <= 0 {
		return defaultListRows
	}
	// header, search, dropdown, footer and borders
	rows := a.height - 16
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (a *App) detailView() string {
	u, ok := a.console.Selected()
	if !ok {
		return mutedStyle.Render("Select a user to view details.")
	}
	sel := a.console.Selection()

	var b strings.Builder
	avatar := "[" + initial(u.DisplayName()) + "]"
	if u.ProfilePictureURL != "" {
		avatar = "🖼 " + u.ProfilePictureURL
	}
	b.WriteString(titleStyle.Render(u.DisplayName()) + "  " + avatar + "\n")
	b.WriteString(contactLine("Email", u.Email, u.IsEmailVerified))
	b.WriteString(contactLine("Phone", u.Phone, u.IsPhoneVerified))
	if u.IsProfileCompleted {
		b.WriteString(pillStyle.Render("Profile complete") + "\n")
	} else {
		b.WriteString(pillStyle.Render("Profile incomplete") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("ID        %s  %s\n", u.ID, mutedStyle.Render("y to copy")))
	if u.CreatedAt != nil {
		b.WriteString(fmt.Sprintf("Joined    %s\n", u.CreatedAt.Format("January 2, 2006")))
	}
	if u.CompanyName != "" {
		b.WriteString(fmt.Sprintf("Company   %s\n", u.CompanyName))
	}
	if loc := u.Location(); loc != "" {
		b.WriteString(fmt.Sprintf("Location  %s\n", loc))
	}

	b.WriteString("\n")
	if sel.Mode == console.Editing {
		b.WriteString(a.editView(u, sel))
	} else {
		b.WriteString(rolesView(u, sel.ShowCapabilities))
	}
	return b.String()
}

func rolesView(u api.User, showCaps bool) string {
	var b strings.Builder
	b.WriteString("Primary   " + roleChip(u.Role) + "\n")
	b.WriteString("Secondary ")
	if len(u.SecondaryRoles) == 0 {
		b.WriteString(mutedStyle.Render("None"))
	}
	for _, r := range u.SecondaryRoles {
		b.WriteString(roleChip(r) + " ")
	}
	b.WriteString("\n")

	caps := output.Capabilities(u.RoleCapabilities)
	if len(caps) > 0 {
		if showCaps {
			b.WriteString("Capabilities\n")
			for _, c := range caps {
				b.WriteString("  " + pillStyle.Render(c) + "\n")
			}
		} else {
			b.WriteString(mutedStyle.Render(fmt.Sprintf("%d capabilities · c to show", len(caps))) + "\n")
		}
	}
	return b.String()
}

func (a *App) editView(u api.User, sel console.Selection) string {
	var b strings.Builder
	b.WriteString("Primary role  ◀ " + roleChip(sel.DraftPrimary) + " ▶\n")
	if sel.DraftPrimary == u.Role {
		b.WriteString(mutedStyle.Render("  unchanged") + "\n")
	}
	b.WriteString("\nSecondary roles\n")
	for i, r := range roles.SecondaryOptions() {
		box := "[ ]"
		if sel.DraftSecondary != nil && sel.DraftSecondary.Has(r) {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("  %s %d %s %s\n", box, i+1, r.Meta().Icon, r.Label()))
	}
	b.WriteString("\n")
	if a.console.Submitting() {
		b.WriteString(a.spinner.View() + " Saving…\n")
		return b.String()
	}
	actions := []string{}
	if a.console.CanCommitPrimary() {
		actions = append(actions, "p save primary")
	}
	if a.console.CanCommitSecondary() {
		actions = append(actions, "s save secondary")
	}
	if a.console.CanCancel() {
		actions = append(actions, "esc cancel")
	}
	b.WriteString(mutedStyle.Render(strings.Join(actions, " · ")) + "\n")
	return b.String()
}

func (a *App) footerView() string {
	var help string
	switch a.focus {
	case paneSearch:
		help = "type to search · ↑/↓ suggestions · enter pick · esc close · tab list"
	case paneList:
		help = "↑/↓ move · enter open · r role filter · / search · tab detail · q quit"
	default:
		if a.console.Selection().Mode == console.Editing {
			help = "←/→ primary · 1-6 secondary · p/s save · esc cancel"
		} else {
			help = "e edit roles · c capabilities · y copy id · b back · q quit"
		}
	}
	line := mutedStyle.Render(help)
	if a.toast.text != "" {
		line += "\n" + toastStyle.Render(a.toast.text)
	}
	return line
}

func contactLine(label, value string, verified bool) string {
	if value == "" {
		return fmt.Sprintf("%-9s %s\n", label, mutedStyle.Render("not provided"))
	}
	mark := mutedStyle.Render("unverified")
	if verified {
		mark = "✓ verified"
	}
	return fmt.Sprintf("%-9s %s  %s\n", label, value, mark)
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
