package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

// Out is where every printer writes. Tests swap it for a buffer.
var Out io.Writer = os.Stdout

// JSON prints v as indented JSON.
func JSON(v interface{}) {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// UserTable prints a slice of users as a human-readable table.
func UserTable(users []api.User) {
	if len(users) == 0 {
		fmt.Fprintln(Out, "No users found.")
		return
	}

	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSECONDARY\tLOCATION\tJOINED")
	for _, u := range users {
		joined := "-"
		if u.CreatedAt != nil {
			joined = RelativeTime(*u.CreatedAt)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID,
			Truncate(u.DisplayName(), 28),
			dash(u.Email),
			u.Role.Label(),
			RoleList(u.SecondaryRoles),
			dash(u.Location()),
			joined,
		)
	}
	w.Flush()
}

// UserDetail prints a single user's details.
func UserDetail(u api.User) {
	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", u.DisplayName())
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	fmt.Fprintf(w, "Email:\t%s%s\n", dash(u.Email), verified(u.Email, u.IsEmailVerified))
	fmt.Fprintf(w, "Phone:\t%s%s\n", dash(u.Phone), verified(u.Phone, u.IsPhoneVerified))
	if u.ProfilePictureURL != "" {
		fmt.Fprintf(w, "Picture:\t%s\n", u.ProfilePictureURL)
	}
	fmt.Fprintf(w, "Profile:\t%s\n", completeness(u.IsProfileCompleted))
	if u.CompanyName != "" {
		fmt.Fprintf(w, "Company:\t%s\n", u.CompanyName)
	}
	if loc := u.Location(); loc != "" {
		fmt.Fprintf(w, "Location:\t%s\n", loc)
	}
	if u.CreatedAt != nil {
		fmt.Fprintf(w, "Joined:\t%s\n", u.CreatedAt.Format("January 2, 2006"))
	}
	fmt.Fprintf(w, "Role:\t%s %s\n", u.Role.Meta().Icon, u.Role.Label())
	fmt.Fprintf(w, "Secondary:\t%s\n", RoleList(u.SecondaryRoles))
	if caps := Capabilities(u.RoleCapabilities); len(caps) > 0 {
		fmt.Fprintf(w, "Capabilities:\t%s\n", strings.Join(caps, ", "))
	}
	w.Flush()
}

// RoleTable prints the role catalogue with per-role user counts.
func RoleTable(counts map[roles.Role]int) {
	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROLE\tLABEL\tICON\tSECONDARY\tUSERS")
	for _, r := range roles.All() {
		secondary := "no"
		if r.IsSecondaryOption() {
			secondary = "yes"
		}
		users := "-"
		if counts != nil {
			users = fmt.Sprintf("%d", counts[r])
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r, r.Label(), r.Meta().Icon, secondary, users)
	}
	w.Flush()
}

// RoleList joins role labels, or "-" for none.
func RoleList(rs []roles.Role) string {
	if len(rs) == 0 {
		return "-"
	}
	labels := make([]string, len(rs))
	for i, r := range rs {
		labels[i] = r.Label()
	}
	return strings.Join(labels, ", ")
}

// Capabilities lists the granted capability flags, humanised and sorted.
func Capabilities(caps map[string]bool) []string {
	out := make([]string, 0, len(caps))
	for k, ok := range caps {
		if ok {
			out = append(out, roles.Humanize(k))
		}
	}
	sort.Strings(out)
	return out
}

// RelativeTime formats a timestamp relative to now (e.g. "2h ago", "3d ago").
func RelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func verified(value string, ok bool) string {
	if value == "" {
		return ""
	}
	if ok {
		return " (verified)"
	}
	return " (unverified)"
}

func completeness(done bool) string {
	if done {
		return "complete"
	}
	return "incomplete"
}
