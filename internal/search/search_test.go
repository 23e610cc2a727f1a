package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/directory"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

func adaAndAlan() []api.User {
	return []api.User{
		{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io", Role: roles.User},
		{ID: "u2", FirstName: "Alan", LastName: "Turing", Email: "alan@x.io", Role: roles.Admin},
	}
}

func newDir(t *testing.T, users []api.User) *directory.Directory {
	t.Helper()
	d := directory.New()
	if err := d.Replace(users); err != nil {
		t.Fatalf("Replace() returned error: %v", err)
	}
	return d
}

func TestMatches(t *testing.T) {
	u := api.User{
		ID:          "u7",
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       "grace@navy.mil",
		Phone:       "+1 555 0100",
		Role:        roles.StartupOwner,
		CompanyName: "Cobol Works",
		Address:     &api.Address{City: "Arlington", Country: "USA"},
	}

	tests := []struct {
		name  string
		query string
		role  roles.Role
		want  bool
	}{
		{"empty query matches", "", "", true},
		{"full name across first and last", "grace hop", "", true},
		{"single letters", "e h", "", true},
		{"email", "NAVY.MIL", "", true},
		{"phone", "555", "", true},
		{"primary role id", "startupowner", "", true},
		{"company", "cobol", "", true},
		{"city", "arling", "", true},
		{"country", "usa", "", true},
		{"every token must match", "grace paris", "", false},
		{"tokens may match different fields", "hopper usa cobol", "", true},
		{"other role id", "investor", "", false},
		{"role filter equal", "", roles.StartupOwner, true},
		{"role filter different", "grace", roles.Admin, false},
		{"extra whitespace", "   grace    hopper  ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(u, Tokenize(tt.query), tt.role); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.query, tt.role, got, tt.want)
			}
		})
	}

	t.Run("tolerates missing optional fields", func(t *testing.T) {
		bare := api.User{ID: "x", Role: roles.User}
		if Matches(bare, Tokenize("zzz"), "") {
			t.Error("expected no match")
		}
		if !Matches(bare, Tokenize("use"), "") {
			t.Error("expected role id match")
		}
	})
}

func TestFilter_SubstringLaw(t *testing.T) {
	users := []api.User{
		{ID: "1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io", Role: roles.User},
		{ID: "2", FirstName: "Alan", LastName: "Turing", Email: "alan@x.io", Role: roles.Admin},
		{ID: "3", Email: "maker@shop.io", Role: roles.Maker, CompanyName: "Shop"},
		{ID: "4", Phone: "+33 1 23", Role: roles.Investor, Address: &api.Address{Country: "France"}},
	}
	queries := []string{"a", "al", "x.io", "shop", "fr", "33", "ada x", "admin", "user", "zz", "A L"}
	filters := []roles.Role{"", roles.Admin, roles.User, roles.Maker}

	for _, q := range queries {
		for _, r := range filters {
			got := Filter(users, q, r)
			gotIDs := map[string]bool{}
			for _, u := range got {
				gotIDs[u.ID] = true
			}
			for _, u := range users {
				want := true
				if r != "" && u.Role != r {
					want = false
				}
				for _, tok := range strings.Fields(strings.ToLower(q)) {
					hit := false
					for _, f := range []string{u.FirstName + " " + u.LastName, u.Email, u.Phone, string(u.Role), u.CompanyName, u.City(), u.Country()} {
						if strings.Contains(strings.ToLower(f), tok) {
							hit = true
						}
					}
					if !hit {
						want = false
					}
				}
				if gotIDs[u.ID] != want {
					t.Errorf("query %q role %q: user %s included=%v, want %v", q, r, u.ID, gotIDs[u.ID], want)
				}
			}
		}
	}
}

func TestSuggestIDs(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	tests := []struct {
		query    string
		filtered []string
		want     int
	}{
		{"", ids, 0},
		{"a", ids, 0},
		{" a", ids, 5},
		{"  ", ids, 5},
		{"ab", ids, 5},
		{"ab", ids[:3], 3},
		{"ab", nil, 0},
		{"éé", ids[:1], 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q/%d", tt.query, len(tt.filtered)), func(t *testing.T) {
			got := SuggestIDs(tt.query, tt.filtered)
			if len(got) != tt.want {
				t.Errorf("expected %d suggestions, got %d", tt.want, len(got))
			}
		})
	}
}

func TestDropdown_Keyboard(t *testing.T) {
	t.Run("arrow sequence then enter", func(t *testing.T) {
		d := NewDropdown()
		d.Set([]string{"a", "b", "c"})
		if d.Active() != -1 {
			t.Fatalf("expected initial active -1, got %d", d.Active())
		}
		for i := 0; i < 4; i++ {
			d.Down()
		}
		d.Up()
		if d.Active() != 1 {
			t.Fatalf("expected active 1, got %d", d.Active())
		}
		id, ok := d.Enter()
		if !ok || id != "b" {
			t.Errorf("expected enter to pick b, got %q %v", id, ok)
		}
	})

	t.Run("enter without highlight does nothing", func(t *testing.T) {
		d := NewDropdown()
		d.Set([]string{"a"})
		if _, ok := d.Enter(); ok {
			t.Error("expected no commit without an active index")
		}
	})

	t.Run("escape closes and resets", func(t *testing.T) {
		d := NewDropdown()
		d.Set([]string{"a", "b"})
		d.Down()
		d.Escape()
		if d.Open() || d.Active() != -1 {
			t.Errorf("expected closed dropdown with active -1, got open=%v active=%d", d.Open(), d.Active())
		}
	})

	t.Run("outside click closes but keeps items", func(t *testing.T) {
		d := NewDropdown()
		d.Set([]string{"a"})
		d.Close()
		if d.Open() || d.Len() != 1 {
			t.Error("expected closed dropdown with items kept")
		}
	})

	t.Run("new list resets active index", func(t *testing.T) {
		d := NewDropdown()
		d.Set([]string{"a", "b"})
		d.Down()
		d.Set([]string{"c"})
		if d.Active() != -1 || !d.Open() {
			t.Errorf("expected reset and open, got active=%d open=%v", d.Active(), d.Open())
		}
	})

	t.Run("active index stays in range for any sequence", func(t *testing.T) {
		for n := 0; n <= 4; n++ {
			items := make([]string, n)
			for i := range items {
				items[i] = fmt.Sprint(i)
			}
			d := NewDropdown()
			d.Set(items)
			moves := "DDUDDDDUUUUUDUDUDDDDDDUU"
			for _, m := range moves {
				if m == 'D' {
					d.Down()
				} else {
					d.Up()
				}
				if d.Active() < -1 || d.Active() > n-1 {
					t.Fatalf("len %d: active %d out of range", n, d.Active())
				}
			}
		}
	})
}

func TestDebouncer(t *testing.T) {
	t.Run("only the latest run fires", func(t *testing.T) {
		var d Debouncer
		seqs := []uint64{d.Bump(), d.Bump(), d.Bump()}
		if d.Fire(seqs[0]) || d.Fire(seqs[1]) {
			t.Error("expected stale runs to be discarded")
		}
		if !d.Fire(seqs[2]) {
			t.Error("expected latest run to fire")
		}
		if d.Fire(seqs[2]) {
			t.Error("expected a run to fire at most once")
		}
	})

	t.Run("cancel drops the pending run", func(t *testing.T) {
		var d Debouncer
		seq := d.Bump()
		d.Cancel()
		if d.Fire(seq) || d.Pending() {
			t.Error("expected cancelled run not to fire")
		}
	})
}

func TestEngine(t *testing.T) {
	t.Run("search then select", func(t *testing.T) {
		dir := newDir(t, adaAndAlan())
		e := NewEngine()
		e.Apply(dir)
		if len(e.FilteredIDs()) != 2 {
			t.Fatalf("expected full list before typing, got %v", e.FilteredIDs())
		}

		var seq uint64
		for _, prefix := range []string{"a", "ad", "ada"} {
			seq = e.SetQuery(prefix)
		}
		if !e.Searching() {
			t.Error("expected searching flag during debounce")
		}
		if len(e.FilteredIDs()) != 2 {
			t.Error("expected no intermediate results before the debounce fires")
		}
		if !e.Fire(seq, dir) {
			t.Fatal("expected latest run to fire")
		}
		if e.Searching() {
			t.Error("expected searching flag cleared")
		}

		ids := e.FilteredIDs()
		if len(ids) != 1 || ids[0] != "u1" {
			t.Fatalf("expected [u1], got %v", ids)
		}
		sugg := e.Suggestions(dir)
		if len(sugg) != 1 || sugg[0].ID != "u1" || sugg[0].DisplayName != "Ada Lovelace" {
			t.Fatalf("unexpected suggestions %+v", sugg)
		}

		e.Dropdown().Down()
		id, ok := e.Dropdown().Enter()
		if !ok || !e.Commit(id, dir) {
			t.Fatal("expected commit of u1")
		}
		if e.Dropdown().Open() || len(e.Suggestions(dir)) != 0 {
			t.Error("expected dropdown closed and emptied")
		}
		if e.Query() != "Ada Lovelace" || e.Pinned() != "u1" {
			t.Errorf("expected query 'Ada Lovelace' pinned to u1, got %q / %q", e.Query(), e.Pinned())
		}
	})

	t.Run("role filter equality", func(t *testing.T) {
		users := append(adaAndAlan(), api.User{ID: "u3", Role: roles.Admin, Email: "root@x.io"})
		dir := newDir(t, users)
		e := NewEngine()
		seq := e.SetRole(roles.Admin)
		e.Fire(seq, dir)
		ids := e.FilteredIDs()
		if len(ids) != 2 || ids[0] != "u2" || ids[1] != "u3" {
			t.Errorf("expected [u2 u3], got %v", ids)
		}
		if e.Dropdown().Open() {
			t.Error("expected no suggestions for empty query")
		}
	})

	t.Run("stale debounce run is ignored", func(t *testing.T) {
		dir := newDir(t, adaAndAlan())
		e := NewEngine()
		e.Apply(dir)
		first := e.SetQuery("alan")
		e.SetQuery("ada")
		if e.Fire(first, dir) {
			t.Fatal("expected stale run to be discarded")
		}
		if len(e.FilteredIDs()) != 2 {
			t.Error("expected projection untouched by stale run")
		}
	})

	t.Run("apply during pending run uses the applied query", func(t *testing.T) {
		dir := newDir(t, adaAndAlan())
		e := NewEngine()
		e.Apply(dir)
		seq := e.SetQuery("ada")
		e.Apply(dir)
		if len(e.FilteredIDs()) != 2 || e.AppliedQuery() != "" {
			t.Fatalf("expected full list before the run, got %v", e.FilteredIDs())
		}
		e.Fire(seq, dir)
		if ids := e.FilteredIDs(); len(ids) != 1 || ids[0] != "u1" || e.AppliedQuery() != "ada" {
			t.Errorf("expected [u1] after the run, got %v", ids)
		}
	})

	t.Run("pending role change does not leak into apply", func(t *testing.T) {
		dir := newDir(t, adaAndAlan())
		e := NewEngine()
		e.Apply(dir)
		e.SetRole(roles.Admin)
		e.Apply(dir)
		if len(e.FilteredIDs()) != 2 {
			t.Errorf("expected full list until the run fires, got %v", e.FilteredIDs())
		}
	})

	t.Run("apply after patch re-evaluates role filter", func(t *testing.T) {
		dir := newDir(t, adaAndAlan())
		e := NewEngine()
		e.Fire(e.SetRole(roles.User), dir)
		dir.Patch("u1", func(u *api.User) { u.Role = roles.Maker })
		e.Apply(dir)
		if len(e.FilteredIDs()) != 0 {
			t.Errorf("expected u1 to leave the user filter, got %v", e.FilteredIDs())
		}
	})

	t.Run("pinned list survives apply", func(t *testing.T) {
		dir := newDir(t, adaAndAlan())
		e := NewEngine()
		e.Commit("u2", dir)
		dir.Patch("u2", func(u *api.User) { u.Role = roles.Maker })
		e.Apply(dir)
		ids := e.FilteredIDs()
		if len(ids) != 1 || ids[0] != "u2" {
			t.Errorf("expected pinned [u2], got %v", ids)
		}
		users := e.Filtered(dir)
		if users[0].Role != roles.Maker {
			t.Errorf("expected projection to resolve patched record, got %s", users[0].Role)
		}
	})

	t.Run("typing unpins", func(t *testing.T) {
		dir := newDir(t, adaAndAlan())
		e := NewEngine()
		e.Commit("u2", dir)
		e.Fire(e.SetQuery(""), dir)
		if e.Pinned() != "" || len(e.FilteredIDs()) != 2 {
			t.Errorf("expected full list after clearing query, got %v", e.FilteredIDs())
		}
	})

	t.Run("commit of unknown id fails", func(t *testing.T) {
		dir := newDir(t, adaAndAlan())
		if NewEngine().Commit("ghost", dir) {
			t.Error("expected commit to fail")
		}
	})

	t.Run("suggestion cardinality", func(t *testing.T) {
		users := make([]api.User, 0, 8)
		for i := 0; i < 8; i++ {
			users = append(users, api.User{ID: fmt.Sprintf("m%d", i), Email: fmt.Sprintf("maker%d@x.io", i), Role: roles.Maker})
		}
		dir := newDir(t, users)
		e := NewEngine()
		e.Fire(e.SetQuery("maker"), dir)
		if len(e.FilteredIDs()) != 8 || len(e.Suggestions(dir)) != 5 {
			t.Errorf("expected 8 filtered and 5 suggestions, got %d and %d", len(e.FilteredIDs()), len(e.Suggestions(dir)))
		}
		e.Fire(e.SetQuery("m"), dir)
		if len(e.Suggestions(dir)) != 0 || e.Dropdown().Open() {
			t.Error("expected no suggestions for one-character query")
		}
	})
}
