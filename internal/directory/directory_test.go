package directory

import (
	"testing"

	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

func seed() []api.User {
	return []api.User{
		{ID: "u3", FirstName: "Grace", LastName: "Hopper", Role: roles.Maker},
		{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Role: roles.User},
		{ID: "u2", FirstName: "Alan", LastName: "Turing", Role: roles.Admin, SecondaryRoles: []roles.Role{roles.Investor}},
	}
}

func TestDirectory_Replace(t *testing.T) {
	t.Run("keeps server order", func(t *testing.T) {
		d := New()
		if err := d.Replace(seed()); err != nil {
			t.Fatalf("Replace() returned error: %v", err)
		}
		ids := d.IDs()
		want := []string{"u3", "u1", "u2"}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, ids)
			}
		}
		all := d.All()
		if len(all) != 3 || all[0].FirstName != "Grace" {
			t.Errorf("unexpected All() result %+v", all)
		}
	})

	t.Run("replaces previous content", func(t *testing.T) {
		d := New()
		_ = d.Replace(seed())
		_ = d.Replace([]api.User{{ID: "u9", Role: roles.Agency}})
		if d.Len() != 1 || d.Has("u1") {
			t.Errorf("expected only u9, got %v", d.IDs())
		}
	})

	t.Run("skips records without id and collapses duplicates", func(t *testing.T) {
		d := New()
		err := d.Replace([]api.User{
			{ID: "a", FirstName: "first"},
			{FirstName: "ghost"},
			{ID: "b"},
			{ID: "a", FirstName: "second"},
		})
		if err != nil {
			t.Fatalf("Replace() returned error: %v", err)
		}
		if d.Len() != 2 {
			t.Fatalf("expected 2 records, got %v", d.IDs())
		}
		u, _ := d.Get("a")
		if u.FirstName != "second" {
			t.Errorf("expected last value to win, got %q", u.FirstName)
		}
		if d.IDs()[0] != "a" {
			t.Errorf("expected first position to be kept, got %v", d.IDs())
		}
	})

	t.Run("does not alias caller slices", func(t *testing.T) {
		users := seed()
		d := New()
		_ = d.Replace(users)
		users[2].SecondaryRoles[0] = roles.Maker
		u, _ := d.Get("u2")
		if u.SecondaryRoles[0] != roles.Investor {
			t.Error("expected directory copy to be independent of input")
		}
	})
}

func TestDirectory_Patch(t *testing.T) {
	t.Run("merges fields into the record", func(t *testing.T) {
		d := New()
		_ = d.Replace(seed())

		ok := d.Patch("u1", func(u *api.User) { u.Role = roles.Maker })
		if !ok {
			t.Fatal("expected patch to succeed")
		}
		u, _ := d.Get("u1")
		if u.Role != roles.Maker || u.FirstName != "Ada" {
			t.Errorf("unexpected record after patch %+v", u)
		}
		if d.CountByRole(roles.Maker) != 2 || d.CountByRole(roles.User) != 0 {
			t.Errorf("expected role index to follow the patch")
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		d := New()
		_ = d.Replace(seed())
		called := false
		if d.Patch("nope", func(u *api.User) { called = true }) {
			t.Error("expected patch of unknown id to report false")
		}
		if called {
			t.Error("expected mutator not to run")
		}
	})

	t.Run("id cannot be changed", func(t *testing.T) {
		d := New()
		_ = d.Replace(seed())
		d.Patch("u1", func(u *api.User) { u.ID = "hijacked" })
		if !d.Has("u1") || d.Has("hijacked") {
			t.Errorf("expected id to be preserved, got %v", d.IDs())
		}
	})

	t.Run("returned copies are isolated", func(t *testing.T) {
		d := New()
		_ = d.Replace(seed())
		u, _ := d.Get("u2")
		u.SecondaryRoles[0] = roles.Agency
		again, _ := d.Get("u2")
		if again.SecondaryRoles[0] != roles.Investor {
			t.Error("expected stored record to be unaffected")
		}
	})
}

func TestDirectory_CountByRole(t *testing.T) {
	d := New()
	_ = d.Replace(seed())
	tests := map[roles.Role]int{
		roles.Admin:    1,
		roles.Maker:    1,
		roles.Investor: 0,
	}
	for r, want := range tests {
		if got := d.CountByRole(r); got != want {
			t.Errorf("CountByRole(%s) = %d, want %d", r, got, want)
		}
	}
}

func TestDirectory_Empty(t *testing.T) {
	d := New()
	if d.Len() != 0 || len(d.All()) != 0 {
		t.Error("expected empty directory")
	}
	if _, ok := d.Get(""); ok {
		t.Error("expected empty id lookup to miss")
	}
}
