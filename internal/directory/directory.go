// Package directory holds the authoritative in-memory copy of every user
// record the console works with. Records are stored once, keyed by id;
// every other view (filtered list, selection) refers to them by id.
package directory

import (
	"github.com/hashicorp/go-memdb"
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"github.com/productbazar/bazaaradmin/pkg/logger"
)

const (
	tableUsers = "users"
	indexID    = "id"
	indexRole  = "role"
)

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableUsers: {
				Name: tableUsers,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexRole: {
						Name:         indexRole,
						AllowMissing: true,
						Indexer:      &memdb.StringFieldIndex{Field: "Role"},
					},
				},
			},
		},
	}
}

// Directory is the user store. It is owned by a single UI task; memdb keeps
// individual reads consistent but the server order is not synchronised.
type Directory struct {
	db    *memdb.MemDB
	order []string
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{db: mustMemDB()}
}

func mustMemDB() *memdb.MemDB {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		panic("directory: invalid schema: " + err.Error())
	}
	return db
}

// Replace swaps the whole content for users, keeping server order. Records
// without an id cannot be addressed and are skipped; a repeated id keeps its
// first position and its last value.
func (d *Directory) Replace(users []api.User) error {
	db := mustMemDB()
	txn := db.Txn(true)
	defer txn.Abort()

	order := make([]string, 0, len(users))
	seen := make(map[string]struct{}, len(users))
	skipped := 0
	for _, u := range users {
		if u.ID == "" {
			skipped++
			continue
		}
		rec := u.Clone()
		if err := txn.Insert(tableUsers, &rec); err != nil {
			return err
		}
		if _, ok := seen[u.ID]; !ok {
			seen[u.ID] = struct{}{}
			order = append(order, u.ID)
		}
	}
	txn.Commit()

	if skipped > 0 {
		logger.Warn("directory_records_skipped", map[string]interface{}{
			"reason":  "missing_id",
			"skipped": skipped,
		})
	}

	d.db = db
	d.order = order
	return nil
}

// Len returns the number of records.
func (d *Directory) Len() int {
	return len(d.order)
}

// Get returns a copy of the record for id.
func (d *Directory) Get(id string) (api.User, bool) {
	u := d.lookup(id)
	if u == nil {
		return api.User{}, false
	}
	return u.Clone(), true
}

// Has reports whether id is present.
func (d *Directory) Has(id string) bool {
	return d.lookup(id) != nil
}

func (d *Directory) lookup(id string) *api.User {
	if id == "" {
		return nil
	}
	raw, err := d.db.Txn(false).First(tableUsers, indexID, id)
	if err != nil || raw == nil {
		return nil
	}
	return raw.(*api.User)
}

// All returns copies of every record in server order.
func (d *Directory) All() []api.User {
	out := make([]api.User, 0, len(d.order))
	for _, id := range d.order {
		if u := d.lookup(id); u != nil {
			out = append(out, u.Clone())
		}
	}
	return out
}

// IDs returns every id in server order.
func (d *Directory) IDs() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Patch applies fn to a copy of the record for id and stores the result. It
// reports false, without calling fn, when id is unknown. fn must not change
// the id.
func (d *Directory) Patch(id string, fn func(u *api.User)) bool {
	current := d.lookup(id)
	if current == nil {
		return false
	}
	next := current.Clone()
	fn(&next)
	next.ID = id

	txn := d.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(tableUsers, &next); err != nil {
		logger.Error("directory_patch_failed", err, map[string]interface{}{"user_id": id})
		return false
	}
	txn.Commit()
	return true
}

// CountByRole returns how many records hold r as their primary role.
func (d *Directory) CountByRole(r roles.Role) int {
	it, err := d.db.Txn(false).Get(tableUsers, indexRole, string(r))
	if err != nil {
		return 0
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}
