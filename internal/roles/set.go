package roles

// Set is an insertion-ordered set of roles.
type Set struct {
	order []Role
	index map[Role]struct{}
}

// NewSet builds a set from rs, dropping duplicates and keeping first-seen order.
func NewSet(rs ...Role) *Set {
	s := &Set{index: make(map[Role]struct{}, len(rs))}
	for _, r := range rs {
		s.Add(r)
	}
	return s
}

func (s *Set) Add(r Role) {
	if s.index == nil {
		s.index = make(map[Role]struct{})
	}
	if _, ok := s.index[r]; ok {
		return
	}
	s.index[r] = struct{}{}
	s.order = append(s.order, r)
}

func (s *Set) Remove(r Role) {
	if _, ok := s.index[r]; !ok {
		return
	}
	delete(s.index, r)
	for i, v := range s.order {
		if v == r {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle adds r when absent and removes it when present. It returns whether
// r is a member afterwards.
func (s *Set) Toggle(r Role) bool {
	if s.Has(r) {
		s.Remove(r)
		return false
	}
	s.Add(r)
	return true
}

func (s *Set) Has(r Role) bool {
	_, ok := s.index[r]
	return ok
}

func (s *Set) Len() int {
	return len(s.order)
}

// Slice returns the members in insertion order. The result is never nil so
// it encodes as a JSON array.
func (s *Set) Slice() []Role {
	out := make([]Role, len(s.order))
	copy(out, s.order)
	return out
}

// Equal reports set equality, ignoring order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, r := range s.order {
		if !other.Has(r) {
			return false
		}
	}
	return true
}

func (s *Set) Clone() *Set {
	return NewSet(s.order...)
}
