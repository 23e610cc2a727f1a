package search

// Dropdown is the keyboard model of the suggestion list. Items are user ids;
// Active is -1 when nothing is highlighted.
type Dropdown struct {
	items  []string
	active int
	open   bool
}

func NewDropdown() Dropdown {
	return Dropdown{active: -1}
}

// Set replaces the items, resets the active index and opens the dropdown
// when there is something to show.
func (d *Dropdown) Set(items []string) {
	d.items = append([]string(nil), items...)
	d.active = -1
	d.open = len(d.items) > 0
}

func (d *Dropdown) Items() []string {
	return append([]string(nil), d.items...)
}

func (d *Dropdown) Len() int {
	return len(d.items)
}

func (d *Dropdown) Active() int {
	return d.active
}

// Open reports whether the dropdown is shown.
func (d *Dropdown) Open() bool {
	return d.open && len(d.items) > 0
}

// Down moves the highlight toward the end, stopping at the last item.
func (d *Dropdown) Down() {
	if len(d.items) == 0 {
		return
	}
	if d.active < len(d.items)-1 {
		d.active++
	}
}

// Up moves the highlight toward the start, stopping at the first item.
func (d *Dropdown) Up() {
	if len(d.items) == 0 {
		return
	}
	if d.active > 0 {
		d.active--
	} else {
		d.active = 0
	}
}

// Enter returns the highlighted id, if any.
func (d *Dropdown) Enter() (string, bool) {
	if d.active < 0 || d.active >= len(d.items) {
		return "", false
	}
	return d.items[d.active], true
}

// Escape closes the dropdown and clears the highlight.
func (d *Dropdown) Escape() {
	d.open = false
	d.active = -1
}

// Close hides the dropdown, as an outside click does.
func (d *Dropdown) Close() {
	d.open = false
}
