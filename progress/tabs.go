package progress

// Tabs tracks the active block of the one-block-at-a-time view.
type Tabs struct {
	Active int
	count  int
}

// SetCount updates the number of visible blocks and falls back to the first
// tab when the active one no longer exists.
func (t *Tabs) SetCount(n int) {
	t.count = n
	if t.Active >= n && n > 0 {
		t.Active = 0
	}
	if t.Active < 0 {
		t.Active = 0
	}
}

func (t *Tabs) Count() int {
	return t.count
}

func (t *Tabs) HasPrev() bool {
	return t.Active > 0
}

func (t *Tabs) HasNext() bool {
	return t.Active < t.count-1
}

func (t *Tabs) Prev() {
	if t.HasPrev() {
		t.Active--
	}
}

func (t *Tabs) Next() {
	if t.HasNext() {
		t.Active++
	}
}

// Select jumps to tab i when it exists.
func (t *Tabs) Select(i int) {
	if i >= 0 && i < t.count {
		t.Active = i
	}
}

// Reset goes back to the first tab, used when the category filter changes.
func (t *Tabs) Reset() {
	t.Active = 0
}
