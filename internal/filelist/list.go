package filelist

// ID names an independently undoable list.
type ID string

const (
	Content  ID = "content"
	Filename ID = "filename"
)

// Item is one unit of work tracked in a list.
type Item struct {
	Path    string
	Checked bool
	Status  Status
}

// HeaderState summarizes the checked flags of a list.
type HeaderState int

const (
	NoneChecked HeaderState = iota
	SomeChecked
	AllChecked
)

// List is an ordered, immutable set of items keyed by path.
type List struct {
	order []string
	items map[string]Item
}

// New builds a list from paths, all checked and pending. Duplicates are dropped.
func New(paths ...string) List {
	l, _ := List{}.Add(paths...)
	return l
}

func (l List) clone() List {
	order := make([]string, len(l.order))
	copy(order, l.order)
	items := make(map[string]Item, len(l.items))
	for k, v := range l.items {
		items[k] = v
	}
	return List{order: order, items: items}
}

// Len returns the number of items.
func (l List) Len() int {
	return len(l.order)
}

// Get returns the item stored for path.
func (l List) Get(path string) (Item, bool) {
	item, ok := l.items[path]
	return item, ok
}

// Contains reports whether path is in the list.
func (l List) Contains(path string) bool {
	_, ok := l.items[path]
	return ok
}

// Paths returns all paths in list order.
func (l List) Paths() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Items returns all items in list order.
func (l List) Items() []Item {
	out := make([]Item, 0, len(l.order))
	for _, path := range l.order {
		out = append(out, l.items[path])
	}
	return out
}

// Checked returns the checked paths in list order.
func (l List) Checked() []string {
	var out []string
	for _, path := range l.order {
		if l.items[path].Checked {
			out = append(out, path)
		}
	}
	return out
}

// Unchecked returns the unchecked paths in list order.
func (l List) Unchecked() []string {
	var out []string
	for _, path := range l.order {
		if !l.items[path].Checked {
			out = append(out, path)
		}
	}
	return out
}

// HeaderState reports whether all, none, or some items are checked. An empty
// list reports NoneChecked.
func (l List) HeaderState() HeaderState {
	if len(l.order) == 0 {
		return NoneChecked
	}
	checked := 0
	for _, item := range l.items {
		if item.Checked {
			checked++
		}
	}
	switch checked {
	case 0:
		return NoneChecked
	case len(l.order):
		return AllChecked
	default:
		return SomeChecked
	}
}

// Add appends new paths as checked pending items and reports how many were
// added. Paths already present are left as they are.
func (l List) Add(paths ...string) (List, int) {
	next := l.clone()
	added := 0
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, ok := next.items[path]; ok {
			continue
		}
		next.order = append(next.order, path)
		next.items[path] = Item{Path: path, Checked: true, Status: StatusPending}
		added++
	}
	return next, added
}

// Clear returns an empty list.
func (l List) Clear() List {
	return List{}
}

// Remove drops the given paths.
func (l List) Remove(paths ...string) List {
	drop := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		drop[path] = struct{}{}
	}
	return l.filter(func(item Item) bool {
		_, ok := drop[item.Path]
		return !ok
	})
}

// RemoveUnchecked keeps only checked items.
func (l List) RemoveUnchecked() List {
	return l.filter(func(item Item) bool { return item.Checked })
}

func (l List) filter(keep func(Item) bool) List {
	next := List{items: make(map[string]Item, len(l.items))}
	for _, path := range l.order {
		item := l.items[path]
		if keep(item) {
			next.order = append(next.order, path)
			next.items[path] = item
		}
	}
	return next
}

// SetChecked sets the checked flag for the given paths; unknown paths are ignored.
func (l List) SetChecked(checked bool, paths ...string) List {
	next := l.clone()
	for _, path := range paths {
		if item, ok := next.items[path]; ok {
			item.Checked = checked
			next.items[path] = item
		}
	}
	return next
}

// Toggle flips the checked flag of path.
func (l List) Toggle(path string) List {
	item, ok := l.items[path]
	if !ok {
		return l
	}
	return l.SetChecked(!item.Checked, path)
}

// SetAllChecked sets the checked flag on every item.
func (l List) SetAllChecked(checked bool) List {
	return l.SetChecked(checked, l.order...)
}

// ToggleAll unchecks everything when every item is checked and checks
// everything otherwise.
func (l List) ToggleAll() List {
	return l.SetAllChecked(l.HeaderState() != AllChecked)
}

// ResetStatus marks the given paths pending again.
func (l List) ResetStatus(paths ...string) List {
	next := l.clone()
	for _, path := range paths {
		if item, ok := next.items[path]; ok {
			item.Status = StatusPending
			next.items[path] = item
		}
	}
	return next
}

// ApplyStatuses records statuses for the paths present in the list.
func (l List) ApplyStatuses(statuses map[string]Status) List {
	next := l.clone()
	for path, status := range statuses {
		if item, ok := next.items[path]; ok {
			item.Status = status
			next.items[path] = item
		}
	}
	return next
}

// Rekey replaces oldPath with newPath at the same position, keeping its
// checked flag and recording status. If newPath already exists the old entry
// is dropped and the existing one updated.
func (l List) Rekey(oldPath, newPath string, status Status) List {
	item, ok := l.items[oldPath]
	if !ok {
		return l
	}
	next := l.clone()
	delete(next.items, oldPath)
	item.Path = newPath
	item.Status = status
	if _, exists := next.items[newPath]; exists {
		next.items[newPath] = item
		return next.filterOrder()
	}
	for i, path := range next.order {
		if path == oldPath {
			next.order[i] = newPath
			break
		}
	}
	next.items[newPath] = item
	return next
}

func (l List) filterOrder() List {
	order := l.order[:0:0]
	for _, path := range l.order {
		if _, ok := l.items[path]; ok {
			order = append(order, path)
		}
	}
	l.order = order
	return l
}

// Equal reports whether both lists hold the same items in the same order.
func (l List) Equal(other List) bool {
	if len(l.order) != len(other.order) {
		return false
	}
	for i, path := range l.order {
		if other.order[i] != path {
			return false
		}
		if l.items[path] != other.items[path] {
			return false
		}
	}
	return true
}
