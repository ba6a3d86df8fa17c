package model

// AppState is everything the app persists: the lists and which one is active.
// Serialized as a single JSON blob by the store.
type AppState struct {
	Lists        []List `json:"lists"`
	ActiveListID string `json:"activeListId"`
}

// List is a named collection of items, newest first.
type List struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item is a single entry on a list.
// CreatedAt is Unix milliseconds.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Checked   bool   `json:"checked"`
	CreatedAt int64  `json:"createdAt"`
}

// ListIndex returns the position of the list with id, or -1.
func (s *AppState) ListIndex(id string) int {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return i
		}
	}
	return -1
}

// ActiveList returns a pointer into Lists, or nil when the active id is dangling.
func (s *AppState) ActiveList() *List {
	if i := s.ListIndex(s.ActiveListID); i >= 0 {
		return &s.Lists[i]
	}
	return nil
}

// Clone returns a deep copy.
func (s *AppState) Clone() *AppState {
	out := &AppState{ActiveListID: s.ActiveListID}
	if s.Lists != nil {
		out.Lists = make([]List, len(s.Lists))
		for i, l := range s.Lists {
			out.Lists[i] = l
			if l.Items != nil {
				out.Lists[i].Items = make([]Item, len(l.Items))
				copy(out.Lists[i].Items, l.Items)
			}
		}
	}
	return out
}

// ItemIndex returns the position of the item with id, or -1.
func (l *List) ItemIndex(id string) int {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Stats counts checked and unchecked items.
func (l *List) Stats() (completed, open int) {
	for _, it := range l.Items {
		if it.Checked {
			completed++
		} else {
			open++
		}
	}
	return
}

// Partition splits items into open and completed groups, keeping list order in both.
func Partition(items []Item) (open, completed []Item) {
	for _, it := range items {
		if it.Checked {
			completed = append(completed, it)
		} else {
			open = append(open, it)
		}
	}
	return
}
