package ui

import (
	"fmt"
	"io"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/resolver"
)

const maxTextWidth = 60

// Section titles.
const (
	TitleOpen      = "Einkaufen"
	TitleCompleted = "Gekauft"
	TitleLists     = "Listen"
)

// ViewOptions tune how a list is drawn.
type ViewOptions struct {
	Group bool // open items first, then a "Gekauft" section
}

// ListHeader is "<name>  ✔ done  • open  Total n".
func ListHeader(l *model.List) string {
	t := Current()
	done, open := l.Stats()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(l.Name),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymOpen), open,
		t.Accent.Render("Total"), len(l.Items),
	)
}

// ItemLine renders one item with its 1-based position and short id.
func ItemLine(pos int, it model.Item) string {
	t := Current()
	box, text := t.Muted.Render(t.BoxUnchecked), truncate(it.Text)
	if it.Checked {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(text)
	}
	return fmt.Sprintf("%s %s %s %s",
		t.Muted.Render(fmt.Sprintf("%2d.", pos)), box, text,
		t.Muted.Render(resolver.Short(it.ID)))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxTextWidth {
		return string(r[:maxTextWidth-3]) + "..."
	}
	return s
}

// ItemLines renders items in the given order.
func ItemLines(items []model.Item) []string {
	if len(items) == 0 {
		return []string{Current().Muted.Render("keine Artikel")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		out = append(out, ItemLine(i+1, it))
	}
	return out
}

// GroupLines renders the open items, then the completed section when it has anything.
func GroupLines(items []model.Item) []string {
	t := Current()
	open, done := model.Partition(items)
	lines := []string{t.Accent.Render(TitleOpen)}
	if len(open) == 0 {
		lines = append(lines, t.Muted.Render("(keine)"))
	} else {
		lines = append(lines, ItemLines(open)...)
	}
	if len(done) > 0 {
		lines = append(lines, "", t.Accent.Render(TitleCompleted))
		lines = append(lines, ItemLines(done)...)
	}
	return lines
}

// ListLines is the full active-list panel body: header, progress, items.
// shown may be a filtered subset of l.Items; nil means all of them.
func ListLines(l *model.List, shown []model.Item, opt ViewOptions) []string {
	t := Current()
	if shown == nil {
		shown = l.Items
	}
	done, open := l.Stats()
	lines := []string{
		ListHeader(l),
		t.Muted.Render(ProgressBar(done, done+open, 28)),
		"",
	}
	if opt.Group {
		lines = append(lines, GroupLines(shown)...)
	} else {
		lines = append(lines, ItemLines(shown)...)
	}
	return lines
}

// ListsLines renders the list overview with item counts; the active list is marked.
func ListsLines(st *model.AppState) []string {
	t := Current()
	lines := []string{t.Title.Render(TitleLists), ""}
	for _, l := range st.Lists {
		marker := "  "
		name := l.Name
		if l.ID == st.ActiveListID {
			marker = t.Accent.Render(t.SymActive) + " "
			name = t.Title.Render(name)
		}
		lines = append(lines, fmt.Sprintf("%s%s %s %s",
			marker, name,
			t.Pending.Render(fmt.Sprintf("(%d)", len(l.Items))),
			t.Muted.Render(resolver.Short(l.ID))))
	}
	return lines
}

// ListRenderer redraws the active list to W whenever the state changes.
type ListRenderer struct {
	W       io.Writer
	State   func() *model.AppState
	Options ViewOptions
}

// Refresh implements app.Renderer.
func (r *ListRenderer) Refresh() {
	if r == nil || r.W == nil || r.State == nil {
		return
	}
	l := r.State().ActiveList()
	if l == nil {
		return
	}
	Panel(r.W, ListLines(l, nil, r.Options))
}
