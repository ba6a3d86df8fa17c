package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/shoplist/internal/app"
	"github.com/idilsaglam/shoplist/internal/ui"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeNewList
	modeRename
	modeConfirm
)

// view is shared by every copy of Model; the Service's renderer marks it stale.
type view struct {
	stale bool
}

// Model is the Bubble Tea model. Every change goes through the Service.
type Model struct {
	ctx  context.Context
	svc  *app.Service
	view *view

	list list.Model
	ti   textinput.Model // shared text input (add, edit, new list, rename)
	mode mode

	editID    string
	confirmQ  string
	confirmFn func() error

	status    string
	statusErr bool

	width, height int
}

var (
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check"))
	deleteBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	newBind     = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new list"))
	renameBind  = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename"))
	switchBind  = key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "switch list"))
	dropBind    = key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete list"))
	clearBind   = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear checked"))
	clearAllKey = key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all"))
)

// New builds the model and hooks its refresh into svc.
func New(ctx context.Context, svc *app.Service) Model {
	v := &view{}
	svc.SetRenderer(app.RendererFunc(func() { v.stale = true }))

	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("Artikel", "Artikel")
	short := []key.Binding{toggleBind, addBind, editBind, deleteBind}
	full := []key.Binding{toggleBind, addBind, editBind, deleteBind, newBind, renameBind, switchBind, dropBind, clearBind, clearAllKey}
	l.AdditionalShortHelpKeys = func() []key.Binding { return short }
	l.AdditionalFullHelpKeys = func() []key.Binding { return full }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{ctx: ctx, svc: svc, view: v, list: l, ti: ti, width: 80, height: 24}
	m.sync()
	return m
}

// Run starts the program in the alternate screen and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// sync rebuilds the list from the active list in the state. The returned
// command re-runs an applied filter over the new items.
func (m *Model) sync() tea.Cmd {
	l := m.svc.ActiveList()
	if l == nil {
		return nil
	}
	idx := m.list.Index()
	m.list.Title = ui.ListHeader(l)
	cmd := m.list.SetItems(toListItems(l.Items))
	if n := len(m.list.Items()); idx >= n && n > 0 {
		idx = n - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.view.stale = false
	return cmd
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeConfirm:
			m.updateConfirm(msg)
		case modeAdd, modeEdit, modeNewList, modeRename:
			cmd = m.updateInput(msg)
		default:
			var quit bool
			quit, cmd = m.updateNormal(msg)
			if quit {
				return m, tea.Quit
			}
		}
	default:
		switch m.mode {
		case modeNormal:
			m.list, cmd = m.list.Update(msg)
		case modeAdd, modeEdit, modeNewList, modeRename:
			m.ti, cmd = m.ti.Update(msg)
		}
	}
	if m.view.stale {
		cmd = tea.Batch(cmd, m.sync())
	}
	return m, cmd
}

func (m *Model) run(err error) {
	if err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) updateNormal(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return false, cmd
	}
	ctx, svc := m.ctx, m.svc
	m.setStatus("", false)
	switch msg.String() {
	case "q", "esc":
		if m.list.FilterState() == list.FilterApplied && msg.String() == "esc" {
			m.list.ResetFilter()
			return false, nil
		}
		return true, nil
	case " ":
		if it, ok := m.selected(); ok {
			m.run(m.svc.ToggleItem(m.ctx, it.ID))
		}
	case "d":
		if it, ok := m.selected(); ok {
			m.run(m.svc.DeleteItem(m.ctx, it.ID))
		}
	case "a":
		return false, m.startInput(modeAdd, "", "Neuer Artikel...")
	case "e":
		if it, ok := m.selected(); ok {
			m.editID = it.ID
			return false, m.startInput(modeEdit, it.Text, app.MsgEditItem)
		}
	case "n":
		return false, m.startInput(modeNewList, "", "Name der neuen Liste...")
	case "r":
		if l := m.svc.ActiveList(); l != nil {
			return false, m.startInput(modeRename, l.Name, app.MsgRenameList)
		}
	case "[", "]":
		m.cycleList(map[string]int{"[": -1, "]": 1}[msg.String()])
	case "X":
		l := m.svc.ActiveList()
		if l == nil {
			return false, nil
		}
		id := l.ID
		m.askConfirm(fmt.Sprintf("%s (%s)", app.MsgDeleteList, l.Name), func() error {
			return svc.DeleteList(ctx, id)
		})
	case "c":
		n := m.svc.CompletedCount()
		if n == 0 {
			m.setStatus("Nichts abgehakt", false)
			return false, nil
		}
		m.askConfirm(app.ClearCompletedMessage(n), func() error {
			_, err := svc.ClearCompleted(ctx, app.Always)
			return err
		})
	case "C":
		m.askConfirm(app.MsgClearAll, func() error {
			_, err := svc.ClearAll(ctx, app.Always)
			return err
		})
	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return false, cmd
	}
	return false, nil
}

func (m *Model) cycleList(step int) {
	st := m.svc.State()
	n := len(st.Lists)
	if n < 2 {
		return
	}
	i := (st.ListIndex(st.ActiveListID) + step + n) % n
	m.run(m.svc.SelectList(m.ctx, st.Lists[i].ID))
	m.list.Select(0)
}

func (m *Model) askConfirm(question string, fn func() error) {
	m.mode = modeConfirm
	m.confirmQ = question
	m.confirmFn = fn
}

func (m *Model) updateConfirm(msg tea.KeyMsg) {
	fn := m.confirmFn
	m.mode, m.confirmQ, m.confirmFn = modeNormal, "", nil
	switch strings.ToLower(msg.String()) {
	case "y", "j":
		if fn != nil {
			m.run(fn())
		}
	default:
		m.setStatus("Abgebrochen", false)
	}
}

func (m *Model) startInput(md mode, value, placeholder string) tea.Cmd {
	m.mode = md
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	m.resize()
	return m.ti.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeNormal
	m.editID = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.stopInput()
		return nil
	case "enter":
		value := m.ti.Value()
		switch m.mode {
		case modeAdd:
			_, ok, err := m.svc.AddItem(m.ctx, value)
			if err == nil && !ok {
				m.setStatus("Text darf nicht leer sein", true)
				return nil
			}
			m.run(err)
			m.list.Select(0)
		case modeEdit:
			m.run(m.svc.EditItem(m.ctx, m.editID, &value))
		case modeNewList:
			_, err := m.svc.CreateList(m.ctx, value)
			m.run(err)
		case modeRename:
			m.run(m.svc.RenameList(m.ctx, value))
		}
		m.stopInput()
		return nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return cmd
}

func (m *Model) resize() {
	h := m.height - 6
	if m.mode != modeNormal {
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) tabs() string {
	t := ui.Current()
	st := m.svc.State()
	parts := make([]string, 0, len(st.Lists))
	for _, l := range st.Lists {
		name := fmt.Sprintf(" %s (%d) ", l.Name, len(l.Items))
		if l.ID == st.ActiveListID {
			parts = append(parts, t.Selected.Render(name))
		} else {
			parts = append(parts, t.Muted.Render(name))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) View() string {
	t := ui.Current()
	content := m.tabs() + "\n\n" + m.list.View()

	switch m.mode {
	case modeConfirm:
		content += "\n" + t.Error.Render(m.confirmQ) + " " + t.Muted.Render("[y/N]")
	case modeAdd, modeEdit, modeNewList, modeRename:
		bar := lipgloss.NewStyle().Border(t.Border).Padding(0, 1)
		if t.BorderColor != "" {
			bar = bar.BorderForeground(t.BorderColor)
		}
		title := map[mode]string{
			modeAdd:     "Artikel hinzufügen",
			modeEdit:    app.MsgEditItem,
			modeNewList: "Neue Liste",
			modeRename:  app.MsgRenameList,
		}[m.mode]
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	if m.status != "" {
		style := t.Muted
		if m.statusErr {
			style = t.Error
		}
		content += "\n" + style.Render(m.status)
	}
	return ui.PanelString([]string{content})
}
