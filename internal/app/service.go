// Package app holds the mutators over the shopping list state.
//
// Every mutator validates its input, changes the Store's state, saves the whole
// state and then asks the Renderer to refresh. Unknown ids and blank input are
// silent no-ops; the only errors returned are storage failures.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

// NewListName is used when a list is created with a blank name.
const NewListName = "Neue Liste"

// Messages shown by the confirm and prompt collaborators.
const (
	MsgEditItem    = "Artikel bearbeiten"
	MsgClearAll    = "Alle Artikel dieser Liste löschen?"
	MsgDeleteList  = "Diese Liste löschen?"
	MsgRenameList  = "Listenname:"
	msgClearChecks = "Alle %d abgehakten Artikel löschen?"
)

// ClearCompletedMessage is the confirmation text for removing n checked items.
func ClearCompletedMessage(n int) string { return fmt.Sprintf(msgClearChecks, n) }

// Service applies mutations to a Store.
type Service struct {
	st      *store.Store
	render  Renderer
	log     *zap.Logger
	now     func() time.Time
	newName string
}

// Option configures a Service.
type Option func(*Service)

// WithRenderer sets the collaborator refreshed after every mutation.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.render = r
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides time.Now for item timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNewListName overrides the name given to lists created without one.
func WithNewListName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.newName = name
		}
	}
}

// New wraps a loaded Store.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		st:      st,
		render:  nopRenderer{},
		log:     zap.NewNop(),
		now:     time.Now,
		newName: NewListName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRenderer swaps the renderer, for front-ends that are built after the Service.
func (s *Service) SetRenderer(r Renderer) {
	if r == nil {
		r = nopRenderer{}
	}
	s.render = r
}

// State exposes the current state for reading.
func (s *Service) State() *model.AppState { return s.st.State() }

// ActiveList is a shortcut for State().ActiveList().
func (s *Service) ActiveList() *model.List { return s.st.State().ActiveList() }

// CompletedCount is the number of checked items on the active list.
func (s *Service) CompletedCount() int {
	l := s.ActiveList()
	if l == nil {
		return 0
	}
	n, _ := l.Stats()
	return n
}

func (s *Service) commit(ctx context.Context, op string, fields ...zap.Field) error {
	if err := s.st.Save(ctx); err != nil {
		return errors.Wrap(err, op)
	}
	s.log.Debug(op, fields...)
	s.render.Refresh()
	return nil
}

// CreateList appends a list and makes it active. A blank name gets the default.
func (s *Service) CreateList(ctx context.Context, name string) (model.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.newName
	}
	st := s.st.State()
	l := model.List{ID: s.st.NewID(), Name: name, Items: []model.Item{}}
	st.Lists = append(st.Lists, l)
	st.ActiveListID = l.ID
	return l, s.commit(ctx, "create list", zap.String("id", l.ID), zap.String("name", name))
}

// DeleteList removes a list. Removing the last one seeds a default list;
// removing the active one activates the first remaining list.
func (s *Service) DeleteList(ctx context.Context, id string) error {
	st := s.st.State()
	idx := st.ListIndex(id)
	if idx < 0 {
		return nil
	}
	st.Lists = append(st.Lists[:idx], st.Lists[idx+1:]...)
	if len(st.Lists) == 0 {
		def := s.st.NewDefaultList()
		st.Lists = append(st.Lists, def)
		st.ActiveListID = def.ID
	}
	if st.ActiveListID == id {
		st.ActiveListID = st.Lists[0].ID
	}
	return s.commit(ctx, "delete list", zap.String("id", id))
}

// SelectList makes id the active list.
func (s *Service) SelectList(ctx context.Context, id string) error {
	st := s.st.State()
	if st.ListIndex(id) < 0 || st.ActiveListID == id {
		return nil
	}
	st.ActiveListID = id
	return s.commit(ctx, "select list", zap.String("id", id))
}

// RenameList renames the active list. Blank names are ignored.
func (s *Service) RenameList(ctx context.Context, name string) error {
	l := s.ActiveList()
	if l == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	l.Name = name
	return s.commit(ctx, "rename list", zap.String("id", l.ID), zap.String("name", name))
}

// AddItem puts a new unchecked item at the front of the active list.
// The bool is false when nothing was added.
func (s *Service) AddItem(ctx context.Context, text string) (model.Item, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false, nil
	}
	l := s.ActiveList()
	if l == nil {
		return model.Item{}, false, nil
	}
	it := model.Item{
		ID:        s.st.NewID(),
		Text:      text,
		CreatedAt: s.now().UnixMilli(),
	}
	l.Items = append([]model.Item{it}, l.Items...)
	return it, true, s.commit(ctx, "add item", zap.String("id", it.ID))
}

// ToggleItem flips the checked flag of an item on the active list.
func (s *Service) ToggleItem(ctx context.Context, itemID string) error {
	l := s.ActiveList()
	if l == nil {
		return nil
	}
	i := l.ItemIndex(itemID)
	if i < 0 {
		return nil
	}
	l.Items[i].Checked = !l.Items[i].Checked
	return s.commit(ctx, "toggle item", zap.String("id", itemID), zap.Bool("checked", l.Items[i].Checked))
}

// DeleteItem removes an item from the active list.
func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	l := s.ActiveList()
	if l == nil {
		return nil
	}
	i := l.ItemIndex(itemID)
	if i < 0 {
		return nil
	}
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	return s.commit(ctx, "delete item", zap.String("id", itemID))
}

// EditItem replaces an item's text with the trimmed newText.
// A nil newText means the edit was cancelled. An empty string is applied as-is.
func (s *Service) EditItem(ctx context.Context, itemID string, newText *string) error {
	if newText == nil {
		return nil
	}
	l := s.ActiveList()
	if l == nil {
		return nil
	}
	i := l.ItemIndex(itemID)
	if i < 0 {
		return nil
	}
	l.Items[i].Text = strings.TrimSpace(*newText)
	return s.commit(ctx, "edit item", zap.String("id", itemID))
}

// EditItemWithPrompt asks p for the new text, prefilled with the current one.
func (s *Service) EditItemWithPrompt(ctx context.Context, itemID string, p Prompter) error {
	l := s.ActiveList()
	if l == nil {
		return nil
	}
	i := l.ItemIndex(itemID)
	if i < 0 {
		return nil
	}
	answer, err := p.PromptText(MsgEditItem, l.Items[i].Text)
	if err != nil {
		return errors.Wrap(err, "prompt")
	}
	return s.EditItem(ctx, itemID, answer)
}

// ClearCompleted removes all checked items from the active list once c agrees.
// c is not asked when nothing is checked. Returns how many items were removed.
func (s *Service) ClearCompleted(ctx context.Context, c Confirmer) (int, error) {
	l := s.ActiveList()
	if l == nil {
		return 0, nil
	}
	n, _ := l.Stats()
	if n == 0 {
		return 0, nil
	}
	if !c.Confirm(ClearCompletedMessage(n)) {
		return 0, nil
	}
	open, _ := model.Partition(l.Items)
	if open == nil {
		open = []model.Item{}
	}
	l.Items = open
	return n, s.commit(ctx, "clear completed", zap.String("list", l.ID), zap.Int("removed", n))
}

// ClearAll empties the active list once c agrees.
func (s *Service) ClearAll(ctx context.Context, c Confirmer) (int, error) {
	l := s.ActiveList()
	if l == nil {
		return 0, nil
	}
	if !c.Confirm(MsgClearAll) {
		return 0, nil
	}
	n := len(l.Items)
	l.Items = []model.Item{}
	return n, s.commit(ctx, "clear all", zap.String("list", l.ID), zap.Int("removed", n))
}
