// Package store owns the in-memory AppState and its round-trip to a key-value Storage.
//
// The whole state is written as one JSON blob under a single key on every Save.
// Load never fails: missing, unreadable or empty data is replaced by a freshly
// seeded default list.
package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/model"
)

const (
	// DefaultKey is the storage slot the state lives under.
	DefaultKey = "shopping-app-v1"
	// DefaultListName names the list seeded when there are none.
	DefaultListName = "Meine Liste"
)

// ErrNotFound is returned by Storage.Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// Storage is a string-keyed blob store.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, blob string) error
}

// Store holds the app state and persists it through a Storage.
type Store struct {
	storage     Storage
	key         string
	defaultName string
	newID       func() string
	log         *zap.Logger

	state *model.AppState
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithDefaultListName overrides the name of seeded lists.
func WithDefaultListName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.defaultName = name
		}
	}
}

// WithIDGenerator replaces uuid.NewString, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger attaches a logger. Nil keeps the no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New returns a Store with an empty state. Call Load before use.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:     storage,
		key:         DefaultKey,
		defaultName: DefaultListName,
		newID:       uuid.NewString,
		log:         zap.NewNop(),
		state:       &model.AppState{Lists: []model.List{}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the live state. Mutations through it are persisted by the next Save.
func (s *Store) State() *model.AppState { return s.state }

// Key is the storage slot in use.
func (s *Store) Key() string { return s.key }

// NewID returns a fresh identifier.
func (s *Store) NewID() string { return s.newID() }

// NewDefaultList builds (but does not insert) a list with the default name.
func (s *Store) NewDefaultList() model.List {
	return model.List{ID: s.newID(), Name: s.defaultName, Items: []model.Item{}}
}

// Load replaces the in-memory state with what is stored under the key.
// Anything unusable falls back to a single seeded default list, which is saved right away.
func (s *Store) Load(ctx context.Context) {
	st, err := s.read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("could not load saved state, starting fresh",
				zap.String("key", s.key), zap.Error(err))
		}
		st = nil
	}

	if st == nil || len(st.Lists) == 0 {
		def := s.NewDefaultList()
		s.state = &model.AppState{Lists: []model.List{def}, ActiveListID: def.ID}
		s.log.Debug("seeded default list", zap.String("id", def.ID), zap.String("name", def.Name))
		s.saveQuietly(ctx)
		return
	}

	s.state = st
	if repair(st) {
		s.log.Debug("repaired loaded state", zap.String("active", st.ActiveListID))
		s.saveQuietly(ctx)
	}
}

// Save overwrites the stored blob with the full state.
func (s *Store) Save(ctx context.Context) error {
	b, err := json.Marshal(s.state)
	if err != nil {
		return errors.Wrap(err, "json marshal")
	}
	if err := s.storage.Set(ctx, s.key, string(b)); err != nil {
		return errors.Wrapf(err, "write %s", s.key)
	}
	return nil
}

func (s *Store) read(ctx context.Context) (*model.AppState, error) {
	raw, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	var st model.AppState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, errors.Wrap(err, "json unmarshal")
	}
	return &st, nil
}

func (s *Store) saveQuietly(ctx context.Context) {
	if err := s.Save(ctx); err != nil {
		s.log.Error("could not persist state", zap.String("key", s.key), zap.Error(err))
	}
}

// repair fixes a decoded state so the rest of the app can trust it:
// nil item slices become empty and a dangling active id points at the first list.
func repair(st *model.AppState) bool {
	changed := false
	for i := range st.Lists {
		if st.Lists[i].Items == nil {
			st.Lists[i].Items = []model.Item{}
			changed = true
		}
	}
	if st.ListIndex(st.ActiveListID) < 0 {
		st.ActiveListID = st.Lists[0].ID
		changed = true
	}
	return changed
}
