package state

import (
	"github.com/atomicstack/keyring-tui/internal/keyring"
	uistate "github.com/atomicstack/keyring-tui/internal/ui/state"
)

// KeyStore caches the unfiltered keys of each category together with the
// table position the user left the category at.
type KeyStore interface {
	Keys(keyring.Category) ([]*keyring.Key, bool)
	SetKeys(keyring.Category, []*keyring.Key)
	TableState(keyring.Category) (uistate.TableState, bool)
	SetTableState(keyring.Category, uistate.TableState)
	Load(map[keyring.Category][]keyring.Key, keyring.Detail)
}

type keyStore struct {
	keys   map[keyring.Category][]*keyring.Key
	states map[keyring.Category]uistate.TableState
}

// NewKeyStore returns an empty store.
func NewKeyStore() KeyStore {
	return &keyStore{
		keys:   make(map[keyring.Category][]*keyring.Key),
		states: make(map[keyring.Category]uistate.TableState),
	}
}

func (s *keyStore) Keys(category keyring.Category) ([]*keyring.Key, bool) {
	keys, ok := s.keys[category]
	if !ok {
		return nil, false
	}
	return cloneKeyRefs(keys), true
}

func (s *keyStore) SetKeys(category keyring.Category, keys []*keyring.Key) {
	s.keys[category] = cloneKeyRefs(keys)
}

func (s *keyStore) TableState(category keyring.Category) (uistate.TableState, bool) {
	st, ok := s.states[category]
	return st, ok
}

func (s *keyStore) SetTableState(category keyring.Category, st uistate.TableState) {
	s.states[category] = st
}

// Load replaces every cached category with fresh records at the given detail
// level and forgets the saved table positions.
func (s *keyStore) Load(all map[keyring.Category][]keyring.Key, detail keyring.Detail) {
	s.keys = make(map[keyring.Category][]*keyring.Key, len(all))
	s.states = make(map[keyring.Category]uistate.TableState)
	for _, category := range keyring.Categories() {
		records := all[category]
		refs := make([]*keyring.Key, len(records))
		for i := range records {
			key := records[i].Clone()
			key.Detail = detail
			refs[i] = &key
		}
		s.keys[category] = refs
	}
}

func cloneKeyRefs(keys []*keyring.Key) []*keyring.Key {
	if len(keys) == 0 {
		return []*keyring.Key{}
	}
	dup := make([]*keyring.Key, len(keys))
	copy(dup, keys)
	return dup
}
