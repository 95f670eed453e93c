// Package appstate holds the process-wide application state for the
// companion: the signed-in user, the character list, the active selection,
// and the cache snapshot mirrored from the local store.
//
// The store is an explicit, injectable object rather than a package-level
// singleton so tests and renderers can hold isolated instances. Mutations
// notify subscribers synchronously: N sequential Set calls trigger N full
// notification passes, with no batching or async scheduling.
//
// Store is not safe for concurrent use. The companion confines it to a
// single event goroutine, matching the cooperative UI model it backs.
package appstate

import (
	"sort"
	"strings"

	"github.com/louisbranch/satchel/internal/character"
	"github.com/louisbranch/satchel/internal/inventory"
	"github.com/louisbranch/satchel/internal/journal"
	"github.com/louisbranch/satchel/internal/resource"
	"github.com/louisbranch/satchel/internal/wallet"
)

// Cache is the in-memory snapshot of remote data for the active character.
type Cache struct {
	Items     []inventory.Item
	Resources []resource.Resource
	Entries   []journal.Entry
	Tags      []journal.Tag
	EntryTags []journal.EntryTag
	Wallet    *wallet.Wallet
}

// State is the mutable application state record. Callers receive the same
// object identity from Get and must not assume immutability.
type State struct {
	UserID            string
	Characters        []character.Character
	ActiveCharacterID string
	Offline           bool
	Cache             Cache
}

// Patch shallow-merges into State: nil fields leave the corresponding state
// key untouched.
type Patch struct {
	UserID            *string
	Characters        *[]character.Character
	ActiveCharacterID *string
	Offline           *bool
	Cache             *CachePatch
}

// CachePatch shallow-merges into Cache: nil fields leave the corresponding
// section untouched.
type CachePatch struct {
	Items     *[]inventory.Item
	Resources *[]resource.Resource
	Entries   *[]journal.Entry
	Tags      *[]journal.Tag
	EntryTags *[]journal.EntryTag
	Wallet    *wallet.Wallet
}

// Prefs is the durable local key-value contract used to remember the active
// character per user across sessions. A nil Prefs degrades to no-op reads.
type Prefs interface {
	ActiveCharacter(userID string) (string, bool)
	SetActiveCharacter(userID, characterID string) error
	ClearActiveCharacter(userID string) error
}

// Store owns one State instance and its subscriber list.
type Store struct {
	state       State
	prefs       Prefs
	subscribers map[int]func(*State)
	nextSubID   int
}

// New creates an empty store. prefs may be nil, in which case active-character
// persistence is skipped.
func New(prefs Prefs) *Store {
	return &Store{
		prefs:       prefs,
		subscribers: make(map[int]func(*State)),
	}
}

// Get returns the current state. The pointer is stable across calls; callers
// observing it after a mutation see the mutated record.
func (s *Store) Get() *State {
	return &s.state
}

// Set shallow-merges the patch into the state and notifies every subscriber
// exactly once with the full state.
func (s *Store) Set(patch Patch) {
	if patch.UserID != nil {
		s.state.UserID = *patch.UserID
	}
	if patch.Characters != nil {
		s.state.Characters = *patch.Characters
	}
	if patch.ActiveCharacterID != nil {
		s.state.ActiveCharacterID = NormalizeCharacterID(*patch.ActiveCharacterID)
	}
	if patch.Offline != nil {
		s.state.Offline = *patch.Offline
	}
	if patch.Cache != nil {
		s.mergeCache(*patch.Cache)
	}
	s.notify()
}

// SetCache shallow-merges the patch into the cache sub-state and notifies.
func (s *Store) SetCache(patch CachePatch) {
	s.mergeCache(patch)
	s.notify()
}

func (s *Store) mergeCache(patch CachePatch) {
	if patch.Items != nil {
		s.state.Cache.Items = *patch.Items
	}
	if patch.Resources != nil {
		s.state.Cache.Resources = *patch.Resources
	}
	if patch.Entries != nil {
		s.state.Cache.Entries = *patch.Entries
	}
	if patch.Tags != nil {
		s.state.Cache.Tags = *patch.Tags
	}
	if patch.EntryTags != nil {
		s.state.Cache.EntryTags = *patch.EntryTags
	}
	if patch.Wallet != nil {
		s.state.Cache.Wallet = patch.Wallet
	}
}

// SetItems replaces the cached item list and notifies.
func (s *Store) SetItems(items []inventory.Item) {
	s.SetCache(CachePatch{Items: &items})
}

// SetResources replaces the cached resource list and notifies.
func (s *Store) SetResources(resources []resource.Resource) {
	s.SetCache(CachePatch{Resources: &resources})
}

// SetJournal replaces the cached journal entries, tags, and links and notifies.
func (s *Store) SetJournal(entries []journal.Entry, tags []journal.Tag, links []journal.EntryTag) {
	s.SetCache(CachePatch{Entries: &entries, Tags: &tags, EntryTags: &links})
}

// SetTags replaces the cached tag list and notifies.
func (s *Store) SetTags(tags []journal.Tag) {
	s.SetCache(CachePatch{Tags: &tags})
}

// SetWallet replaces the cached wallet and notifies.
func (s *Store) SetWallet(w *wallet.Wallet) {
	s.SetCache(CachePatch{Wallet: w})
}

// Subscribe registers a callback invoked synchronously after every mutation.
// The returned function unsubscribes; calling it more than once is harmless.
func (s *Store) Subscribe(fn func(*State)) func() {
	if fn == nil {
		return func() {}
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		delete(s.subscribers, id)
	}
}

func (s *Store) notify() {
	// Snapshot the subscriber set so a subscriber unsubscribing during
	// notification does not skip its peers. Callbacks run in registration
	// order.
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.subscribers[id]; ok {
			fn(&s.state)
		}
	}
}

// NormalizeCharacterID canonicalizes a character id: surrounding whitespace
// is trimmed and blank values collapse to the empty selection.
func NormalizeCharacterID(id string) string {
	return strings.TrimSpace(id)
}

// SetActiveCharacter normalizes the id, validates it against the current
// character list (clearing the selection when it references a character the
// state does not hold), persists it per user, and notifies subscribers.
func (s *Store) SetActiveCharacter(id string) {
	id = NormalizeCharacterID(id)
	if id != "" && !s.hasCharacter(id) {
		id = ""
	}
	s.state.ActiveCharacterID = id

	// Persistence is best-effort: a missing or failing prefs store never
	// blocks the in-memory selection.
	if s.prefs != nil && s.state.UserID != "" {
		if id == "" {
			_ = s.prefs.ClearActiveCharacter(s.state.UserID)
		} else {
			_ = s.prefs.SetActiveCharacter(s.state.UserID, id)
		}
	}

	s.notify()
}

func (s *Store) hasCharacter(id string) bool {
	for _, c := range s.state.Characters {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ActiveCharacter returns the currently selected character, if any.
func (s *Store) ActiveCharacter() (character.Character, bool) {
	for _, c := range s.state.Characters {
		if c.ID == s.state.ActiveCharacterID {
			return c, true
		}
	}
	return character.Character{}, false
}

// ResetSessionState clears user, characters, selection, and cache back to
// initial empty values and notifies. Used on sign-out; the per-user stored
// selection in prefs survives for the next sign-in.
func (s *Store) ResetSessionState() {
	s.state = State{}
	s.notify()
}
