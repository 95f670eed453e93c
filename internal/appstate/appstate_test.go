package appstate

import (
	"testing"

	"github.com/louisbranch/satchel/internal/character"
	"github.com/louisbranch/satchel/internal/inventory"
	"github.com/louisbranch/satchel/internal/wallet"
)

type fakePrefs struct {
	values map[string]string
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{values: make(map[string]string)}
}

func (p *fakePrefs) ActiveCharacter(userID string) (string, bool) {
	value, ok := p.values[userID]
	return value, ok
}

func (p *fakePrefs) SetActiveCharacter(userID, characterID string) error {
	p.values[userID] = characterID
	return nil
}

func (p *fakePrefs) ClearActiveCharacter(userID string) error {
	delete(p.values, userID)
	return nil
}

func strPtr(s string) *string { return &s }

func testCharacters() []character.Character {
	return []character.Character{
		{ID: "char-1", UserID: "user-1", Name: "Mirela"},
		{ID: "char-2", UserID: "user-1", Name: "Tobren"},
	}
}

func TestSetShallowMergePreservesUnpatchedKeys(t *testing.T) {
	store := New(nil)
	chars := testCharacters()
	store.Set(Patch{UserID: strPtr("user-1"), Characters: &chars})

	offline := true
	store.Set(Patch{Offline: &offline})

	state := store.Get()
	if state.UserID != "user-1" {
		t.Fatalf("expected user id preserved, got %q", state.UserID)
	}
	if len(state.Characters) != 2 {
		t.Fatalf("expected characters preserved, got %d", len(state.Characters))
	}
	if !state.Offline {
		t.Fatal("expected offline flag set")
	}
}

func TestSetNotifiesEachSubscriberExactlyOncePerCall(t *testing.T) {
	store := New(nil)

	firstCalls := 0
	secondCalls := 0
	store.Subscribe(func(*State) { firstCalls++ })
	store.Subscribe(func(*State) { secondCalls++ })

	store.Set(Patch{UserID: strPtr("user-1")})
	store.Set(Patch{UserID: strPtr("user-2")})

	if firstCalls != 2 || secondCalls != 2 {
		t.Fatalf("expected 2 calls each, got %d and %d", firstCalls, secondCalls)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	store := New(nil)

	calls := 0
	unsubscribe := store.Subscribe(func(*State) { calls++ })

	store.Set(Patch{UserID: strPtr("user-1")})
	unsubscribe()
	unsubscribe() // second call is harmless
	store.Set(Patch{UserID: strPtr("user-2")})

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestGetReturnsSameIdentity(t *testing.T) {
	store := New(nil)
	first := store.Get()
	store.Set(Patch{UserID: strPtr("user-1")})
	second := store.Get()

	if first != second {
		t.Fatal("expected stable state identity across mutations")
	}
	if first.UserID != "user-1" {
		t.Fatal("expected earlier pointer to observe the mutation")
	}
}

func TestSetActiveCharacterPersistsNormalizedID(t *testing.T) {
	prefs := newFakePrefs()
	store := New(prefs)
	chars := testCharacters()
	store.Set(Patch{UserID: strPtr("user-1"), Characters: &chars})

	store.SetActiveCharacter("  char-2  ")

	if store.Get().ActiveCharacterID != "char-2" {
		t.Fatalf("expected normalized selection, got %q", store.Get().ActiveCharacterID)
	}
	stored, ok := prefs.ActiveCharacter("user-1")
	if !ok || stored != "char-2" {
		t.Fatalf("expected persisted selection char-2, got %q (%v)", stored, ok)
	}
}

func TestSetActiveCharacterClearsBlankAndUnknownIDs(t *testing.T) {
	prefs := newFakePrefs()
	store := New(prefs)
	chars := testCharacters()
	store.Set(Patch{UserID: strPtr("user-1"), Characters: &chars})

	store.SetActiveCharacter("char-1")
	store.SetActiveCharacter("   ")
	if store.Get().ActiveCharacterID != "" {
		t.Fatal("expected blank id to clear selection")
	}
	if _, ok := prefs.ActiveCharacter("user-1"); ok {
		t.Fatal("expected cleared selection to remove stored value")
	}

	store.SetActiveCharacter("char-9")
	if store.Get().ActiveCharacterID != "" {
		t.Fatal("expected unknown id to clear selection")
	}
}

func TestSetActiveCharacterWithoutPrefsDegradesToNoop(t *testing.T) {
	store := New(nil)
	chars := testCharacters()
	store.Set(Patch{UserID: strPtr("user-1"), Characters: &chars})

	store.SetActiveCharacter("char-1")
	if store.Get().ActiveCharacterID != "char-1" {
		t.Fatal("expected in-memory selection without prefs")
	}
}

func TestSetCacheMergesSections(t *testing.T) {
	store := New(nil)

	items := []inventory.Item{{ID: "item-1", Name: "Rope"}}
	store.SetItems(items)

	w := &wallet.Wallet{CharacterID: "char-1", Gold: 10}
	store.SetWallet(w)

	cache := store.Get().Cache
	if len(cache.Items) != 1 {
		t.Fatal("expected items preserved after wallet merge")
	}
	if cache.Wallet == nil || cache.Wallet.Gold != 10 {
		t.Fatalf("expected cached wallet, got %+v", cache.Wallet)
	}
}

func TestResetSessionState(t *testing.T) {
	store := New(newFakePrefs())
	chars := testCharacters()
	store.Set(Patch{UserID: strPtr("user-1"), Characters: &chars})
	store.SetActiveCharacter("char-1")
	store.SetItems([]inventory.Item{{ID: "item-1"}})

	notified := false
	store.Subscribe(func(state *State) {
		notified = true
		if state.UserID != "" || len(state.Characters) != 0 || state.ActiveCharacterID != "" {
			t.Fatalf("expected cleared state, got %+v", state)
		}
		if len(state.Cache.Items) != 0 || state.Cache.Wallet != nil {
			t.Fatal("expected cleared cache")
		}
	})

	store.ResetSessionState()
	if !notified {
		t.Fatal("expected reset to notify subscribers")
	}
}

func TestActiveCharacter(t *testing.T) {
	store := New(nil)
	chars := testCharacters()
	store.Set(Patch{Characters: &chars})

	if _, ok := store.ActiveCharacter(); ok {
		t.Fatal("expected no active character initially")
	}

	store.SetActiveCharacter("char-2")
	active, ok := store.ActiveCharacter()
	if !ok || active.Name != "Tobren" {
		t.Fatalf("expected Tobren active, got %+v (%v)", active, ok)
	}
}
