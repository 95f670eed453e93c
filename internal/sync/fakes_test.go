package sync

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/louisbranch/satchel/internal/character"
	"github.com/louisbranch/satchel/internal/inventory"
	"github.com/louisbranch/satchel/internal/journal"
	"github.com/louisbranch/satchel/internal/resource"
	"github.com/louisbranch/satchel/internal/session"
	"github.com/louisbranch/satchel/internal/sessionfile"
	"github.com/louisbranch/satchel/internal/wallet"
)

// fakeStore is an in-memory localstore.Store.
type fakeStore struct {
	characters   map[string]character.Character
	items        map[string]inventory.Item
	resources    map[string]resource.Resource
	wallets      map[string]wallet.Wallet
	transactions map[string]wallet.Transaction
	entries      map[string]journal.Entry
	tags         map[string]journal.Tag
	links        map[journal.EntryTag]bool
	files        map[string]sessionfile.File
	prefs        map[string]string

	putCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		characters:   map[string]character.Character{},
		items:        map[string]inventory.Item{},
		resources:    map[string]resource.Resource{},
		wallets:      map[string]wallet.Wallet{},
		transactions: map[string]wallet.Transaction{},
		entries:      map[string]journal.Entry{},
		tags:         map[string]journal.Tag{},
		links:        map[journal.EntryTag]bool{},
		files:        map[string]sessionfile.File{},
		prefs:        map[string]string{},
	}
}

func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) PutCharacters(_ context.Context, characters []character.Character) error {
	s.putCalls++
	for _, c := range characters {
		s.characters[c.ID] = c
	}
	return nil
}

func (s *fakeStore) CharactersByUser(_ context.Context, userID string) ([]character.Character, error) {
	out := []character.Character{}
	for _, c := range s.characters {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sortCharactersByName(out)
	return out, nil
}

func (s *fakeStore) PutItems(_ context.Context, items []inventory.Item) error {
	s.putCalls++
	for _, item := range items {
		s.items[item.ID] = item
	}
	return nil
}

func (s *fakeStore) ItemsByCharacter(_ context.Context, characterID string) ([]inventory.Item, error) {
	out := []inventory.Item{}
	for _, item := range s.items {
		if item.CharacterID == characterID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteItem(_ context.Context, itemID string) error {
	delete(s.items, itemID)
	return nil
}

func (s *fakeStore) PutResources(_ context.Context, resources []resource.Resource) error {
	s.putCalls++
	for _, r := range resources {
		s.resources[r.ID] = r
	}
	return nil
}

func (s *fakeStore) ResourcesByCharacter(_ context.Context, characterID string) ([]resource.Resource, error) {
	out := []resource.Resource{}
	for _, r := range s.resources {
		if r.CharacterID == characterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) PutWallet(_ context.Context, w wallet.Wallet) error {
	s.putCalls++
	s.wallets[w.CharacterID] = w
	return nil
}

func (s *fakeStore) WalletByCharacter(_ context.Context, characterID string) (wallet.Wallet, bool, error) {
	w, ok := s.wallets[characterID]
	return w, ok, nil
}

func (s *fakeStore) PutTransactions(_ context.Context, transactions []wallet.Transaction) error {
	s.putCalls++
	for _, t := range transactions {
		s.transactions[t.ID] = t
	}
	return nil
}

func (s *fakeStore) TransactionsByCharacter(_ context.Context, characterID string) ([]wallet.Transaction, error) {
	out := []wallet.Transaction{}
	for _, t := range s.transactions {
		if t.CharacterID == characterID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) PutEntries(_ context.Context, entries []journal.Entry) error {
	s.putCalls++
	for _, e := range entries {
		s.entries[e.ID] = e
	}
	return nil
}

func (s *fakeStore) EntriesByCharacter(_ context.Context, characterID string) ([]journal.Entry, error) {
	out := []journal.Entry{}
	for _, e := range s.entries {
		if e.CharacterID == characterID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) PutTags(_ context.Context, tags []journal.Tag) error {
	s.putCalls++
	for _, t := range tags {
		s.tags[t.ID] = t
	}
	return nil
}

func (s *fakeStore) TagsByUser(_ context.Context, userID string) ([]journal.Tag, error) {
	out := []journal.Tag{}
	for _, t := range s.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeStore) PutEntryTags(_ context.Context, links []journal.EntryTag) error {
	s.putCalls++
	for _, l := range links {
		s.links[l] = true
	}
	return nil
}

func (s *fakeStore) DeleteEntryTag(_ context.Context, link journal.EntryTag) error {
	delete(s.links, link)
	return nil
}

func (s *fakeStore) EntryTagsByEntries(_ context.Context, entryIDs []string) ([]journal.EntryTag, error) {
	wanted := map[string]bool{}
	for _, id := range entryIDs {
		wanted[id] = true
	}
	out := []journal.EntryTag{}
	for l := range s.links {
		if wanted[l.EntryID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeStore) PutFiles(_ context.Context, files []sessionfile.File) error {
	s.putCalls++
	for _, f := range files {
		s.files[f.ID] = f
	}
	return nil
}

func (s *fakeStore) FilesByCharacter(_ context.Context, characterID string) ([]sessionfile.File, error) {
	out := []sessionfile.File{}
	for _, f := range s.files {
		if f.CharacterID == characterID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *fakeStore) GetPreference(_ context.Context, userID, key string) (string, bool, error) {
	value, ok := s.prefs[userID+"/"+key]
	return value, ok, nil
}

func (s *fakeStore) SetPreference(_ context.Context, userID, key, value string) error {
	s.prefs[userID+"/"+key] = value
	return nil
}

func (s *fakeStore) DeletePreference(_ context.Context, userID, key string) error {
	delete(s.prefs, userID+"/"+key)
	return nil
}

func sortCharactersByName(characters []character.Character) {
	for i := 1; i < len(characters); i++ {
		for j := i; j > 0 && characters[j].Name < characters[j-1].Name; j-- {
			characters[j], characters[j-1] = characters[j-1], characters[j]
		}
	}
}

// spyGateway counts calls and serves canned data.
type spyGateway struct {
	calls int

	characters   []character.Character
	items        []inventory.Item
	resources    []resource.Resource
	wallet       *wallet.Wallet
	transactions []wallet.Transaction
	entries      []journal.Entry
	tags         []journal.Tag
	links        []journal.EntryTag
	files        []sessionfile.File

	savedWallets      []wallet.Wallet
	savedTransactions []wallet.Transaction
	savedItems        []inventory.Item
	savedResources    []resource.Resource
	deletedItems      []string

	failSave        error
	failTransaction error
}

func (g *spyGateway) FetchCharacters(context.Context, string) ([]character.Character, error) {
	g.calls++
	return g.characters, nil
}

func (g *spyGateway) CreateCharacter(_ context.Context, c character.Character) error {
	g.calls++
	if g.failSave != nil {
		return g.failSave
	}
	g.characters = append(g.characters, c)
	return nil
}

func (g *spyGateway) UpdateCharacter(context.Context, character.Character) error {
	g.calls++
	return g.failSave
}

func (g *spyGateway) FetchItems(context.Context, string) ([]inventory.Item, error) {
	g.calls++
	return g.items, nil
}

func (g *spyGateway) SaveItem(_ context.Context, item inventory.Item) error {
	g.calls++
	if g.failSave != nil {
		return g.failSave
	}
	g.savedItems = append(g.savedItems, item)
	return nil
}

func (g *spyGateway) DeleteItem(_ context.Context, itemID string) error {
	g.calls++
	g.deletedItems = append(g.deletedItems, itemID)
	return nil
}

func (g *spyGateway) FetchResources(context.Context, string) ([]resource.Resource, error) {
	g.calls++
	return g.resources, nil
}

func (g *spyGateway) SaveResource(_ context.Context, r resource.Resource) error {
	g.calls++
	if g.failSave != nil {
		return g.failSave
	}
	g.savedResources = append(g.savedResources, r)
	return nil
}

func (g *spyGateway) FetchWallet(context.Context, string) (wallet.Wallet, bool, error) {
	g.calls++
	if g.wallet == nil {
		return wallet.Wallet{}, false, nil
	}
	return *g.wallet, true, nil
}

func (g *spyGateway) SaveWallet(_ context.Context, w wallet.Wallet) error {
	g.calls++
	if g.failSave != nil {
		return g.failSave
	}
	g.savedWallets = append(g.savedWallets, w)
	return nil
}

func (g *spyGateway) FetchTransactions(context.Context, string) ([]wallet.Transaction, error) {
	g.calls++
	return g.transactions, nil
}

func (g *spyGateway) AppendTransaction(_ context.Context, t wallet.Transaction) error {
	g.calls++
	if g.failTransaction != nil {
		return g.failTransaction
	}
	g.savedTransactions = append(g.savedTransactions, t)
	return nil
}

func (g *spyGateway) FetchEntries(context.Context, string) ([]journal.Entry, error) {
	g.calls++
	return g.entries, nil
}

func (g *spyGateway) SaveEntry(context.Context, journal.Entry) error {
	g.calls++
	return g.failSave
}

func (g *spyGateway) FetchTags(context.Context, string) ([]journal.Tag, error) {
	g.calls++
	return g.tags, nil
}

func (g *spyGateway) SaveTag(context.Context, journal.Tag) error {
	g.calls++
	return g.failSave
}

func (g *spyGateway) FetchEntryTags(context.Context, []string) ([]journal.EntryTag, error) {
	g.calls++
	return g.links, nil
}

func (g *spyGateway) LinkEntryTag(context.Context, journal.EntryTag) error {
	g.calls++
	return g.failSave
}

func (g *spyGateway) UnlinkEntryTag(context.Context, journal.EntryTag) error {
	g.calls++
	return g.failSave
}

func (g *spyGateway) FetchFiles(context.Context, string) ([]sessionfile.File, error) {
	g.calls++
	return g.files, nil
}

func (g *spyGateway) SaveFile(context.Context, sessionfile.File) error {
	g.calls++
	return g.failSave
}

// signedInSession builds a session for the given user id using an unsigned
// test token.
func signedInSession(t *testing.T, userID string) *session.Session {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	payload, err := json.Marshal(map[string]string{"sub": userID})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	enc := base64.RawURLEncoding
	token := enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "."

	s := session.New()
	if err := s.SetAccessToken(token); err != nil {
		t.Fatalf("set access token: %v", err)
	}
	return s
}
