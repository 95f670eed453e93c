package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/satchel/internal/gateway"
	"github.com/louisbranch/satchel/internal/journal"
	"github.com/louisbranch/satchel/internal/wallet"
)

func TestNewValidatesInputs(t *testing.T) {
	if _, err := New("", "key"); err == nil {
		t.Fatal("expected error for blank base url")
	}
	if _, err := New("https://api.example.com", "  "); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestFetchCharactersRequestShape(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	var gotAPIKey string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"char-1","user_id":"user-1","name":"Mirela","sheet":{"version":1}}]`))
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key", WithTokenProvider(func() string { return "token-123" }))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	characters, err := client.FetchCharacters(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("fetch characters: %v", err)
	}

	if gotPath != "/rest/v1/characters" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if got := gotQuery["user_id"]; len(got) != 1 || got[0] != "eq.user-1" {
		t.Fatalf("unexpected user_id filter %v", got)
	}
	if gotAPIKey != "test-key" {
		t.Fatalf("unexpected apikey header %q", gotAPIKey)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if len(characters) != 1 || characters[0].Name != "Mirela" {
		t.Fatalf("unexpected characters %+v", characters)
	}
	if characters[0].Sheet.Version != 1 {
		t.Fatalf("expected sheet decode, got %+v", characters[0].Sheet)
	}
}

func TestSaveWalletSendsUpsertHeaders(t *testing.T) {
	var gotMethod string
	var gotPrefer string
	var gotOnConflict string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPrefer = r.Header.Get("Prefer")
		gotOnConflict = r.URL.Query().Get("on_conflict")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.SaveWallet(context.Background(), wallet.Wallet{CharacterID: "char-1", Gold: 10}); err != nil {
		t.Fatalf("save wallet: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotPrefer != "resolution=merge-duplicates,return=minimal" {
		t.Fatalf("unexpected Prefer header %q", gotPrefer)
	}
	if gotOnConflict != "character_id" {
		t.Fatalf("expected on_conflict=character_id, got %q", gotOnConflict)
	}
}

func TestDeleteItemFiltersByID(t *testing.T) {
	var gotMethod string
	var gotFilter string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotFilter = r.URL.Query().Get("id")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.DeleteItem(context.Background(), "item-9"); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if gotMethod != http.MethodDelete || gotFilter != "eq.item-9" {
		t.Fatalf("unexpected request %s id=%q", gotMethod, gotFilter)
	}
}

func TestFetchEntryTagsUsesInFilter(t *testing.T) {
	var gotFilter string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("entry_id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"entry_id":"entry-1","tag_id":"tag-1"}]`))
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	links, err := client.FetchEntryTags(context.Background(), []string{"entry-1", " ", "entry-2"})
	if err != nil {
		t.Fatalf("fetch entry tags: %v", err)
	}
	if gotFilter != "in.(entry-1,entry-2)" {
		t.Fatalf("unexpected entry_id filter %q", gotFilter)
	}
	if len(links) != 1 || links[0] != (journal.EntryTag{EntryID: "entry-1", TagID: "tag-1"}) {
		t.Fatalf("unexpected links %+v", links)
	}
}

func TestFetchEntryTagsEmptyInputSkipsNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	links, err := client.FetchEntryTags(context.Background(), nil)
	if err != nil {
		t.Fatalf("fetch entry tags: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no requests, got %d", calls)
	}
	if len(links) != 0 {
		t.Fatalf("expected no links, got %+v", links)
	}
}

func TestErrorResponsesDecodeIntoGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23505","message":"duplicate key value"}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.SaveWallet(context.Background(), wallet.Wallet{CharacterID: "char-1"})
	if err == nil {
		t.Fatal("expected error")
	}

	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected gateway.Error, got %T: %v", err, err)
	}
	if gwErr.Status != http.StatusConflict || gwErr.Code != "23505" {
		t.Fatalf("unexpected error fields %+v", gwErr)
	}
}

func TestFetchWalletAbsentIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := New(server.URL, "test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, found, err := client.FetchWallet(context.Background(), "char-1")
	if err != nil {
		t.Fatalf("fetch wallet: %v", err)
	}
	if found {
		t.Fatal("expected absent wallet")
	}
}
