package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/satchel/internal/character"
	"github.com/louisbranch/satchel/internal/inventory"
	"github.com/louisbranch/satchel/internal/journal"
	"github.com/louisbranch/satchel/internal/resource"
	"github.com/louisbranch/satchel/internal/sessionfile"
	"github.com/louisbranch/satchel/internal/wallet"
)

const (
	tableCharacters   = "characters"
	tableItems        = "items"
	tableResources    = "resources"
	tableWallets      = "wallets"
	tableTransactions = "wallet_transactions"
	tableEntries      = "journal_entries"
	tableTags         = "tags"
	tableEntryTags    = "entry_tags"
	tableFiles        = "session_files"

	preferUpsert = "resolution=merge-duplicates,return=minimal"
)

type characterRow struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Sheet     json.RawMessage `json:"sheet,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toCharacterRow(c character.Character) (characterRow, error) {
	sheet, err := json.Marshal(c.Sheet)
	if err != nil {
		return characterRow{}, fmt.Errorf("encode sheet for character %s: %w", c.ID, err)
	}
	return characterRow{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Sheet:     sheet,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func (r characterRow) toDomain() (character.Character, error) {
	c := character.Character{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if len(r.Sheet) > 0 {
		if err := json.Unmarshal(r.Sheet, &c.Sheet); err != nil {
			return character.Character{}, fmt.Errorf("decode sheet for character %s: %w", r.ID, err)
		}
	}
	return c, nil
}

// FetchCharacters lists the user's characters from the backend.
func (c *Client) FetchCharacters(ctx context.Context, userID string) ([]character.Character, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", eq(userID))
	query.Set("order", "name.asc")

	var rows []characterRow
	if err := c.get(ctx, tableCharacters, query, &rows); err != nil {
		return nil, err
	}
	characters := make([]character.Character, 0, len(rows))
	for _, row := range rows {
		parsed, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		characters = append(characters, parsed)
	}
	return characters, nil
}

// CreateCharacter inserts a new character row.
func (c *Client) CreateCharacter(ctx context.Context, ch character.Character) error {
	row, err := toCharacterRow(ch)
	if err != nil {
		return err
	}
	return c.write(ctx, http.MethodPost, tableCharacters, nil, row, "")
}

// UpdateCharacter patches an existing character row by id.
func (c *Client) UpdateCharacter(ctx context.Context, ch character.Character) error {
	row, err := toCharacterRow(ch)
	if err != nil {
		return err
	}
	query := url.Values{}
	query.Set("id", eq(ch.ID))
	return c.write(ctx, http.MethodPatch, tableCharacters, query, row, "")
}

type itemRow struct {
	ID              string    `json:"id"`
	CharacterID     string    `json:"character_id"`
	Name            string    `json:"name"`
	Quantity        int       `json:"quantity"`
	Weight          float64   `json:"weight"`
	Volume          float64   `json:"volume"`
	Value           float64   `json:"value"`
	Category        string    `json:"category"`
	ContainerItemID string    `json:"container_item_id,omitempty"`
	EquipSlots      []string  `json:"equip_slots,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toItemRow(item inventory.Item) itemRow {
	return itemRow{
		ID:              item.ID,
		CharacterID:     item.CharacterID,
		Name:            item.Name,
		Quantity:        item.Quantity,
		Weight:          item.Weight,
		Volume:          item.Volume,
		Value:           item.Value,
		Category:        string(item.Category),
		ContainerItemID: item.ContainerItemID,
		EquipSlots:      item.EquipSlots,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func (r itemRow) toDomain() inventory.Item {
	return inventory.Item{
		ID:              r.ID,
		CharacterID:     r.CharacterID,
		Name:            r.Name,
		Quantity:        r.Quantity,
		Weight:          r.Weight,
		Volume:          r.Volume,
		Value:           r.Value,
		Category:        inventory.Category(r.Category),
		ContainerItemID: r.ContainerItemID,
		EquipSlots:      r.EquipSlots,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FetchItems lists a character's inventory from the backend.
func (c *Client) FetchItems(ctx context.Context, characterID string) ([]inventory.Item, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("character_id", eq(characterID))
	query.Set("order", "name.asc")

	var rows []itemRow
	if err := c.get(ctx, tableItems, query, &rows); err != nil {
		return nil, err
	}
	items := make([]inventory.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

// SaveItem upserts one inventory item by id.
func (c *Client) SaveItem(ctx context.Context, item inventory.Item) error {
	return c.write(ctx, http.MethodPost, tableItems, nil, toItemRow(item), preferUpsert)
}

// DeleteItem removes one inventory item by id.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	query := url.Values{}
	query.Set("id", eq(itemID))
	return c.write(ctx, http.MethodDelete, tableItems, query, nil, "")
}

type resourceRow struct {
	ID            string    `json:"id"`
	CharacterID   string    `json:"character_id"`
	Name          string    `json:"name"`
	MaxUses       int       `json:"max_uses"`
	UsedCount     int       `json:"used_count"`
	ResetOn       string    `json:"reset_on"`
	RecoverAmount int       `json:"recover_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FetchResources lists a character's resources from the backend.
func (c *Client) FetchResources(ctx context.Context, characterID string) ([]resource.Resource, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("character_id", eq(characterID))
	query.Set("order", "name.asc")

	var rows []resourceRow
	if err := c.get(ctx, tableResources, query, &rows); err != nil {
		return nil, err
	}
	resources := make([]resource.Resource, 0, len(rows))
	for _, row := range rows {
		resources = append(resources, resource.Resource{
			ID:            row.ID,
			CharacterID:   row.CharacterID,
			Name:          row.Name,
			MaxUses:       row.MaxUses,
			UsedCount:     row.UsedCount,
			ResetOn:       resource.ResetTrigger(row.ResetOn),
			RecoverAmount: row.RecoverAmount,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return resources, nil
}

// SaveResource upserts one resource by id.
func (c *Client) SaveResource(ctx context.Context, r resource.Resource) error {
	row := resourceRow{
		ID:            r.ID,
		CharacterID:   r.CharacterID,
		Name:          r.Name,
		MaxUses:       r.MaxUses,
		UsedCount:     r.UsedCount,
		ResetOn:       string(r.ResetOn),
		RecoverAmount: r.RecoverAmount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	return c.write(ctx, http.MethodPost, tableResources, nil, row, preferUpsert)
}

type walletRow struct {
	CharacterID string    `json:"character_id"`
	Platinum    int       `json:"platinum"`
	Gold        int       `json:"gold"`
	Silver      int       `json:"silver"`
	Copper      int       `json:"copper"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FetchWallet loads a character's wallet; absent wallets are not an error.
func (c *Client) FetchWallet(ctx context.Context, characterID string) (wallet.Wallet, bool, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("character_id", eq(characterID))

	var rows []walletRow
	if err := c.get(ctx, tableWallets, query, &rows); err != nil {
		return wallet.Wallet{}, false, err
	}
	if len(rows) == 0 {
		return wallet.Wallet{}, false, nil
	}
	row := rows[0]
	return wallet.Wallet{
		CharacterID: row.CharacterID,
		Platinum:    row.Platinum,
		Gold:        row.Gold,
		Silver:      row.Silver,
		Copper:      row.Copper,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}

// SaveWallet upserts the wallet keyed by character id.
func (c *Client) SaveWallet(ctx context.Context, w wallet.Wallet) error {
	query := url.Values{}
	query.Set("on_conflict", "character_id")
	row := walletRow{
		CharacterID: w.CharacterID,
		Platinum:    w.Platinum,
		Gold:        w.Gold,
		Silver:      w.Silver,
		Copper:      w.Copper,
		UpdatedAt:   w.UpdatedAt,
	}
	return c.write(ctx, http.MethodPost, tableWallets, query, row, preferUpsert)
}

type transactionRow struct {
	ID          string    `json:"id"`
	CharacterID string    `json:"character_id"`
	Platinum    int       `json:"platinum"`
	Gold        int       `json:"gold"`
	Silver      int       `json:"silver"`
	Copper      int       `json:"copper"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// FetchTransactions lists a character's ledger rows, newest first.
func (c *Client) FetchTransactions(ctx context.Context, characterID string) ([]wallet.Transaction, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("character_id", eq(characterID))
	query.Set("order", "occurred_at.desc")

	var rows []transactionRow
	if err := c.get(ctx, tableTransactions, query, &rows); err != nil {
		return nil, err
	}
	transactions := make([]wallet.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, wallet.Transaction{
			ID:          row.ID,
			CharacterID: row.CharacterID,
			Delta: wallet.Delta{
				Platinum: row.Platinum,
				Gold:     row.Gold,
				Silver:   row.Silver,
				Copper:   row.Copper,
			},
			Reason:     row.Reason,
			OccurredAt: row.OccurredAt,
		})
	}
	return transactions, nil
}

// AppendTransaction inserts one ledger row. Ledger rows are append-only.
func (c *Client) AppendTransaction(ctx context.Context, t wallet.Transaction) error {
	row := transactionRow{
		ID:          t.ID,
		CharacterID: t.CharacterID,
		Platinum:    t.Delta.Platinum,
		Gold:        t.Delta.Gold,
		Silver:      t.Delta.Silver,
		Copper:      t.Delta.Copper,
		Reason:      t.Reason,
		OccurredAt:  t.OccurredAt,
	}
	return c.write(ctx, http.MethodPost, tableTransactions, nil, row, "")
}

type entryRow struct {
	ID            string    `json:"id"`
	CharacterID   string    `json:"character_id"`
	Title         string    `json:"title"`
	Date          time.Time `json:"entry_date"`
	SessionNumber int       `json:"session_number"`
	Content       string    `json:"content"`
	Pinned        bool      `json:"pinned"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FetchEntries lists a character's journal entries from the backend.
func (c *Client) FetchEntries(ctx context.Context, characterID string) ([]journal.Entry, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("character_id", eq(characterID))
	query.Set("order", "entry_date.desc")

	var rows []entryRow
	if err := c.get(ctx, tableEntries, query, &rows); err != nil {
		return nil, err
	}
	entries := make([]journal.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, journal.Entry{
			ID:            row.ID,
			CharacterID:   row.CharacterID,
			Title:         row.Title,
			Date:          row.Date,
			SessionNumber: row.SessionNumber,
			Content:       row.Content,
			Pinned:        row.Pinned,
			CreatedAt:     row.CreatedAt,
			UpdatedAt:     row.UpdatedAt,
		})
	}
	return entries, nil
}

// SaveEntry upserts one journal entry by id.
func (c *Client) SaveEntry(ctx context.Context, e journal.Entry) error {
	row := entryRow{
		ID:            e.ID,
		CharacterID:   e.CharacterID,
		Title:         e.Title,
		Date:          e.Date,
		SessionNumber: e.SessionNumber,
		Content:       e.Content,
		Pinned:        e.Pinned,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	return c.write(ctx, http.MethodPost, tableEntries, nil, row, preferUpsert)
}

type tagRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// FetchTags lists the user's tags from the backend.
func (c *Client) FetchTags(ctx context.Context, userID string) ([]journal.Tag, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", eq(userID))
	query.Set("order", "name.asc")

	var rows []tagRow
	if err := c.get(ctx, tableTags, query, &rows); err != nil {
		return nil, err
	}
	tags := make([]journal.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, journal.Tag{
			ID:        row.ID,
			UserID:    row.UserID,
			Name:      row.Name,
			Color:     row.Color,
			CreatedAt: row.CreatedAt,
		})
	}
	return tags, nil
}

// SaveTag upserts one tag by id.
func (c *Client) SaveTag(ctx context.Context, t journal.Tag) error {
	row := tagRow{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
	return c.write(ctx, http.MethodPost, tableTags, nil, row, preferUpsert)
}

type entryTagRow struct {
	EntryID string `json:"entry_id"`
	TagID   string `json:"tag_id"`
}

// FetchEntryTags lists entry-tag links for the given entry ids.
func (c *Client) FetchEntryTags(ctx context.Context, entryIDs []string) ([]journal.EntryTag, error) {
	ids := make([]string, 0, len(entryIDs))
	for _, entryID := range entryIDs {
		entryID = strings.TrimSpace(entryID)
		if entryID != "" {
			ids = append(ids, entryID)
		}
	}
	if len(ids) == 0 {
		return []journal.EntryTag{}, nil
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("entry_id", "in.("+strings.Join(ids, ",")+")")

	var rows []entryTagRow
	if err := c.get(ctx, tableEntryTags, query, &rows); err != nil {
		return nil, err
	}
	links := make([]journal.EntryTag, 0, len(rows))
	for _, row := range rows {
		links = append(links, journal.EntryTag{EntryID: row.EntryID, TagID: row.TagID})
	}
	return links, nil
}

// LinkEntryTag upserts one entry-tag link on its composite key.
func (c *Client) LinkEntryTag(ctx context.Context, link journal.EntryTag) error {
	query := url.Values{}
	query.Set("on_conflict", "entry_id,tag_id")
	row := entryTagRow{EntryID: link.EntryID, TagID: link.TagID}
	return c.write(ctx, http.MethodPost, tableEntryTags, query, row, preferUpsert)
}

// UnlinkEntryTag removes one entry-tag link.
func (c *Client) UnlinkEntryTag(ctx context.Context, link journal.EntryTag) error {
	query := url.Values{}
	query.Set("entry_id", eq(link.EntryID))
	query.Set("tag_id", eq(link.TagID))
	return c.write(ctx, http.MethodDelete, tableEntryTags, query, nil, "")
}

type fileRow struct {
	ID            string    `json:"id"`
	CharacterID   string    `json:"character_id"`
	Name          string    `json:"name"`
	Size          int64     `json:"size"`
	MimeType      string    `json:"mime_type"`
	SessionNumber int       `json:"session_number"`
	Notes         string    `json:"notes"`
	StoragePath   string    `json:"storage_path"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// FetchFiles lists a character's session file metadata, newest first.
func (c *Client) FetchFiles(ctx context.Context, characterID string) ([]sessionfile.File, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("character_id", eq(characterID))
	query.Set("order", "uploaded_at.desc")

	var rows []fileRow
	if err := c.get(ctx, tableFiles, query, &rows); err != nil {
		return nil, err
	}
	files := make([]sessionfile.File, 0, len(rows))
	for _, row := range rows {
		files = append(files, sessionfile.File{
			ID:            row.ID,
			CharacterID:   row.CharacterID,
			Name:          row.Name,
			Size:          row.Size,
			MimeType:      row.MimeType,
			SessionNumber: row.SessionNumber,
			Notes:         row.Notes,
			StoragePath:   row.StoragePath,
			UploadedAt:    row.UploadedAt,
		})
	}
	return files, nil
}

// SaveFile upserts one session file metadata row by id.
func (c *Client) SaveFile(ctx context.Context, f sessionfile.File) error {
	row := fileRow{
		ID:            f.ID,
		CharacterID:   f.CharacterID,
		Name:          f.Name,
		Size:          f.Size,
		MimeType:      f.MimeType,
		SessionNumber: f.SessionNumber,
		Notes:         f.Notes,
		StoragePath:   f.StoragePath,
		UploadedAt:    f.UploadedAt,
	}
	return c.write(ctx, http.MethodPost, tableFiles, nil, row, preferUpsert)
}
