package notify

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/language"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

// BaseLocale is the canonical source locale for message catalogs.
const BaseLocale = "en-US"

// Catalog maps error codes to message templates for one locale.
type Catalog struct {
	tag      language.Tag
	messages map[apperrors.Code]string
}

// NewCatalog creates a catalog for the given tag with a defensive copy of
// the message map.
func NewCatalog(tag language.Tag, messages map[apperrors.Code]string) *Catalog {
	cloned := make(map[apperrors.Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{tag: tag, messages: cloned}
}

// Locale returns the BCP 47 locale identifier of this catalog.
func (c *Catalog) Locale() string {
	return c.tag.String()
}

// Format renders the message template for code with the given metadata.
// Falls back to the raw code when no template is registered. Templates run
// even with nil metadata so placeholder-only messages render consistently.
func (c *Catalog) Format(code apperrors.Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return string(code)
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

var (
	supportedCatalogs = []*Catalog{enUS, ptBR}

	localeMatcher = newMatcher(supportedCatalogs)
)

func newMatcher(catalogs []*Catalog) language.Matcher {
	tags := make([]language.Tag, 0, len(catalogs))
	for _, c := range catalogs {
		tags = append(tags, c.tag)
	}
	return language.NewMatcher(tags)
}

// CatalogFor picks the best supported catalog for the preferred locales,
// falling back to en-US. Unparseable preferences are skipped.
func CatalogFor(preferred ...string) *Catalog {
	tags := make([]language.Tag, 0, len(preferred))
	for _, raw := range preferred {
		tag, err := language.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}

	_, index, _ := localeMatcher.Match(tags...)
	if index < 0 || index >= len(supportedCatalogs) {
		return enUS
	}
	return supportedCatalogs[index]
}

var enUS = NewCatalog(language.AmericanEnglish, map[apperrors.Code]string{
	// Character errors
	apperrors.CodeCharacterEmptyUserID: "Character owner is required",
	apperrors.CodeCharacterEmptyName:   "Character name cannot be empty",
	apperrors.CodeCharacterSheetBadVer: "Character sheet version {{.Version}} is not supported",

	// Item errors
	apperrors.CodeItemEmptyCharacterID:    "Item must belong to a character",
	apperrors.CodeItemEmptyName:           "Item name cannot be empty",
	apperrors.CodeItemNegativeQuantity:    "Item quantity cannot be negative",
	apperrors.CodeItemContainerNotFound:   "Container not found in this inventory",
	apperrors.CodeItemContainerInvalid:    "{{.ContainerName}} cannot hold other items",
	apperrors.CodeItemContainerNested:     "Containers cannot be placed inside other containers",
	apperrors.CodeItemContainerSelf:       "An item cannot contain itself",
	apperrors.CodeItemContainerHasContent: "Empty the container before removing it",

	// Resource errors
	apperrors.CodeResourceEmptyCharacterID: "Resource must belong to a character",
	apperrors.CodeResourceEmptyName:        "Resource name cannot be empty",
	apperrors.CodeResourceInvalidMaxUses:   "Resource must have at least one use",
	apperrors.CodeResourceInvalidReset:     "Invalid resource reset trigger",
	apperrors.CodeResourceExhausted:        "{{.Name}} has no uses remaining",

	// Wallet/ledger errors
	apperrors.CodeWalletEmptyCharacterID: "Wallet must belong to a character",
	apperrors.CodeWalletNegativeBalance:  "Not enough coin for this transaction",
	apperrors.CodeLedgerEmptyReason:      "A reason is required for wallet transactions",
	apperrors.CodeLedgerEmptyDelta:       "Transaction must move at least one coin",

	// Journal errors
	apperrors.CodeEntryEmptyCharacterID: "Journal entry must belong to a character",
	apperrors.CodeEntryEmptyTitle:       "Journal entry title cannot be empty",
	apperrors.CodeTagEmptyUserID:        "Tag owner is required",
	apperrors.CodeTagEmptyName:          "Tag name cannot be empty",
	apperrors.CodeEntryTagIncomplete:    "Both an entry and a tag are required to link them",

	// Session file errors
	apperrors.CodeFileEmptyCharacterID: "Session file must belong to a character",
	apperrors.CodeFileEmptyName:        "Session file name cannot be empty",

	// Dice errors
	apperrors.CodeDiceMissing:         "At least one die must be specified",
	apperrors.CodeDiceInvalidSpec:     "Dice must have positive sides and count",
	apperrors.CodeDiceInvalidNotation: "Could not read dice notation",

	// Sync errors
	apperrors.CodeOffline:        "You are offline; changes were not saved",
	apperrors.CodeNoActiveUser:   "Sign in to sync your characters",
	apperrors.CodeNoActiveChar:   "Select a character first",
	apperrors.CodeRemoteFailed:   "The server rejected the change",
	apperrors.CodeMirrorFailed:   "Saved remotely, but the local copy may be stale",
	apperrors.CodeLedgerOrphaned: "Coins moved but the ledger entry failed to record",

	// Storage errors
	apperrors.CodeNotFound: "The requested record was not found",
})

var ptBR = NewCatalog(language.BrazilianPortuguese, map[apperrors.Code]string{
	apperrors.CodeCharacterEmptyUserID: "O personagem precisa de um dono",
	apperrors.CodeCharacterEmptyName:   "O nome do personagem não pode ficar vazio",

	apperrors.CodeItemEmptyName:           "O nome do item não pode ficar vazio",
	apperrors.CodeItemContainerNotFound:   "Recipiente não encontrado neste inventário",
	apperrors.CodeItemContainerNested:     "Recipientes não podem ficar dentro de outros recipientes",
	apperrors.CodeItemContainerSelf:       "Um item não pode conter a si mesmo",
	apperrors.CodeItemContainerHasContent: "Esvazie o recipiente antes de removê-lo",

	apperrors.CodeResourceExhausted: "{{.Name}} não tem mais usos",

	apperrors.CodeWalletNegativeBalance: "Moedas insuficientes para esta transação",
	apperrors.CodeLedgerEmptyReason:     "Transações precisam de um motivo",

	apperrors.CodeOffline:      "Você está offline; as alterações não foram salvas",
	apperrors.CodeNoActiveUser: "Entre na sua conta para sincronizar",
	apperrors.CodeNoActiveChar: "Selecione um personagem primeiro",
	apperrors.CodeRemoteFailed: "O servidor rejeitou a alteração",
	apperrors.CodeMirrorFailed: "Salvo remotamente, mas a cópia local pode estar desatualizada",

	apperrors.CodeNotFound: "O registro solicitado não foi encontrado",
})
