package errors

import (
	stderrors "errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Character errors
	CodeCharacterEmptyUserID Code = "CHARACTER_EMPTY_USER_ID"
	CodeCharacterEmptyName   Code = "CHARACTER_EMPTY_NAME"
	CodeCharacterSheetBadVer Code = "CHARACTER_SHEET_UNSUPPORTED_VERSION"

	// Item errors
	CodeItemEmptyCharacterID    Code = "ITEM_EMPTY_CHARACTER_ID"
	CodeItemEmptyName           Code = "ITEM_EMPTY_NAME"
	CodeItemNegativeQuantity    Code = "ITEM_NEGATIVE_QUANTITY"
	CodeItemContainerNotFound   Code = "ITEM_CONTAINER_NOT_FOUND"
	CodeItemContainerInvalid    Code = "ITEM_CONTAINER_NOT_A_CONTAINER"
	CodeItemContainerNested     Code = "ITEM_CONTAINER_NESTED"
	CodeItemContainerSelf       Code = "ITEM_CONTAINER_SELF_REFERENCE"
	CodeItemContainerHasContent Code = "ITEM_CONTAINER_HAS_CONTENTS"

	// Resource errors
	CodeResourceEmptyCharacterID Code = "RESOURCE_EMPTY_CHARACTER_ID"
	CodeResourceEmptyName        Code = "RESOURCE_EMPTY_NAME"
	CodeResourceInvalidMaxUses   Code = "RESOURCE_INVALID_MAX_USES"
	CodeResourceInvalidReset     Code = "RESOURCE_INVALID_RESET_TRIGGER"
	CodeResourceExhausted        Code = "RESOURCE_EXHAUSTED"

	// Wallet/ledger errors
	CodeWalletEmptyCharacterID Code = "WALLET_EMPTY_CHARACTER_ID"
	CodeWalletNegativeBalance  Code = "WALLET_NEGATIVE_BALANCE"
	CodeLedgerEmptyReason      Code = "LEDGER_EMPTY_REASON"
	CodeLedgerEmptyDelta       Code = "LEDGER_EMPTY_DELTA"

	// Journal errors
	CodeEntryEmptyCharacterID Code = "ENTRY_EMPTY_CHARACTER_ID"
	CodeEntryEmptyTitle       Code = "ENTRY_EMPTY_TITLE"
	CodeTagEmptyUserID        Code = "TAG_EMPTY_USER_ID"
	CodeTagEmptyName          Code = "TAG_EMPTY_NAME"
	CodeEntryTagIncomplete    Code = "ENTRY_TAG_INCOMPLETE_LINK"

	// Session file errors
	CodeFileEmptyCharacterID Code = "FILE_EMPTY_CHARACTER_ID"
	CodeFileEmptyName        Code = "FILE_EMPTY_NAME"

	// Dice errors
	CodeDiceMissing         Code = "DICE_MISSING"
	CodeDiceInvalidSpec     Code = "DICE_INVALID_SPEC"
	CodeDiceInvalidNotation Code = "DICE_INVALID_NOTATION"

	// Sync/gateway errors
	CodeOffline        Code = "SYNC_OFFLINE"
	CodeNoActiveUser   Code = "SYNC_NO_ACTIVE_USER"
	CodeNoActiveChar   Code = "SYNC_NO_ACTIVE_CHARACTER"
	CodeRemoteFailed   Code = "REMOTE_OPERATION_FAILED"
	CodeMirrorFailed   Code = "LOCAL_MIRROR_FAILED"
	CodeLedgerOrphaned Code = "LEDGER_AUDIT_ROW_MISSING"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes for surfaces that
// report over HTTP.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeCharacterEmptyUserID,
		CodeCharacterEmptyName,
		CodeCharacterSheetBadVer,
		CodeItemEmptyCharacterID,
		CodeItemEmptyName,
		CodeItemNegativeQuantity,
		CodeItemContainerInvalid,
		CodeItemContainerNested,
		CodeItemContainerSelf,
		CodeResourceEmptyCharacterID,
		CodeResourceEmptyName,
		CodeResourceInvalidMaxUses,
		CodeResourceInvalidReset,
		CodeWalletEmptyCharacterID,
		CodeLedgerEmptyReason,
		CodeLedgerEmptyDelta,
		CodeEntryEmptyCharacterID,
		CodeEntryEmptyTitle,
		CodeTagEmptyUserID,
		CodeTagEmptyName,
		CodeEntryTagIncomplete,
		CodeFileEmptyCharacterID,
		CodeFileEmptyName,
		CodeDiceMissing,
		CodeDiceInvalidSpec,
		CodeDiceInvalidNotation:
		return http.StatusBadRequest

	case CodeWalletNegativeBalance,
		CodeResourceExhausted,
		CodeItemContainerHasContent,
		CodeOffline,
		CodeNoActiveUser,
		CodeNoActiveChar:
		return http.StatusConflict

	case CodeNotFound, CodeItemContainerNotFound:
		return http.StatusNotFound

	case CodeRemoteFailed:
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetMetadata extracts metadata from an error if present.
// Returns nil if the error is not a domain error or has no metadata.
func GetMetadata(err error) map[string]string {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Metadata
	}
	return nil
}
