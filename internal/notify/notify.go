// Package notify delivers user-facing toasts for sync and domain failures.
// Messages are localized from error codes so callers pass errors around
// without formatting concerns.
package notify

import (
	"log"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

// Severity classifies a toast.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Message is one rendered notification ready for display.
type Message struct {
	Severity Severity
	Code     apperrors.Code
	Text     string
}

// Notifier receives rendered messages. Implementations must not block.
type Notifier interface {
	Notify(msg Message)
}

// Func adapts a plain function into a Notifier.
type Func func(Message)

func (f Func) Notify(msg Message) {
	if f != nil {
		f(msg)
	}
}

// LogNotifier writes messages to a standard logger. It is the default sink
// when no UI is attached.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(msg Message) {
	logger := n.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("notify %s [%s]: %s", msg.Severity, msg.Code, msg.Text)
}

// Toaster localizes errors through a catalog and forwards them to a sink.
// A zero-value sink or catalog degrades to the defaults rather than panic.
type Toaster struct {
	catalog *Catalog
	sink    Notifier
}

// NewToaster builds a toaster. A nil catalog uses en-US; a nil sink logs.
func NewToaster(catalog *Catalog, sink Notifier) *Toaster {
	if catalog == nil {
		catalog = CatalogFor(BaseLocale)
	}
	if sink == nil {
		sink = LogNotifier{}
	}
	return &Toaster{catalog: catalog, sink: sink}
}

// Failure renders err's code and metadata into a localized error toast.
// A nil error is ignored.
func (t *Toaster) Failure(err error) {
	if t == nil || err == nil {
		return
	}
	code := apperrors.GetCode(err)
	t.sink.Notify(Message{
		Severity: SeverityError,
		Code:     code,
		Text:     t.catalog.Format(code, apperrors.GetMetadata(err)),
	})
}

// Info emits an informational toast with pre-rendered text.
func (t *Toaster) Info(text string) {
	if t == nil {
		return
	}
	t.sink.Notify(Message{Severity: SeverityInfo, Text: text})
}
