// Package sync orchestrates data flow between the application state, the
// device-local mirror, and the remote gateway.
//
// The model is reconciliation-free: the backend is always the source of
// truth, the local store is a disposable cache, and writes go remote-first.
// Offline mode never queues writes; mutations fail fast with ErrOffline so
// the UI reports the condition instead of guessing intent later.
package sync

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/satchel/internal/appstate"
	apperrors "github.com/louisbranch/satchel/internal/errors"
	"github.com/louisbranch/satchel/internal/gateway"
	"github.com/louisbranch/satchel/internal/localstore"
	"github.com/louisbranch/satchel/internal/notify"
	"github.com/louisbranch/satchel/internal/platform/id"
	"github.com/louisbranch/satchel/internal/session"
)

var (
	// ErrOffline indicates a remote write attempted in offline mode.
	ErrOffline = apperrors.New(apperrors.CodeOffline, "offline: remote writes are disabled")
	// ErrNoActiveCharacter indicates an operation that needs a selected character.
	ErrNoActiveCharacter = apperrors.New(apperrors.CodeNoActiveChar, "no active character selected")
)

// Core coordinates state, local mirror, and remote gateway for one session.
// Like the state store it backs, Core is confined to the event goroutine.
type Core struct {
	state   *appstate.Store
	store   localstore.Store
	gw      gateway.Gateway
	session *session.Session
	toaster *notify.Toaster
	tracer  trace.Tracer
	now     func() time.Time
	newID   func() (string, error)
}

// Option configures a Core.
type Option func(*Core)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Core) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator replaces the id generator, for tests.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(c *Core) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// New wires a sync core. toaster may be nil; notifications then go to the
// default log sink.
func New(state *appstate.Store, store localstore.Store, gw gateway.Gateway, sess *session.Session, toaster *notify.Toaster, opts ...Option) *Core {
	if toaster == nil {
		toaster = notify.NewToaster(nil, nil)
	}
	core := &Core{
		state:   state,
		store:   store,
		gw:      gw,
		session: sess,
		toaster: toaster,
		tracer:  otel.Tracer("satchel/sync"),
		now:     time.Now,
		newID:   id.NewID,
	}
	for _, opt := range opts {
		opt(core)
	}
	return core
}

func (c *Core) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, name)
}

// requireOnline gates remote writes.
func (c *Core) requireOnline() error {
	if c.session.Offline() {
		return ErrOffline
	}
	return nil
}

func (c *Core) requireUser() (string, error) {
	return c.session.CurrentUserID()
}

func (c *Core) requireActiveCharacter() (string, error) {
	characterID := c.state.Get().ActiveCharacterID
	if characterID == "" {
		return "", ErrNoActiveCharacter
	}
	return characterID, nil
}

// remoteErr wraps a gateway failure and surfaces it as a toast.
func (c *Core) remoteErr(op string, err error) error {
	wrapped := apperrors.Wrap(apperrors.CodeRemoteFailed, op+" failed against the backend", err)
	c.toaster.Failure(wrapped)
	return wrapped
}

func notFoundErr(kind, id string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound, kind+" not found", map[string]string{"Kind": kind, "ID": id})
}

// mirrorErr reports a local mirror failure. Mirror writes are advisory: the
// remote operation already succeeded, so the caller does not see the error.
func (c *Core) mirrorErr(op string, err error) {
	c.toaster.Failure(apperrors.Wrap(apperrors.CodeMirrorFailed, op+" could not update the local mirror", err))
}
