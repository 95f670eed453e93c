// Package session tracks the signed-in user and connectivity mode.
//
// The access token is issued and verified by the backend; the client only
// decodes its subject claim to learn which user the token belongs to. No
// signature check happens on-device: a forged token fails server-side on
// the first request.
package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

// ErrNoActiveUser indicates an operation that needs a signed-in user.
var ErrNoActiveUser = apperrors.New(apperrors.CodeNoActiveUser, "no signed-in user")

// Session holds the current access token, its decoded user id, and the
// offline flag. It is confined to the companion's event goroutine.
type Session struct {
	accessToken string
	userID      string
	offline     bool
	onChange    []func()
}

// New creates an empty, signed-out session.
func New() *Session {
	return &Session{}
}

// SetAccessToken installs a new access token and decodes its subject.
// An empty token signs the session out. Change callbacks fire after the
// session reflects the new token.
func (s *Session) SetAccessToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		s.accessToken = ""
		s.userID = ""
		s.fireChange()
		return nil
	}

	subject, err := subjectFromToken(token)
	if err != nil {
		return err
	}

	s.accessToken = token
	s.userID = subject
	s.fireChange()
	return nil
}

// AccessToken returns the raw bearer token, empty when signed out.
func (s *Session) AccessToken() string {
	if s == nil {
		return ""
	}
	return s.accessToken
}

// CurrentUserID returns the signed-in user id or ErrNoActiveUser.
func (s *Session) CurrentUserID() (string, error) {
	if s == nil || s.userID == "" {
		return "", ErrNoActiveUser
	}
	return s.userID, nil
}

// SignedIn reports whether a user id is present.
func (s *Session) SignedIn() bool {
	return s != nil && s.userID != ""
}

// Offline reports whether the companion is in offline mode.
func (s *Session) Offline() bool {
	return s != nil && s.offline
}

// SetOffline toggles offline mode and fires change callbacks on transition.
func (s *Session) SetOffline(offline bool) {
	if s == nil || s.offline == offline {
		return
	}
	s.offline = offline
	s.fireChange()
}

// OnChange registers a callback invoked after every session transition.
func (s *Session) OnChange(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.onChange = append(s.onChange, fn)
}

func (s *Session) fireChange() {
	for _, fn := range s.onChange {
		fn()
	}
}

func subjectFromToken(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return "", apperrors.Wrap(apperrors.CodeNoActiveUser, "access token is not a valid JWT", err)
	}
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", apperrors.New(apperrors.CodeNoActiveUser, "access token has no subject claim")
	}
	return subject, nil
}
