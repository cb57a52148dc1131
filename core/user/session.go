package user

import (
	"time"

	"github.com/pkg/errors"

	"github.com/campusdesk/portal/core/academic"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")
)

// Session identifies the user on whose behalf an operation runs.
// It is derived from the request credentials and checked with Valid before use.
type Session struct {
	UserID    string
	Username  string
	Role      string
	Class     academic.ClassRank
	ExpiresAt time.Time
}

func NewSession(usr User, expiresAt time.Time) Session {
	return Session{
		UserID:    usr.ID,
		Username:  usr.Username,
		Role:      usr.Role,
		Class:     usr.Class,
		ExpiresAt: expiresAt,
	}
}

// Valid reports ErrNoSession for the zero Session and ErrSessionExpired once now reaches ExpiresAt.
func (s Session) Valid(now time.Time) error {
	if s.UserID == "" {
		return ErrNoSession
	}
	if !now.Before(s.ExpiresAt) {
		return ErrSessionExpired
	}
	return nil
}

func (s Session) IsAdmin() bool   { return s.Role == RoleAdmin }
func (s Session) IsStaff() bool   { return s.Role == RoleStaff }
func (s Session) IsStudent() bool { return s.Role == RoleStudent }
