package domain

import (
	"strings"

	"github.com/google/uuid"
)

const DefaultGuestName = "Tamu"

// Session is the visitor identity held in the durable key-value store under
// "app_user". A nil UID means guest mode.
type Session struct {
	UID  *string `json:"uid"`
	Name string  `json:"name"`
}

func GuestSession(name string) Session {
	if strings.TrimSpace(name) == "" {
		name = DefaultGuestName
	}
	return Session{Name: name}
}

// UserID returns the parsed identifier when the session may write favorites
// and reviews.
func (s Session) UserID() (uuid.UUID, bool) {
	if s.UID == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimSpace(*s.UID))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func (s Session) IsGuest() bool {
	_, ok := s.UserID()
	return !ok
}
