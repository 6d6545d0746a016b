package http

import (
	"log"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/identity"
)

// HeaderClientID names the caller's durable slot. Requests without it run
// as guests.
const HeaderClientID = "X-Client-ID"

const (
	contextSessionKey  = "explorenusa.session"
	contextClientIDKey = "explorenusa.client_id"
)

// LoadSession resolves the visitor session for every request. A store
// failure is logged and the request continues as a guest.
func LoadSession(sessions *identity.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := strings.TrimSpace(c.Request().Header.Get(HeaderClientID))
			session, err := sessions.Load(c.Request().Context(), clientID)
			if err != nil {
				log.Printf("session load failed for client %q: %v", clientID, err)
			}
			c.Set(contextClientIDKey, clientID)
			c.Set(contextSessionKey, session)
			return next(c)
		}
	}
}

func CurrentSession(c echo.Context) domain.Session {
	if session, ok := c.Get(contextSessionKey).(domain.Session); ok {
		return session
	}
	return domain.GuestSession("")
}

func ClientID(c echo.Context) string {
	id, _ := c.Get(contextClientIDKey).(string)
	return id
}

func sessionLogID(c echo.Context) string {
	session := CurrentSession(c)
	if session.UID == nil || session.IsGuest() {
		return "guest"
	}
	return *session.UID
}
