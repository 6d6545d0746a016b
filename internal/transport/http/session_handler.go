package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/ExploreNusa_BackEnd/internal/domain"
	"github.com/njprem/ExploreNusa_BackEnd/internal/identity"
	"github.com/njprem/ExploreNusa_BackEnd/internal/util"
)

type SessionHandler struct {
	sessions *identity.Manager
}

func RegisterSession(e *echo.Echo, sessions *identity.Manager) {
	handler := &SessionHandler{sessions: sessions}

	g := e.Group("/api/v1/session")
	g.GET("", handler.getSession)
	g.PUT("", handler.setDisplayName)
	g.DELETE("", handler.resetToGuest)
}

func (h *SessionHandler) getSession(c echo.Context) error {
	return c.JSON(http.StatusOK, buildSessionResponse(CurrentSession(c)))
}

func (h *SessionHandler) setDisplayName(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	session, err := h.sessions.SetDisplayName(c.Request().Context(), ClientID(c), req.Name)
	if err != nil {
		return writeError(c, "save display name", err)
	}
	c.Set(contextSessionKey, session)
	return c.JSON(http.StatusOK, buildSessionResponse(session))
}

func (h *SessionHandler) resetToGuest(c echo.Context) error {
	session, err := h.sessions.ResetToGuest(c.Request().Context(), ClientID(c))
	if err != nil {
		return writeError(c, "reset session", err)
	}
	c.Set(contextSessionKey, session)
	return c.JSON(http.StatusOK, buildSessionResponse(session))
}

func buildSessionResponse(session domain.Session) util.Envelope {
	return util.Envelope{
		"session": session,
		"guest":   session.IsGuest(),
	}
}
