package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/ExploreNusa_BackEnd/internal/identity"
	"github.com/njprem/ExploreNusa_BackEnd/internal/service"
	"github.com/njprem/ExploreNusa_BackEnd/internal/util"
	"github.com/njprem/ExploreNusa_BackEnd/internal/view"
)

// StatusClientClosedRequest is recorded when the client disconnects before
// a response is written.
const StatusClientClosedRequest = 499

// writeError maps service errors onto status codes. Anything unrecognised
// is a backend failure: logged, then reported as "unable to <action>".
func writeError(c echo.Context, action string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, identity.ErrBlankName),
		errors.Is(err, identity.ErrMissingClientID):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, util.Error("destination not found"))
	case errors.Is(err, service.ErrReviewNotFound):
		return c.JSON(http.StatusNotFound, util.Error("review not found"))
	case errors.Is(err, service.ErrReviewForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	case errors.Is(err, view.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, identity.ErrCorruptSession):
		logFailure(c, action, err)
		return c.JSON(http.StatusConflict, util.Error("stored session is unreadable, reset it to continue"))
	case errors.Is(err, service.ErrImageUploadDisabled):
		return c.JSON(http.StatusServiceUnavailable, util.Error(err.Error()))
	case errors.Is(err, view.ErrViewClosed), errors.Is(err, context.Canceled):
		// The caller went away. The status only reaches the request log.
		logEvent(c, "info", action, err)
		return c.NoContent(StatusClientClosedRequest)
	default:
		logFailure(c, action, err)
		return c.JSON(http.StatusInternalServerError, util.Error("unable to "+action))
	}
}

func logFailure(c echo.Context, action string, err error) {
	logEvent(c, "error", action, err)
}

func logEvent(c echo.Context, level, action string, err error) {
	buf, marshalErr := json.Marshal(struct {
		Level   string `json:"level"`
		Session string `json:"session_uid"`
		Action  string `json:"action"`
		URI     string `json:"uri"`
		Error   string `json:"error"`
	}{
		Level:   level,
		Session: sessionLogID(c),
		Action:  action,
		URI:     c.Request().RequestURI,
		Error:   err.Error(),
	})
	if marshalErr != nil {
		log.Printf("%s: %v", action, err)
		return
	}
	log.Println(string(buf))
}
