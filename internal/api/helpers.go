package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/cbtool/internal/cbfile"
	"github.com/samcharles93/cbtool/internal/report"
	"github.com/samcharles93/cbtool/pkg/cb"
)

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "", "")
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg, "", "")
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return writeJSON(c, status, ErrorResponse{Error: ResponseError{
		Message: msg,
		Type:    errType,
		Code:    code,
		Param:   param,
	}})
}

func writeJSON(c *echo.Context, status int, v any) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(status)
	return json.NewEncoder(res).Encode(v)
}

// writeRequestError maps request-level failures to status codes.
func writeRequestError(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, cbfile.ErrTooLarge):
		return writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error", err.Error(), "body", "body_too_large")
	case errors.Is(err, report.ErrUnknownKind):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "kind", "")
	case errors.Is(err, cb.ErrUnknownMode):
		return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), "mode", "")
	case errors.Is(err, ErrInvalidRequest):
		return writeBadRequest(c, err.Error())
	}
	return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
}

func parseModeParam(kind report.Kind, raw string) (cb.Mode, error) {
	if raw == "" {
		return kind.DefaultMode(), nil
	}
	return cb.ParseMode(raw)
}

func newReportID() string {
	return uuid.NewString()
}

func checkReportID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return newInvalidRequest(fmt.Sprintf("report id %q: %v", id, err))
	}
	return nil
}
