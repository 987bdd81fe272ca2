package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vuongnm/staffdesk/internal/domain"
	"github.com/vuongnm/staffdesk/internal/logger"
)

// ErrorResponse is the wire shape every failure uses.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// statusOf maps an error kind to its HTTP status. This is the only
// place a kind becomes a status code.
func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindDuplicate:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case domain.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates a kind-tagged error into the response. Client
// faults carry the detection message through; unexpected faults are
// logged and reported generically.
func respondError(c echo.Context, title string, err error) error {
	status := statusOf(err)
	body := ErrorResponse{
		Error:   title,
		Message: err.Error(),
		Details: domain.DetailsOf(err),
	}
	if status == http.StatusInternalServerError {
		logger.ErrorLog(c.Request().Context(), title, err)
		body.Message = "unexpected server error"
	}
	return c.JSON(status, body)
}
