package handlers

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailcast"
	"github.com/dmitrymomot/mailcast/internal/contact"
	"github.com/dmitrymomot/mailcast/internal/notify"
	"github.com/dmitrymomot/mailcast/middlewares"
)

const invalidInput = "Invalid input"

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func message(s string) messageResponse {
	return messageResponse{Message: s}
}

func errInvalidInput(opts ...mailcast.HTTPErrorOption) *mailcast.HTTPError {
	return mailcast.ErrBadRequest(invalidInput, opts...)
}

// bind decodes the JSON body. Malformed bodies count as missing input.
func bind(c mailcast.Context, v any) error {
	if err := c.BindJSON(v); err != nil {
		return errInvalidInput(mailcast.WithError(err))
	}
	return nil
}

// present reports whether every value is non-empty.
func present(values ...string) bool {
	for _, v := range values {
		if v == "" {
			return false
		}
	}
	return true
}

// ErrorHandler renders handler errors as {"error": "..."}.
//
// A send failure keeps its message so the caller sees the failing address.
// Store failures and anything unexpected are logged and reported as a bare 500.
func ErrorHandler(c mailcast.Context, err error) error {
	var sendErr *notify.SendError
	if errors.As(err, &sendErr) {
		c.LogError("broadcast aborted", "error", err, "to", sendErr.Address)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: sendErr.Error()})
	}

	if httpErr := mailcast.AsHTTPError(err); httpErr != nil {
		switch {
		case httpErr.Code >= http.StatusInternalServerError:
			c.LogError("request failed", "error", err)
		case httpErr.Err != nil:
			c.LogDebug("request rejected", "error", httpErr.Err)
		}
		return c.JSON(httpErr.Code, errorResponse{Error: httpErr.Message})
	}

	switch {
	case errors.Is(err, contact.ErrStore):
		c.LogError("store failure", "error", err)
	case middlewares.IsPanicError(err):
		// logged with its stack by Recover
	default:
		c.LogError("unhandled error", "error", err)
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

// NotFound answers unknown routes.
func NotFound(c mailcast.Context) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: http.StatusText(http.StatusNotFound)})
}

// MethodNotAllowed answers known paths requested with another method.
func MethodNotAllowed(c mailcast.Context) error {
	return c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
}
