package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/gofiber/fiber/v2"
)

// apiError is an error with a ready-made HTTP status and client message.
type apiError struct {
	Status  int
	Message string
	Details string
}

func (e *apiError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func badRequest(msg string, err error) *apiError {
	e := &apiError{Status: fiber.StatusBadRequest, Message: msg}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// classify maps an error to the status and message sent to the client.
// Unknown errors become a generic 500.
func classify(err error) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return &apiError{Status: fe.Code, Message: fe.Message}
	}

	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return &apiError{Status: fiber.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, common.ErrUnknownUser):
		return &apiError{Status: fiber.StatusBadRequest, Message: "Cannot find user"}
	case errors.Is(err, common.ErrInvalidCredentials):
		return &apiError{Status: fiber.StatusForbidden, Message: "Not Allowed"}
	case errors.Is(err, common.ErrConflict):
		return &apiError{Status: fiber.StatusConflict, Message: "Username already taken"}
	case errors.Is(err, common.ErrUnauthenticated):
		return &apiError{Status: fiber.StatusUnauthorized, Message: "Missing bearer token"}
	case errors.Is(err, common.ErrInvalidToken):
		return &apiError{Status: fiber.StatusForbidden, Message: common.InvalidTokenMessage}
	case errors.Is(err, common.ErrForbidden):
		return &apiError{Status: fiber.StatusForbidden, Message: "Forbidden"}
	case errors.Is(err, common.ErrorNotFound):
		return &apiError{Status: fiber.StatusNotFound, Message: "Not found"}
	default:
		return &apiError{Status: fiber.StatusInternalServerError, Message: "Server Error"}
	}
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	ae := classify(err)
	if ae.Status >= fiber.StatusInternalServerError {
		s.logger.Error(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(ae.Status).JSON(errorResponse{Error: ae.Message, Details: ae.Details})
}
