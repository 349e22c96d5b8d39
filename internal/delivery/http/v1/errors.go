package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/nonbon/internal/services"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errInvalidItemID      = errors.New("invalid focus item id")
)

type apiError struct {
	Code    int
	Message string
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

// newServiceError maps a FocusService error to the response presented
// to the client. The wrapped message names the offending field or limit.
func newServiceError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrEmptyBacklog):
		return newNotFoundError(err.Error())
	case errors.Is(err, services.ErrInvalidTitle),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrActiveLimitExceeded):
		return newBadRequestError(err.Error())
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
