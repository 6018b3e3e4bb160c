package errx

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// WrapDB maps gorm errors to the unified Error type with appropriate status codes.
func WrapDB(err error) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return New(err, http.StatusNotFound, DBNotFoundMessage)
	}

	return New(err, http.StatusBadGateway, DBErrorMessage)
}
