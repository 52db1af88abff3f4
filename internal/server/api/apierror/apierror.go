// Package apierror builds problem+json errors for the panel API.
package apierror

import (
	"errors"

	"github.com/tankpad/tankpad/apitypes"
)

func ErrBadRequest(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 400, Title: "Bad Request", Detail: detail}
}
func ErrUnauthorized(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 401, Title: "Unauthorized", Detail: detail}
}
func ErrNotFound(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 404, Title: "Not Found", Detail: detail}
}
func ErrConflict(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 409, Title: "Conflict", Detail: detail}
}
func ErrInternal(detail string) *apitypes.ApiError {
	return &apitypes.ApiError{Status: 500, Title: "Internal Server Error", Detail: detail}
}

// WrapError normalizes err into *apitypes.ApiError. Anything that is not
// already an ApiError becomes a 500.
func WrapError(err error) *apitypes.ApiError {
	if err == nil {
		return nil
	}
	var pe *apitypes.ApiError
	if errors.As(err, &pe) {
		return pe
	}
	var ve apitypes.ApiError
	if errors.As(err, &ve) {
		return &ve
	}
	return ErrInternal(err.Error())
}
