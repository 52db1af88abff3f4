// Package handler holds the panel API route handlers. Error logging is
// centralized in the API server; handlers only return errors.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tankpad/tankpad/internal/server/api"
	"github.com/tankpad/tankpad/internal/server/api/apierror"
	"github.com/tankpad/tankpad/panel"
)

// panelError maps panel errors to problem responses.
func panelError(err error) error {
	switch {
	case errors.Is(err, panel.ErrUnknownDialog),
		errors.Is(err, panel.ErrUnknownWidget),
		errors.Is(err, panel.ErrUnknownDropdown):
		return apierror.ErrNotFound(err.Error())
	case errors.Is(err, panel.ErrInvalidValue):
		return apierror.ErrBadRequest(err.Error())
	default:
		return apierror.ErrInternal(err.Error())
	}
}

func writeJSON(res *api.Response, v any) error {
	out, err := json.Marshal(v)
	if err != nil {
		return apierror.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
	}
	res.JSON = string(out)
	return nil
}
