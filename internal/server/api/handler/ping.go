package handler

import (
	"log/slog"

	"github.com/tankpad/tankpad/apitypes"
	"github.com/tankpad/tankpad/internal/server/api"
)

// Ping identifies the server.
func Ping(version string) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		return writeJSON(res, apitypes.PingResponse{Server: "tankpad", Version: version})
	}
}
