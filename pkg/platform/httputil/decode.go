package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// DecodeJSON decodes a JSON request body into the target type.
// Returns the decoded value and true on success.
// On failure, writes onInvalid as the error response and returns nil, false.
// The caller supplies onInvalid so each endpoint keeps its documented
// malformed-body message.
//
// Usage:
//
//	doc, ok := httputil.DecodeJSON[map[string]any](w, r, h.logger, ctx, requestID, errInvalidFormat)
//	if !ok {
//	    return
//	}
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string, onInvalid error) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, onInvalid)
		return nil, false
	}
	return &req, true
}
