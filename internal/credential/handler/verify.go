package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"credforge/internal/credential/models"
	dErrors "credforge/pkg/domain-errors"
	"credforge/pkg/platform/httputil"
	"credforge/pkg/requestcontext"
)

// VerifyService defines the interface for credential verification.
type VerifyService interface {
	Verify(ctx context.Context, id string) (*models.Record, error)
}

// VerifyHandler exposes the verification service's single read operation.
type VerifyHandler struct {
	service VerifyService
	logger  *slog.Logger
}

func NewVerify(service VerifyService, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{service: service, logger: logger}
}

func (h *VerifyHandler) Register(r chi.Router) {
	r.Post("/verify", h.HandleVerify)
	r.Get("/verify/{id}", h.HandleVerifyByID)
}

// HandleVerify accepts a JSON document carrying an id field and reports
// whether that credential was previously issued.
func (h *VerifyHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	doc, ok := httputil.DecodeJSON[models.Document](w, r, h.logger, ctx, requestID, errInvalidFormat())
	if !ok {
		return
	}
	if *doc == nil {
		h.logger.WarnContext(ctx, "invalid verification document", "request_id", requestID)
		httputil.WriteError(w, errInvalidFormat())
		return
	}

	// A non-string or empty id is treated as missing; verification never
	// generates identifiers.
	id, _, malformed := (*doc).ID()
	if malformed {
		id = ""
	}
	h.verify(w, r, id)
}

// HandleVerifyByID verifies the identifier given directly in the path.
func (h *VerifyHandler) HandleVerifyByID(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, chi.URLParam(r, "id"))
}

func (h *VerifyHandler) verify(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	rec, err := h.service.Verify(ctx, id)
	if err != nil {
		switch {
		case dErrors.HasCode(err, dErrors.CodeNotFound):
			// A miss is a normal outcome with a structured body, not an error.
			h.logger.InfoContext(ctx, "credential not found", "credential_id", id, "request_id", requestID)
			httputil.WriteJSON(w, http.StatusNotFound, models.NotFoundResponse{
				Status:  "invalid",
				Message: "Credential not found",
			})
		case dErrors.HasCode(err, dErrors.CodeMissingIdentifier):
			h.logger.WarnContext(ctx, "credential id missing in verification request", "request_id", requestID)
			httputil.WriteError(w, err)
		default:
			h.logger.ErrorContext(ctx, "verify credential failed", "error", err, "credential_id", id, "request_id", requestID)
			httputil.WriteError(w, err)
		}
		return
	}

	h.logger.InfoContext(ctx, "credential verified",
		"credential_id", id,
		"issued_by", rec.Worker,
		"request_id", requestID,
	)
	httputil.WriteJSON(w, http.StatusOK, models.VerifyResponse{
		Status:     "valid",
		Worker:     rec.Worker,
		Timestamp:  rec.Timestamp,
		Credential: rec.Credential,
	})
}
