package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"credforge/internal/credential/models"
	dErrors "credforge/pkg/domain-errors"
	"credforge/pkg/platform/httputil"
	"credforge/pkg/requestcontext"
)

// IssueService defines the interface for credential issuance.
// Returns domain objects, not HTTP response DTOs.
type IssueService interface {
	Issue(ctx context.Context, doc models.Document) (*models.Receipt, error)
}

// IssueHandler exposes the issuance service's single write operation.
type IssueHandler struct {
	service IssueService
	logger  *slog.Logger
}

func NewIssue(service IssueService, logger *slog.Logger) *IssueHandler {
	return &IssueHandler{service: service, logger: logger}
}

func (h *IssueHandler) Register(r chi.Router) {
	r.Post("/issue", h.HandleIssue)
}

// HandleIssue accepts a JSON credential document, assigns an identifier if
// absent, and persists it exactly once.
func (h *IssueHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	doc, ok := httputil.DecodeJSON[models.Document](w, r, h.logger, ctx, requestID, errInvalidFormat())
	if !ok {
		return
	}
	if *doc == nil {
		// "null" decodes cleanly but is not a JSON object.
		h.logger.WarnContext(ctx, "invalid credential document", "request_id", requestID)
		httputil.WriteError(w, errInvalidFormat())
		return
	}

	receipt, err := h.service.Issue(ctx, *doc)
	if err != nil {
		h.logIssueFailure(ctx, err, requestID)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "credential issued",
		"credential_id", receipt.CredentialID,
		"worker", receipt.Worker,
		"request_id", requestID,
	)
	httputil.WriteJSON(w, http.StatusCreated, models.IssueResponse{
		Message:      fmt.Sprintf("Credential issued by %s", receipt.Worker),
		Worker:       receipt.Worker,
		CredentialID: receipt.CredentialID,
		Timestamp:    receipt.IssuedAt,
	})
}

// logIssueFailure logs expected outcomes (duplicates, malformed input) at
// info/warn; only storage failures are errors.
func (h *IssueHandler) logIssueFailure(ctx context.Context, err error, requestID string) {
	switch {
	case dErrors.HasCode(err, dErrors.CodeConflict):
		h.logger.InfoContext(ctx, "credential already issued", "request_id", requestID)
	case dErrors.HasCode(err, dErrors.CodeInvalidInput):
		h.logger.WarnContext(ctx, "invalid credential document", "request_id", requestID)
	default:
		h.logger.ErrorContext(ctx, "issue credential failed", "error", err, "request_id", requestID)
	}
}

func errInvalidFormat() error {
	return dErrors.New(dErrors.CodeInvalidInput, "Invalid credential format")
}
