// Package service holds the business rules for credential issuance and
// verification. Both services share the store contract; they differ only in
// the single operation each one exposes.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	credmetrics "credforge/internal/credential/metrics"
	"credforge/internal/credential/models"
	"credforge/internal/credential/store"
	"credforge/internal/credential/tracer"
	"credforge/internal/sentinel"
	dErrors "credforge/pkg/domain-errors"
	"credforge/pkg/requestcontext"
)

// Issuer performs the one-time act of assigning an identifier to a
// credential document and persisting it.
type Issuer struct {
	store   store.Store
	worker  string
	metrics *credmetrics.Metrics
	tracer  tracer.Tracer
}

// NewIssuer constructs an issuance service bound to this instance's worker
// identity.
func NewIssuer(st store.Store, worker string, opts ...Option) *Issuer {
	cfg := newServiceConfig(opts)
	return &Issuer{
		store:   st,
		worker:  worker,
		metrics: cfg.metrics,
		tracer:  cfg.tracer,
	}
}

// Issue assigns an identifier to the document (generating one if absent),
// persists it, and returns a receipt. The upfront Exists check is a fast
// path only; the store's uniqueness constraint is the authoritative
// duplicate signal, so a concurrent insert race still resolves to exactly
// one winner.
func (s *Issuer) Issue(ctx context.Context, doc models.Document) (receipt *models.Receipt, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanIssue, tracer.String(tracer.AttrWorker, s.worker))
	defer func() { span.End(err) }()

	if doc == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "Invalid credential format")
	}

	id, _, malformed := doc.ID()
	if malformed {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "Invalid credential format")
	}
	generated := id == ""
	if generated {
		id = uuid.New().String()
	}
	span.SetAttributes(
		tracer.String(tracer.AttrCredentialID, id),
		tracer.Bool(tracer.AttrGeneratedID, generated),
	)

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check credential existence")
	}
	if exists {
		s.metrics.IncrementConflicts()
		return nil, dErrors.New(dErrors.CodeConflict, "Credential already issued")
	}

	rec := &models.Record{
		Credential: doc.WithID(id),
		Worker:     s.worker,
		Timestamp:  requestcontext.Now(ctx),
	}
	if err := s.store.Save(ctx, id, rec); err != nil {
		if errors.Is(err, sentinel.ErrDuplicateID) {
			// Lost the insert race; the first write stands.
			s.metrics.IncrementConflicts()
			return nil, dErrors.New(dErrors.CodeConflict, "Credential already issued")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save credential")
	}

	s.metrics.IncrementIssued()
	s.metrics.ObserveIssueDuration(start)
	return &models.Receipt{
		CredentialID: id,
		Worker:       s.worker,
		IssuedAt:     rec.Timestamp,
	}, nil
}
