package service

import (
	"context"
	"errors"

	credmetrics "credforge/internal/credential/metrics"
	"credforge/internal/credential/models"
	"credforge/internal/credential/store"
	"credforge/internal/credential/tracer"
	"credforge/internal/sentinel"
	dErrors "credforge/pkg/domain-errors"
)

// Verifier confirms prior issuance of a credential by identifier.
// Purely read-only; it never mutates the store.
type Verifier struct {
	store   store.Store
	metrics *credmetrics.Metrics
	tracer  tracer.Tracer
}

// NewVerifier constructs a verification service.
func NewVerifier(st store.Store, opts ...Option) *Verifier {
	cfg := newServiceConfig(opts)
	return &Verifier{
		store:   st,
		metrics: cfg.metrics,
		tracer:  cfg.tracer,
	}
}

// Verify looks up the record issued under id. A miss is a normal outcome and
// comes back as CodeNotFound, distinguishable from storage failures.
func (s *Verifier) Verify(ctx context.Context, id string) (rec *models.Record, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerify, tracer.String(tracer.AttrCredentialID, id))
	defer func() { span.End(err) }()

	if id == "" {
		return nil, dErrors.New(dErrors.CodeMissingIdentifier, "Credential ID is required")
	}

	rec, lookupErr := s.store.Get(ctx, id)
	if lookupErr != nil {
		if errors.Is(lookupErr, sentinel.ErrNotFound) {
			span.SetAttributes(tracer.Bool(tracer.AttrFound, false))
			s.metrics.IncrementVerifications("invalid")
			return nil, dErrors.New(dErrors.CodeNotFound, "Credential not found")
		}
		s.metrics.IncrementVerifications("error")
		return nil, dErrors.Wrap(lookupErr, dErrors.CodeInternal, "failed to look up credential")
	}

	span.SetAttributes(tracer.Bool(tracer.AttrFound, true))
	s.metrics.IncrementVerifications("valid")
	return rec, nil
}
