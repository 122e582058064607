package service

import (
	credmetrics "credforge/internal/credential/metrics"
	"credforge/internal/credential/tracer"
)

type serviceConfig struct {
	metrics *credmetrics.Metrics
	tracer  tracer.Tracer
}

// Option configures a service.
type Option func(*serviceConfig)

// WithMetrics attaches Prometheus metrics. Metrics are optional; absent
// metrics are a no-op.
func WithMetrics(m *credmetrics.Metrics) Option {
	return func(cfg *serviceConfig) {
		cfg.metrics = m
	}
}

// WithTracer attaches a tracer. Defaults to the no-op tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(cfg *serviceConfig) {
		cfg.tracer = t
	}
}

func newServiceConfig(opts []Option) *serviceConfig {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.tracer == nil {
		cfg.tracer = tracer.NewNoop()
	}
	return cfg
}
