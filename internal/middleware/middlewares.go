package middleware

import (
	"github.com/deppfellow/qna-api/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups every middleware component so the router receives one
// value instead of many.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer places a request-scoped logger in the echo context.
	ContextEnhancer *ContextEnhancer

	// Tracing wires New Relic transactions; it is a no-op when New Relic is off.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components.
//
// nrApp is nil when New Relic is disabled, which turns tracing into a pass-through.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
	}
}
