// Package server exposes the quoting engine over HTTP. The engine itself is
// stateless; the server only holds the catalog snapshot it was started with.
package server

import (
	"github.com/valyala/fasthttp"

	"github.com/tbecker/insurate/internal/domain"
	"github.com/tbecker/insurate/internal/quote"
	"github.com/tbecker/insurate/internal/rating"
)

// Server routes quote requests to the engine
type Server struct {
	catalog *domain.Catalog
	engine  *quote.Engine
	memo    *quote.Memo
	logger  rating.Logger
}

// New creates a server over a catalog snapshot
func New(catalog *domain.Catalog) *Server {
	engine := quote.NewEngine()
	return &Server{
		catalog: catalog,
		engine:  engine,
		memo:    quote.NewMemo(engine),
		logger:  rating.NopLogger{},
	}
}

// SetLogger replaces the server's logger and wires it through to the engine
func (s *Server) SetLogger(l rating.Logger) {
	if l == nil {
		l = rating.NopLogger{}
	}
	s.logger = l
	s.engine.SetLogger(l)
}

// Handler returns the fasthttp request handler with routing and panic recovery
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Errorf("panic serving %s %s: %v", ctx.Method(), ctx.Path(), r)
				s.writeInternalError(ctx)
			}
		}()

		path := string(ctx.Path())
		method := string(ctx.Method())

		switch {
		case path == "/healthz" && method == fasthttp.MethodGet:
			s.handleHealth(ctx)
		case path == "/api/v1/plans" && method == fasthttp.MethodGet:
			s.handleListPlans(ctx)
		case path == "/api/v1/quotes" && method == fasthttp.MethodPost:
			s.handleQuote(ctx)
		case path == "/api/v1/quotes/compare" && method == fasthttp.MethodPost:
			s.handleCompare(ctx)
		default:
			s.writeNotFound(ctx)
		}
	}
}

// ListenAndServe starts the server on the given address
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("quote server listening on %s", addr)
	return fasthttp.ListenAndServe(addr, s.Handler())
}
