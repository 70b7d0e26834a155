package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/auraboard/auraboard-server/internal/model"
)

// HTTPServer serves the REST API over a listener produced by a security
// layer.
type HTTPServer struct {
	server  *http.Server
	address string
}

var _ model.Server = (*HTTPServer)(nil)

// NewHTTPServer creates an HTTP server for the given handler and address.
func NewHTTPServer(handler http.Handler, address string) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:    address,
			Handler: handler,
		},
		address: address,
	}
}

// Start listens on the configured address and serves until Stop is called.
func (s *HTTPServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}

	if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

// Stop shuts the server down gracefully, waiting for in-flight requests
// until the context is done.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the address the server listens on.
func (s *HTTPServer) Address() string {
	return s.address
}
