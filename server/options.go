package server

import (
	"log/slog"
	"time"

	"github.com/halvorsen/ftpd/pathio"
)

// Option configures a Server at construction time.
type Option func(*Server) error

// WithUsers sets the set of accounts the server authenticates against. At
// most one entry may have a nil Login (the anonymous account).
func WithUsers(users []*User) Option {
	return func(s *Server) error {
		s.users = users
		return nil
	}
}

// WithPathIO supplies the path-I/O backend every command handler resolves
// virtual paths against. Required; NewServer errors without one.
func WithPathIO(pio pathio.PathIO) Option {
	return func(s *Server) error {
		s.pathIO = pio
		return nil
	}
}

// WithLogger overrides the server's structured logger. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithTimeout bounds how long the server waits for a command line on an
// idle control connection before closing it. Zero (the default) disables
// the timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) error {
		s.timeout = d
		return nil
	}
}

// WithListenerHost sets the host address advertised in PASV replies and
// bound by passive-mode listeners. Defaults to the control connection's own
// local address, resolved per-session.
func WithListenerHost(host string) Option {
	return func(s *Server) error {
		s.listenerHost = host
		return nil
	}
}
