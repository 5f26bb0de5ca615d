package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/halvorsen/ftpd/pathio"
)

// Server accepts FTP control connections and runs one session per
// connection. It owns no concrete filesystem: every path operation a
// session needs is delegated to the configured pathio.PathIO.
type Server struct {
	pathIO       pathio.PathIO
	users        []*User
	logger       *slog.Logger
	timeout      time.Duration
	listenerHost string

	listener net.Listener

	mu       sync.Mutex
	sessions map[*session]struct{}
	closing  bool
}

// NewServer builds a Server from the given options. WithPathIO is
// required; at least one user (WithUsers) should normally be configured,
// though a server with none simply refuses every login.
func NewServer(opts ...Option) (*Server, error) {
	s := &Server{
		logger:   slog.Default(),
		sessions: make(map[*session]struct{}),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.pathIO == nil {
		return nil, errors.New("server: WithPathIO is required")
	}

	return s, nil
}

// findUser resolves a USER argument against the configured account list,
// falling back to the anonymous account (Login == nil) when no named
// account matches.
func (s *Server) findUser(login string) *User {
	var anon *User
	for _, u := range s.users {
		if u.Login == nil {
			anon = u
			continue
		}
		if *u.Login == login {
			return u
		}
	}
	return anon
}

// ListenAndServe listens on addr and serves connections until Shutdown is
// called or Serve returns an unrecoverable accept error.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln, handing each to its own session
// goroutine, until ln is closed by Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closing := s.closing
			s.mu.Unlock()
			if closing {
				return nil
			}
			return err
		}

		sess := newSession(s, conn)
		s.trackSession(sess)
		go sess.serve()
	}
}

// Shutdown closes the listener and every tracked session's connection,
// unblocking their dispatch loops. It does not wait for session goroutines
// to finish; callers that need that can poll activeSessions or add their
// own synchronization.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	s.closing = true
	ln := s.listener
	sessions := make([]*session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	var err error
	if ln != nil {
		err = ln.Close()
	}
	for _, sess := range sessions {
		sess.conn.Close()
	}
	return err
}

func (s *Server) trackSession(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess] = struct{}{}
}

func (s *Server) forgetSession(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess)
}

// activeSessions reports the number of sessions currently being served.
func (s *Server) activeSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
