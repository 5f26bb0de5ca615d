package server

import "fmt"

// handlerFunc implements one FTP verb. It returns errQuit to tell serve to
// terminate the session after the reply has been written; any other
// non-nil error aborts the session as if the connection had dropped.
type handlerFunc func(s *session, arg string) error

// badSequence replies 503 with the RFC-style "bad sequence of commands"
// wrapper the gates below use.
func (s *session) badSequence(reason string) error {
	return s.writeResponse(503, []string{fmt.Sprintf("bad sequence of commands (%s)", reason)}, false)
}

// userRequired rejects commands sent before USER, independent of whether
// login has completed.
func userRequired(next handlerFunc) handlerFunc {
	return func(s *session, arg string) error {
		if s.user == nil {
			return s.badSequence("no user (use USER firstly)")
		}
		return next(s, arg)
	}
}

// loginRequired rejects commands sent before a successful PASS.
func loginRequired(next handlerFunc) handlerFunc {
	return func(s *session, arg string) error {
		if !s.logged {
			return s.badSequence("not logged in")
		}
		return next(s, arg)
	}
}

// passiveRequired rejects data-transfer commands sent before PASV has
// produced a listening socket, or before a client has connected to it.
func passiveRequired(next handlerFunc) handlerFunc {
	return func(s *session, arg string) error {
		s.mu.Lock()
		hasListener := s.passiveServer != nil
		hasConn := s.passiveConn != nil
		s.mu.Unlock()

		if !hasListener {
			return s.badSequence("no listen socket created (use PASV firstly)")
		}
		if !hasConn {
			return s.badSequence("no passive connection created (connect firstly)")
		}
		return next(s, arg)
	}
}
