package server

// handleUSER looks up the requested login among the server's configured
// users, falling back to the anonymous user (Login == nil) if no named user
// matches. The anonymous user logs in immediately; every named user, even
// one configured with no password, must still follow up with PASS.
func handleUSER(s *session, arg string) error {
	u := s.server.findUser(arg)
	if u == nil {
		return s.writeResponse(530, []string{"no such username"}, false)
	}

	s.user = u
	s.logged = false
	s.currentDirectory = u.HomePath
	if s.currentDirectory == "" {
		s.currentDirectory = "/"
	}

	if u.Login == nil {
		s.logged = true
		return s.writeResponse(230, []string{"anonymous login"}, false)
	}
	return s.writeResponse(331, []string{"require password"}, false)
}

// handlePASS checks the supplied password against the current user, which
// must already be set by a prior USER command (enforced by the userRequired
// gate this handler is wrapped in).
func handlePASS(s *session, arg string) error {
	u := s.user
	if u.Password != nil && *u.Password == arg {
		s.logged = true
		return s.writeResponse(230, []string{"normal login"}, false)
	}
	return s.writeResponse(530, []string{"wrong password"}, false)
}

// handleQUIT replies and tells the dispatch loop to terminate the session.
func handleQUIT(s *session, arg string) error {
	if err := s.writeResponse(221, []string{"bye"}, false); err != nil {
		return err
	}
	return errQuit
}
