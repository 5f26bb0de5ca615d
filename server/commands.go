package server

import "errors"

// errQuit is returned by handleQUIT to tell session.serve to stop the
// dispatch loop after the 221 reply has been flushed.
var errQuit = errors.New("ftp: quit")

// commandHandlers maps a lowercased verb to its fully-gated handler. Built
// once at package init so the dispatch loop in session.serve is a single
// map lookup.
var commandHandlers map[string]handlerFunc

func init() {
	commandHandlers = map[string]handlerFunc{
		"user": handleUSER,
		"pass": userRequired(handlePASS),
		"quit": handleQUIT,

		"pwd":  loginRequired(handlePWD),
		"cwd":  loginRequired(handleCWD),
		"cdup": loginRequired(handleCDUP),
		"mkd":  loginRequired(handleMKD),
		"rmd":  loginRequired(handleRMD),

		"type": loginRequired(handleTYPE),
		"pasv": loginRequired(handlePASV),

		"mlsd": loginRequired(passiveRequired(handleMLSD)),
		"mlst": loginRequired(handleMLST),

		// Reserved: payload transfer is not implemented by this package.
		// These verbs are recognized and gated identically to a real
		// implementation but always answer the same as an unknown verb.
		"retr": loginRequired(reservedHandler("retr")),
		"stor": loginRequired(reservedHandler("stor")),
		"dele": loginRequired(reservedHandler("dele")),
		"rnfr": loginRequired(reservedHandler("rnfr")),
		"rnto": loginRequired(reservedHandler("rnto")),
		"abor": loginRequired(reservedHandler("abor")),
	}
}

// reservedHandler answers a reserved-but-unimplemented verb identically to
// the dispatcher's unknown-command path.
func reservedHandler(verb string) handlerFunc {
	return func(s *session, arg string) error {
		return s.writeResponse(502, []string{"'" + verb + "' not implemented"}, false)
	}
}
