package server

import (
	"bufio"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

var telnetReaderPool = sync.Pool{
	New: func() any { return &telnetReader{} },
}

var controlReaderPool = sync.Pool{
	New: func() any { return bufio.NewReaderSize(nil, 4096) },
}

var controlWriterPool = sync.Pool{
	New: func() any { return bufio.NewWriterSize(nil, 4096) },
}

// session holds all per-connection state for one control connection: the
// authenticated user (once logged in), the current virtual working
// directory, the negotiated transfer type, and the passive data-channel
// slot. A session is owned by exactly one goroutine running serve, except
// for the control writer, which is additionally used by the background
// MLSD writer goroutine under mu.
type session struct {
	server *Server
	conn   net.Conn

	tnet   *telnetReader
	reader *bufio.Reader
	writer *bufio.Writer
	mu     sync.Mutex

	id         string
	clientHost string
	clientPort int
	serverHost string
	serverPort int
	timeout    time.Duration

	user             *User
	logged           bool
	currentDirectory string
	transferType     string // "A" or "I"

	// passive data channel. passiveConn holds at most one connection accepted
	// on passiveServer at a time; a transfer handler claims it exactly once
	// via takePassiveConn, which clears the slot back to nil.
	passiveServer net.Listener
	passiveConn   net.Conn

	logger *slog.Logger
}

// newSession wraps conn in the pooled telnet/control reader-writer stack and
// assigns it a fresh session id.
func newSession(srv *Server, conn net.Conn) *session {
	tnet := telnetReaderPool.Get().(*telnetReader)
	tnet.Reset(conn)

	reader := controlReaderPool.Get().(*bufio.Reader)
	reader.Reset(tnet)

	writer := controlWriterPool.Get().(*bufio.Writer)
	writer.Reset(conn)

	host, port := splitHostPort(conn.RemoteAddr())
	localHost, localPort := splitHostPort(conn.LocalAddr())
	if srv.listenerHost != "" {
		localHost = srv.listenerHost
	}

	return &session{
		server:           srv,
		conn:             conn,
		tnet:             tnet,
		reader:           reader,
		writer:           writer,
		id:               uuid.NewString(),
		clientHost:       host,
		clientPort:       port,
		serverHost:       localHost,
		serverPort:       localPort,
		timeout:          srv.timeout,
		currentDirectory: "/",
		transferType:     "A",
		logger:           srv.logger,
	}
}

// release returns the pooled reader/writer/telnet stack and closes any open
// data channel. Called once the dispatcher loop exits.
func (s *session) release() {
	s.closePassive()

	s.tnet.Reset(nil)
	telnetReaderPool.Put(s.tnet)

	s.reader.Reset(nil)
	controlReaderPool.Put(s.reader)

	s.writer.Reset(nil)
	controlWriterPool.Put(s.writer)
}

// closePassive tears down any listening or accepted passive data channel.
// Safe to call multiple times.
func (s *session) closePassive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closePassiveLocked()
}

func (s *session) closePassiveLocked() {
	if s.passiveConn != nil {
		_ = s.passiveConn.Close()
		s.passiveConn = nil
	}
	if s.passiveServer != nil {
		_ = s.passiveServer.Close()
		s.passiveServer = nil
	}
}

// takePassiveConn removes and returns the accepted passive connection, if
// any, leaving the slot empty so it can only be used once.
func (s *session) takePassiveConn() net.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.passiveConn
	s.passiveConn = nil
	return c
}

// serve runs the command dispatch loop until QUIT, a connection error, or an
// unrecoverable write failure ends the session.
func (s *session) serve() {
	defer s.server.forgetSession(s)
	defer s.conn.Close()
	defer s.release()

	s.logger.Info("session_started", "session_id", s.id, "remote", s.clientHost)
	defer s.logger.Info("session_ended", "session_id", s.id)

	if err := s.writeResponse(220, []string{"welcome"}, false); err != nil {
		return
	}

	for {
		verb, rest, err := s.readCommand()
		if err != nil {
			return
		}

		handler, ok := commandHandlers[verb]
		if !ok {
			_ = s.writeResponse(502, []string{"'" + verb + "' not implemented"}, false)
			continue
		}

		if err := handler(s, rest); err != nil {
			return
		}
	}
}

func splitHostPort(addr net.Addr) (string, int) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return "", 0
	}
	return tcpAddr.IP.String(), tcpAddr.Port
}
