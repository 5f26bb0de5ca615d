package server

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// handleTYPE supports only image (binary) transfer mode; every other type
// code is rejected, matching the spec's STOR/RETR-less scope (ASCII
// conversion has nothing to operate on here).
func handleTYPE(s *session, arg string) error {
	if arg == "I" {
		s.transferType = arg
		return s.writeResponse(200, []string{""}, false)
	}
	return s.writeResponse(502, []string{"type '" + arg + "' not implemented"}, false)
}

// handlePASV opens (or reuses) an ephemeral listening socket for the next
// data transfer and reports its address as an RFC 959 host/port octet
// tuple. The first connection accepted on this listener is kept until a
// transfer claims it; any further connection arriving meanwhile is closed
// immediately (first-accept-wins).
func handlePASV(s *session, arg string) error {
	s.mu.Lock()
	alreadyListening := s.passiveServer != nil
	s.mu.Unlock()

	var message string
	if alreadyListening {
		message = "listen socket already exists"
	} else {
		ln, err := net.Listen("tcp", net.JoinHostPort(s.serverHost, "0"))
		if err != nil {
			return s.writeResponse(425, []string{"can't open passive connection: " + err.Error()}, false)
		}

		s.mu.Lock()
		s.passiveServer = ln
		s.mu.Unlock()

		go s.acceptPassive(ln)
		message = "listen socket created"
	}

	s.mu.Lock()
	addr := s.passiveServer.Addr().(*net.TCPAddr)
	s.mu.Unlock()

	tuple, err := passiveTuple(addr)
	if err != nil {
		return s.writeResponse(425, []string{err.Error()}, false)
	}

	return s.writeResponse(227, []string{message, tuple}, true)
}

// acceptPassive accepts connections on ln until the listener is closed. An
// accepted connection is stored for a later data-transfer handler to claim
// via session.takePassiveConn; any connection that arrives while that slot
// is still occupied is closed immediately.
func (s *session) acceptPassive(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		if s.passiveServer != ln {
			s.mu.Unlock()
			conn.Close()
			return
		}
		if s.passiveConn != nil {
			s.mu.Unlock()
			conn.Close()
			continue
		}
		s.passiveConn = conn
		s.mu.Unlock()
	}
}

// passiveTuple formats a TCP address as the six-number "(h1,h2,h3,h4,p1,p2)"
// PASV reply argument.
func passiveTuple(addr *net.TCPAddr) (string, error) {
	ip4 := addr.IP.To4()
	if ip4 == nil {
		return "", fmt.Errorf("passive address %s is not IPv4", addr.IP)
	}

	parts := make([]string, 0, 6)
	for _, b := range ip4 {
		parts = append(parts, strconv.Itoa(int(b)))
	}
	parts = append(parts, strconv.Itoa(addr.Port>>8), strconv.Itoa(addr.Port&0xff))
	return "(" + strings.Join(parts, ",") + ")", nil
}
