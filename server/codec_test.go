package server

import (
	"bufio"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*session, net.Conn) {
	t.Helper()
	serverConn, clientConn := net.Pipe()
	t.Cleanup(func() {
		serverConn.Close()
		clientConn.Close()
	})

	s := &session{
		conn:   serverConn,
		reader: bufio.NewReader(serverConn),
		writer: bufio.NewWriter(serverConn),
	}
	return s, clientConn
}

func TestWriteResponseSingleLine(t *testing.T) {
	s, client := newTestSession(t)
	go func() {
		_ = s.writeResponse(220, []string{"welcome"}, false)
	}()

	buf := make([]byte, 64)
	n, err := client.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "220 welcome\r\n", string(buf[:n]))
}

func TestWriteResponseMultiLine(t *testing.T) {
	s, client := newTestSession(t)
	go func() {
		_ = s.writeResponse(250, []string{"start", "fact string", "end"}, true)
	}()

	reader := bufio.NewReader(client)
	line1, _ := reader.ReadString('\n')
	line2, _ := reader.ReadString('\n')
	line3, _ := reader.ReadString('\n')

	require.Equal(t, "250-start\r\n", line1)
	require.Equal(t, " fact string\r\n", line2)
	require.Equal(t, "250 end\r\n", line3)
}

func TestReadCommandSplitsVerbAndArg(t *testing.T) {
	s, client := newTestSession(t)
	go func() {
		_, _ = client.Write([]byte("USER anonymous\r\n"))
	}()

	verb, rest, err := s.readCommand()
	require.NoError(t, err)
	require.Equal(t, "user", verb)
	require.Equal(t, "anonymous", rest)
}

func TestReadCommandConnectionClosed(t *testing.T) {
	s, client := newTestSession(t)
	client.Close()

	_, _, err := s.readCommand()
	require.ErrorIs(t, err, ErrConnectionClosed)
}
