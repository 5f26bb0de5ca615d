package server

import (
	"bufio"
	"context"
	"testing"

	"github.com/halvorsen/ftpd/pathio"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context { return context.Background() }

func newFileTestSession(t *testing.T) (*session, *bufio.Reader) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/base/docs", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/base/docs/file.txt", []byte("x"), 0o644))

	srv, err := NewServer(WithPathIO(pathio.NewAferoPathIO(fs)))
	require.NoError(t, err)

	s, client := newTestSession(t)
	s.server = srv
	s.user = NewUser(nil, nil, "/base")
	s.currentDirectory = "/"

	return s, bufio.NewReader(client)
}

func TestCwdIntoFileFails(t *testing.T) {
	s, client := newFileTestSession(t)
	go func() { _ = handleCWD(s, "/docs/file.txt") }()

	line, err := client.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "550 path is not a directory\r\n", line)
}

func TestCwdMissingPath(t *testing.T) {
	s, client := newFileTestSession(t)
	go func() { _ = handleCWD(s, "/nope") }()

	line, err := client.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "550 path does not exists\r\n", line)
}

func TestMkdOnExistingPathFails(t *testing.T) {
	s, client := newFileTestSession(t)
	go func() { _ = handleMKD(s, "/docs") }()

	line, err := client.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "550 path already exists\r\n", line)
}

func TestMkdDeniedWithoutWritePermission(t *testing.T) {
	s, client := newFileTestSession(t)
	s.user.Permissions = []Permission{NewPermission("/", true, false)}
	go func() { _ = handleMKD(s, "/newdir") }()

	line, err := client.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "550 permission denied\r\n", line)
}

func TestRmdSucceedsAndReturnsReply(t *testing.T) {
	s, client := newFileTestSession(t)
	require.NoError(t, s.server.pathIO.Mkdir(testContext(), "/base/empty", true))

	go func() { _ = handleRMD(s, "/empty") }()

	line, err := client.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "257 \r\n", line)
}
