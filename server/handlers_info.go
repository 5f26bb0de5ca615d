package server

import (
	"context"
	"fmt"
	"net"
	"path"
	"strings"

	"github.com/halvorsen/ftpd/pathio"
)

const mlstTimeLayout = "20060102150405"

// buildMlsxFact renders one RFC 3659 fact string for a single path: its
// type, size, and modify/create timestamps, followed by its basename.
func buildMlsxFact(ctx context.Context, pio pathio.PathIO, realPath, name string) (string, error) {
	info, err := pio.Stat(ctx, realPath)
	if err != nil {
		return "", err
	}

	typ := "file"
	if info.IsDir {
		typ = "dir"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Type=%s;Size=%d;Modify=%s;Create=%s; %s",
		typ, info.Size, info.ModTime.UTC().Format(mlstTimeLayout), info.CreateTime.UTC().Format(mlstTimeLayout), name)
	return b.String(), nil
}

// handleMLSD lists a directory in the RFC 3659 machine-readable format over
// the session's passive data connection. The listing itself runs in a
// background goroutine so the control connection can receive the final 200
// reply independently of how long the transfer takes; the 150 reply is
// written before the background writer starts.
func handleMLSD(s *session, arg string) error {
	realPath, virtualPath := s.getPaths(arg)
	perm := s.user.GetPermissions(virtualPath)
	if !perm.Readable {
		return s.writeResponse(550, []string{"permission denied"}, false)
	}

	dataConn := s.takePassiveConn()
	if dataConn == nil {
		return s.writeResponse(425, []string{"no passive connection created (connect firstly)"}, false)
	}

	if err := s.writeResponse(150, []string{"mlsd transer started"}, false); err != nil {
		dataConn.Close()
		return err
	}

	go s.mlsdWriter(dataConn, realPath)
	return nil
}

func (s *session) mlsdWriter(dataConn net.Conn, realPath string) {
	ctx := context.Background()
	entries, err := s.server.pathIO.List(ctx, realPath)
	if err == nil {
		for _, entry := range entries {
			entryPath := path.Join(realPath, entry.Name)
			fact, ferr := buildMlsxFact(ctx, s.server.pathIO, entryPath, entry.Name)
			if ferr != nil {
				continue
			}
			if _, werr := dataConn.Write([]byte(fact + "\r\n")); werr != nil {
				break
			}
		}
	}

	// The data socket must be closed before the completion reply is written
	// on the control channel, not merely deferred past it.
	dataConn.Close()

	_ = s.writeResponse(200, []string{"mlsd data transer done"}, false)
}

// handleMLST reports facts about a single path as a multi-line 250 reply,
// or 550 if the path is not readable under the user's permissions.
func handleMLST(s *session, arg string) error {
	realPath, virtualPath := s.getPaths(arg)
	perm := s.user.GetPermissions(virtualPath)
	if !perm.Readable {
		return s.writeResponse(550, []string{"permission denied"}, false)
	}

	name := path.Base(virtualPath)
	fact, err := buildMlsxFact(context.Background(), s.server.pathIO, realPath, name)
	if err != nil {
		return s.writeResponse(550, []string{"os error: " + err.Error()}, false)
	}

	return s.writeResponse(250, []string{"start", fact, "end"}, true)
}
