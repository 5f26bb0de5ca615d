package server

import (
	"context"
)

// handlePWD reports the session's current virtual working directory.
func handlePWD(s *session, arg string) error {
	return s.writeResponse(257, []string{quotePath(s.currentDirectory)}, false)
}

// handleCWD changes the current virtual working directory, subject to the
// target existing, being a directory, and being readable under the user's
// permission list.
func handleCWD(s *session, arg string) error {
	realPath, virtualPath := s.getPaths(arg)
	ctx := context.Background()

	exists, err := s.server.pathIO.Exists(ctx, realPath)
	if err != nil {
		return s.writeResponse(550, []string{"os error: " + err.Error()}, false)
	}
	if !exists {
		return s.writeResponse(550, []string{"path does not exists"}, false)
	}

	isDir, err := s.server.pathIO.IsDir(ctx, realPath)
	if err != nil {
		return s.writeResponse(550, []string{"os error: " + err.Error()}, false)
	}
	if !isDir {
		return s.writeResponse(550, []string{"path is not a directory"}, false)
	}

	perm := s.user.GetPermissions(virtualPath)
	if !perm.Readable {
		return s.writeResponse(550, []string{"permission denied"}, false)
	}

	s.currentDirectory = virtualPath
	return s.writeResponse(250, []string{""}, false)
}

// handleCDUP is CWD to the parent of the current directory.
func handleCDUP(s *session, arg string) error {
	return handleCWD(s, "..")
}

// handleMKD creates a directory, requiring it not already exist and the
// target's virtual path to be writable.
func handleMKD(s *session, arg string) error {
	realPath, virtualPath := s.getPaths(arg)
	ctx := context.Background()

	exists, err := s.server.pathIO.Exists(ctx, realPath)
	if err != nil {
		return s.writeResponse(550, []string{"os error: " + err.Error()}, false)
	}
	if exists {
		return s.writeResponse(550, []string{"path already exists"}, false)
	}

	perm := s.user.GetPermissions(virtualPath)
	if !perm.Writable {
		return s.writeResponse(550, []string{"permission denied"}, false)
	}

	if err := s.server.pathIO.Mkdir(ctx, realPath, true); err != nil {
		return s.writeResponse(550, []string{"os error: " + err.Error()}, false)
	}
	return s.writeResponse(257, []string{""}, false)
}

// handleRMD removes a directory, requiring it exist, be a directory, and be
// writable under the user's permission list.
func handleRMD(s *session, arg string) error {
	realPath, virtualPath := s.getPaths(arg)
	ctx := context.Background()

	exists, err := s.server.pathIO.Exists(ctx, realPath)
	if err != nil {
		return s.writeResponse(550, []string{"os error: " + err.Error()}, false)
	}
	if !exists {
		return s.writeResponse(550, []string{"path does not exists"}, false)
	}

	isDir, err := s.server.pathIO.IsDir(ctx, realPath)
	if err != nil {
		return s.writeResponse(550, []string{"os error: " + err.Error()}, false)
	}
	if !isDir {
		return s.writeResponse(550, []string{"path is not a directory"}, false)
	}

	perm := s.user.GetPermissions(virtualPath)
	if !perm.Writable {
		return s.writeResponse(550, []string{"permission denied"}, false)
	}

	if err := s.server.pathIO.Rmdir(ctx, realPath); err != nil {
		// Rmdir already wraps the underlying failure as "os error: ...".
		return s.writeResponse(550, []string{err.Error()}, false)
	}
	return s.writeResponse(257, []string{""}, false)
}

func quotePath(p string) string {
	return `"` + p + `"`
}
