package server

import (
	"path"
	"path/filepath"
	"strings"
)

// getPaths joins the session's current directory with a command argument,
// normalizes it to an absolute virtual path, and maps that onto a real path
// under the user's base path. No sandbox check happens here — containment
// is the permission layer's job (User.GetPermissions); this function only
// computes where a path lexically lands.
func (s *session) getPaths(arg string) (realPath, virtualPath string) {
	if path.IsAbs(arg) {
		virtualPath = normalizeVirtual(arg)
	} else {
		virtualPath = normalizeVirtual(path.Join(s.currentDirectory, arg))
	}

	rel := strings.TrimPrefix(virtualPath, "/")
	realPath = filepath.Join(s.user.BasePath, filepath.FromSlash(rel))
	return realPath, virtualPath
}
