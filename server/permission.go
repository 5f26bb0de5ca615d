package server

import (
	"path"
	"strings"
)

// Permission grants or denies read/write access to a virtual path prefix.
// Path defaults to "/" (full-tree access) when constructed via NewPermission.
type Permission struct {
	Path     string // virtual path prefix, normalized, rooted at "/"
	Readable bool
	Writable bool
}

// NewPermission builds a Permission rooted at the given virtual path
// (normalized; an empty path becomes "/") with the given read and write bits.
func NewPermission(virtualPath string, readable, writable bool) Permission {
	return Permission{
		Path:     normalizeVirtual(virtualPath),
		Readable: readable,
		Writable: writable,
	}
}

// defaultPermission is returned by User.GetPermissions when no configured
// permission covers the requested path: full access at the root.
func defaultPermission() Permission {
	return Permission{Path: "/", Readable: true, Writable: true}
}

// isAncestorOf reports whether virtualPath can be expressed relative to p.Path
// without ascending above it — i.e. p.Path is an ancestor of (or equal to)
// virtualPath.
func (p Permission) isAncestorOf(virtualPath string) bool {
	if p.Path == "/" {
		return true
	}
	return virtualPath == p.Path || strings.HasPrefix(virtualPath, p.Path+"/")
}

// depthBelow returns the number of path components remaining between p.Path
// and virtualPath. Used to pick the deepest (most specific) matching prefix.
func (p Permission) depthBelow(virtualPath string) int {
	rel := strings.TrimPrefix(virtualPath, p.Path)
	rel = strings.Trim(rel, "/")
	if rel == "" {
		return 0
	}
	return len(strings.Split(rel, "/"))
}

// User owns an ordered, non-empty collection of Permission entries and a
// mapping from the client's virtual view of the filesystem to a real path
// on the path-I/O backend.
//
// A user with Login == nil is the anonymous user: it matches any USER
// argument when no named user in the server's configured list does.
type User struct {
	Login    *string // nil means anonymous
	Password *string // nil means no password is set; PASS never succeeds then
	BasePath string  // real path root for this user
	HomePath string  // virtual path the session starts in after login, default "/"

	// Permissions is consulted deepest-prefix-first by GetPermissions. A
	// well-formed list has no two entries at the same depth on the same
	// path chain; ties are broken by first occurrence.
	Permissions []Permission
}

// NewUser builds a User with the spec's defaults: home "/" and a single
// full-access permission at "/" when none is supplied.
func NewUser(login, password *string, basePath string) *User {
	return &User{
		Login:       login,
		Password:    password,
		BasePath:    basePath,
		HomePath:    "/",
		Permissions: []Permission{defaultPermission()},
	}
}

// GetPermissions resolves the most specific Permission covering virtualPath:
// among every configured Permission that is an ancestor of (or equal to)
// virtualPath, it returns the one with the fewest remaining path components.
// If none match, it returns a fully-open default Permission("/").
func (u *User) GetPermissions(virtualPath string) Permission {
	virtualPath = normalizeVirtual(virtualPath)

	best, haveBest := Permission{}, false
	bestDepth := 0
	for _, p := range u.Permissions {
		if !p.isAncestorOf(virtualPath) {
			continue
		}
		depth := p.depthBelow(virtualPath)
		if !haveBest || depth < bestDepth {
			best, bestDepth, haveBest = p, depth, true
		}
	}
	if !haveBest {
		return defaultPermission()
	}
	return best
}

// normalizeVirtual cleans a virtual path, collapsing ".." components and
// ensuring it is rooted at "/". path.Clean on an absolute path never escapes
// above root, which is what closes the traversal gap the source's path
// resolver otherwise leaves open (see spec open question on ".." handling).
func normalizeVirtual(p string) string {
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
