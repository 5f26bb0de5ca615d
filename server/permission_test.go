package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVirtual(t *testing.T) {
	cases := map[string]string{
		"":              "/",
		"/":             "/",
		"a":             "/a",
		"/a/b/../c":     "/a/c",
		"/a/../../b":    "/b",
		"/a/./b/":       "/a/b",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeVirtual(in), "input %q", in)
	}
}

func TestGetPermissionsPicksDeepestMatch(t *testing.T) {
	u := NewUser(nil, nil, "/srv/base")
	u.Permissions = []Permission{
		NewPermission("/", true, false),
		NewPermission("/pub", true, true),
		NewPermission("/pub/incoming", false, true),
	}

	require.True(t, u.GetPermissions("/other").Readable)
	require.False(t, u.GetPermissions("/other").Writable)

	p := u.GetPermissions("/pub/incoming/file.txt")
	assert.False(t, p.Readable)
	assert.True(t, p.Writable)

	p = u.GetPermissions("/pub/docs")
	assert.True(t, p.Readable)
	assert.True(t, p.Writable)
}

func TestGetPermissionsDefaultsWhenNoneConfigured(t *testing.T) {
	u := &User{BasePath: "/srv/base"}
	p := u.GetPermissions("/anything")
	assert.True(t, p.Readable)
	assert.True(t, p.Writable)
}

func TestPermissionIsAncestorOf(t *testing.T) {
	root := NewPermission("/", true, true)
	assert.True(t, root.isAncestorOf("/a/b/c"))

	pub := NewPermission("/pub", true, true)
	assert.True(t, pub.isAncestorOf("/pub"))
	assert.True(t, pub.isAncestorOf("/pub/sub"))
	assert.False(t, pub.isAncestorOf("/public"))
	assert.False(t, pub.isAncestorOf("/other"))
}
