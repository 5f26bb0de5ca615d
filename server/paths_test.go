package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaths(t *testing.T) {
	s := &session{
		user:             &User{BasePath: "/srv/base"},
		currentDirectory: "/docs",
	}

	real, virtual := s.getPaths("readme.txt")
	assert.Equal(t, "/docs/readme.txt", virtual)
	assert.Equal(t, "/srv/base/docs/readme.txt", real)

	real, virtual = s.getPaths("/elsewhere")
	assert.Equal(t, "/elsewhere", virtual)
	assert.Equal(t, "/srv/base/elsewhere", real)

	real, virtual = s.getPaths("..")
	assert.Equal(t, "/", virtual)
	assert.Equal(t, "/srv/base", real)
}
