// Package pathio defines the abstract, suspension-capable filesystem
// capability the FTP core calls through.
//
// The core never touches a concrete filesystem directly: every directory
// and file operation driven by a command handler goes through the narrow
// PathIO contract defined here, which is exactly the seven operations
// RFC-shaped FTP servers in the wild need (exists, is-file, is-dir, stat,
// list, mkdir, rmdir). This keeps the storage backend pluggable — the
// default implementation is backed by afero.Fs, so swapping an OS-rooted
// tree for an in-memory one (tests) or a custom backend is a one-line
// change at construction time.
package pathio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when a path does not exist.
var ErrNotFound = errors.New("path does not exist")

// ErrNotADirectory is returned when a directory operation targets a file.
var ErrNotADirectory = errors.New("path is not a directory")

// Info is the subset of filesystem metadata the core needs to build MLSx
// fact strings and answer size/type queries. Size, ModTime and CreateTime
// correspond to the st_size, st_mtime and st_ctime fields the spec names.
type Info struct {
	Name       string
	IsDir      bool
	Size       int64
	ModTime    time.Time
	CreateTime time.Time
}

// PathIO is the abstract path-I/O capability consumed by the core.
//
// All paths passed to these methods are real paths (already resolved
// through a user's base path by the caller), not virtual ones. Every method
// is suspension-capable in the sense that implementations may block on
// real I/O; callers should not hold session locks across a call.
type PathIO interface {
	// Exists reports whether path refers to anything on disk.
	Exists(ctx context.Context, path string) (bool, error)
	// IsFile reports whether path exists and is a regular file.
	IsFile(ctx context.Context, path string) (bool, error)
	// IsDir reports whether path exists and is a directory.
	IsDir(ctx context.Context, path string) (bool, error)
	// Stat returns metadata for path. Returns ErrNotFound if absent.
	Stat(ctx context.Context, path string) (Info, error)
	// List returns the direct children of the directory at path, sorted by
	// name for deterministic listings.
	List(ctx context.Context, path string) ([]Info, error)
	// Mkdir creates path. If parents is true, missing parent directories
	// are created as well (MKD always requests this).
	Mkdir(ctx context.Context, path string, parents bool) error
	// Rmdir removes the (assumed empty, per RFC 959 RMD semantics) directory
	// at path.
	Rmdir(ctx context.Context, path string) error
}

// AferoPathIO implements PathIO on top of an afero.Fs, the virtual
// filesystem abstraction used throughout the FTP/VFS corner of the Go
// ecosystem (fclairamb/ftpserverlib's own Driver example takes an afero.Fs
// for exactly this role).
type AferoPathIO struct {
	fs afero.Fs
}

// NewAferoPathIO wraps fs as a PathIO. Use afero.NewOsFs() for a real
// filesystem, or afero.NewMemMapFs() for hermetic tests.
func NewAferoPathIO(fs afero.Fs) *AferoPathIO {
	return &AferoPathIO{fs: fs}
}

func (a *AferoPathIO) Exists(_ context.Context, path string) (bool, error) {
	_, err := a.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (a *AferoPathIO) IsFile(_ context.Context, path string) (bool, error) {
	info, err := a.fs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (a *AferoPathIO) IsDir(_ context.Context, path string) (bool, error) {
	info, err := a.fs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (a *AferoPathIO) Stat(_ context.Context, path string) (Info, error) {
	info, err := a.fs.Stat(path)
	if os.IsNotExist(err) {
		return Info{}, ErrNotFound
	}
	if err != nil {
		return Info{}, err
	}
	return toInfo(info), nil
}

func (a *AferoPathIO) List(_ context.Context, path string) ([]Info, error) {
	info, err := a.fs.Stat(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrNotADirectory
	}

	entries, err := afero.ReadDir(a.fs, path)
	if err != nil {
		return nil, err
	}

	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		out = append(out, toInfo(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (a *AferoPathIO) Mkdir(_ context.Context, path string, parents bool) error {
	if parents {
		return a.fs.MkdirAll(path, 0o755)
	}
	return a.fs.Mkdir(path, 0o755)
}

func (a *AferoPathIO) Rmdir(_ context.Context, path string) error {
	if err := a.fs.Remove(path); err != nil {
		return fmt.Errorf("os error: %w", err)
	}
	return nil
}

// toInfo adapts an os.FileInfo (or afero equivalent) into Info, recovering
// the creation time from the platform stat_t via ctime (see ctime_*.go) and
// falling back to the modification time when the platform or backend
// doesn't expose st_ctime.
func toInfo(fi os.FileInfo) Info {
	return Info{
		Name:       filepath.Base(fi.Name()),
		IsDir:      fi.IsDir(),
		Size:       fi.Size(),
		ModTime:    fi.ModTime(),
		CreateTime: ctime(fi),
	}
}
