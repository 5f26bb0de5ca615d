//go:build !linux

package pathio

import (
	"os"
	"time"
)

// ctime falls back to mtime on platforms without a portable st_ctime
// accessor (darwin/bsd name the field Ctimespec instead of Ctim; windows
// has no ctime at all).
func ctime(fi os.FileInfo) time.Time {
	return fi.ModTime()
}
