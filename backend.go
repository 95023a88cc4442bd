package dirx

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"
	"syscall"
)

// Backend opens enumeration cursors over a single directory.
//
// OpenCursor receives a normalized directory path (trailing separator) and
// returns the directory's own timestamps alongside the cursor. A backend
// reports a path that names a file with an error matching syscall.ENOTDIR;
// any other error means the directory cannot be opened. On error no cursor
// is returned and nothing stays open.
type Backend interface {
	OpenCursor(path string) (Cursor, Stamp, error)
}

// Cursor is one open enumeration. Next fills entry and returns false with a
// nil error once the directory is exhausted. Entry paths are the cursor's
// directory path joined with the entry name.
//
// A Cursor is not safe for concurrent use.
type Cursor interface {
	Next(entry *Entry) (bool, error)
	Close() error
}

// FSBackend enumerates directories of fsys. Paths handed to it are resolved
// relative to the root of fsys.
func FSBackend(fsys fs.FS) Backend {
	return fsBackend{fsys: fsys}
}

type fsBackend struct {
	fsys fs.FS
}

func (b fsBackend) OpenCursor(dirPath string) (Cursor, Stamp, error) {
	name := fsName(dirPath)

	f, err := b.fsys.Open(name)
	if err != nil {
		return nil, Stamp{}, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, Stamp{}, err
	}

	dir, ok := f.(fs.ReadDirFile)
	if !info.IsDir() || !ok {
		_ = f.Close()
		return nil, Stamp{}, &fs.PathError{Op: "opendir", Path: name, Err: syscall.ENOTDIR}
	}

	return &fsCursor{
		path: dirPath,
		dir:  dir,
	}, Stamp{Modified: info.ModTime()}, nil
}

// fsName maps a normalized path onto an io/fs name
func fsName(dirPath string) string {
	name := path.Clean(strings.TrimSuffix(dirPath, "/"))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "."
	}

	return name
}

type fsCursor struct {
	path string
	dir  fs.ReadDirFile
}

func (c *fsCursor) Next(entry *Entry) (bool, error) {
	items, err := c.dir.ReadDir(1)
	if errors.Is(err, io.EOF) || (err == nil && len(items) == 0) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	info, err := items[0].Info()
	if err != nil {
		return false, err
	}

	*entry = Entry{
		Path:     c.path + items[0].Name(),
		Modified: info.ModTime(),
		IsDir:    items[0].IsDir(),
	}
	if !entry.IsDir {
		entry.Size = uint64(info.Size())
	}

	return true, nil
}

func (c *fsCursor) Close() error {
	return c.dir.Close()
}
