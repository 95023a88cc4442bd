//go:build !linux && !windows

package dirx

// Portable enumeration for platforms without a syscall-level cursor here
// (darwin and the BSDs among others). Creation and access times are not exposed
// by os.FileInfo, so only Modified is filled.

import (
	"errors"
	"io"
	"os"
	"syscall"
)

type nativeBackend struct{}

type osCursor struct {
	f    *os.File
	path string
}

func (nativeBackend) OpenCursor(path string) (Cursor, Stamp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stamp{}, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, Stamp{}, err
	}
	if !info.IsDir() {
		_ = f.Close()
		return nil, Stamp{}, &os.PathError{Op: "opendir", Path: path, Err: syscall.ENOTDIR}
	}

	return &osCursor{f: f, path: path}, Stamp{Modified: info.ModTime()}, nil
}

func (c *osCursor) Next(entry *Entry) (bool, error) {
	for {
		items, err := c.f.ReadDir(1)
		if errors.Is(err, io.EOF) || (err == nil && len(items) == 0) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		info, err := items[0].Info()
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, err
		}

		*entry = Entry{
			Path:     c.path + items[0].Name(),
			Modified: info.ModTime(),
			Size:     uint64(info.Size()),
			IsDir:    items[0].IsDir(),
		}
		return true, nil
	}
}

func (c *osCursor) Close() error {
	if c.f == nil {
		return nil
	}

	err := c.f.Close()
	c.f = nil
	return err
}
