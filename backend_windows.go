//go:build windows

package dirx

import (
	"errors"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

type nativeBackend struct{}

// windowsCursor wraps a FindFirstFile handle. pending marks a first match
// that is a real entry and must be yielded before FindNextFile is called.
type windowsCursor struct {
	handle  windows.Handle
	path    string
	data    windows.Win32finddata
	pending bool
}

// OpenCursor searches "<dir>*". Usually the first match is "." and carries
// the directory's own timestamps. A volume root has no "." entry, so there
// the first match is queued for Next and the timestamps come from
// GetFileAttributesEx.
func (nativeBackend) OpenCursor(path string) (Cursor, Stamp, error) {
	pattern, err := windows.UTF16PtrFromString(path + "*")
	if err != nil {
		return nil, Stamp{}, err
	}

	c := &windowsCursor{path: path}
	c.handle, err = windows.FindFirstFile(pattern, &c.data)
	if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) {
		// an empty volume root matches nothing at all
		stamp, err := directoryStamp(path)
		if err != nil {
			return nil, Stamp{}, err
		}
		return &windowsCursor{handle: windows.InvalidHandle, path: path}, stamp, nil
	}
	if err != nil {
		if errors.Is(err, windows.ERROR_DIRECTORY) {
			return nil, Stamp{}, syscall.ENOTDIR
		}
		return nil, Stamp{}, err
	}

	if windows.UTF16ToString(c.data.FileName[:]) == "." {
		if c.data.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
			_ = c.Close()
			return nil, Stamp{}, syscall.ENOTDIR
		}

		return c, Stamp{
			Created:  filetimeToTime(c.data.CreationTime),
			Accessed: filetimeToTime(c.data.LastAccessTime),
			Modified: filetimeToTime(c.data.LastWriteTime),
		}, nil
	}

	c.pending = true

	stamp, err := directoryStamp(path)
	if err != nil {
		_ = c.Close()
		return nil, Stamp{}, err
	}

	return c, stamp, nil
}

func directoryStamp(path string) (Stamp, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Stamp{}, err
	}

	var attrs windows.Win32FileAttributeData
	err = windows.GetFileAttributesEx(name, windows.GetFileExInfoStandard, (*byte)(unsafe.Pointer(&attrs)))
	if err != nil {
		return Stamp{}, err
	}
	if attrs.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY == 0 {
		return Stamp{}, syscall.ENOTDIR
	}

	return Stamp{
		Created:  filetimeToTime(attrs.CreationTime),
		Accessed: filetimeToTime(attrs.LastAccessTime),
		Modified: filetimeToTime(attrs.LastWriteTime),
	}, nil
}

func (c *windowsCursor) Next(entry *Entry) (bool, error) {
	if c.pending {
		c.pending = false
		c.fill(entry)
		return true, nil
	}
	if c.handle == windows.InvalidHandle {
		return false, nil
	}

	for {
		err := windows.FindNextFile(c.handle, &c.data)
		if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		// "." and ".." are not entries, same as on the other backends
		if name := windows.UTF16ToString(c.data.FileName[:]); name == "." || name == ".." {
			continue
		}

		c.fill(entry)
		return true, nil
	}
}

func (c *windowsCursor) fill(entry *Entry) {
	*entry = Entry{
		Path:     c.path + windows.UTF16ToString(c.data.FileName[:]),
		Created:  filetimeToTime(c.data.CreationTime),
		Accessed: filetimeToTime(c.data.LastAccessTime),
		Modified: filetimeToTime(c.data.LastWriteTime),
		Size:     splitToUint64(c.data.FileSizeHigh, c.data.FileSizeLow),
		IsDir:    c.data.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0,
	}
}

func (c *windowsCursor) Close() error {
	if c.handle == windows.InvalidHandle {
		return nil
	}

	err := windows.FindClose(c.handle)
	c.handle = windows.InvalidHandle
	return err
}

func filetimeToTime(ft windows.Filetime) time.Time {
	return FiletimeToTime(splitToUint64(ft.HighDateTime, ft.LowDateTime))
}
