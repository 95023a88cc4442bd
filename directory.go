package dirx

import (
	"errors"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// Directory is an enumeration handle over a single directory.
//
// A Directory is open from a successful Open until Close. It owns its cursor
// exclusively and is not safe for concurrent use; callers must serialize
// access. Every successful Open must be matched by one Close.
type Directory struct {
	Path     string
	Created  time.Time
	Accessed time.Time
	Modified time.Time

	cursor Cursor
	err    error
	logger zerolog.Logger
}

// DirectoryExist reports whether path can be opened as a directory
func DirectoryExist(path string, options ...Option) bool {
	_, err := Info(path, options...)
	return err == nil
}

// Open normalizes path and opens an enumeration cursor over it.
// It fails with ErrNotADirectory when path names a file and with
// ErrCannotOpen for any other failure.
func Open(path string, options ...Option) (*Directory, error) {
	return openDirectory(Normalize(path), applyOptions(options))
}

func openDirectory(path string, opts *options) (*Directory, error) {
	cursor, stamp, err := opts.backend.OpenCursor(path)
	if err != nil {
		opts.logger.Debug().Str("path", path).Err(err).Msg("open directory failed")
		if errors.Is(err, syscall.ENOTDIR) {
			return nil, newNotADirectoryError(path, err)
		}
		return nil, newCannotOpenError(path, err)
	}

	opts.logger.Debug().Str("path", path).Msg("directory opened")

	return &Directory{
		Path:     path,
		Created:  stamp.Created,
		Accessed: stamp.Accessed,
		Modified: stamp.Modified,
		cursor:   cursor,
		logger:   opts.logger,
	}, nil
}

// Info returns the metadata of the directory at path without leaving a
// cursor open.
func Info(path string, options ...Option) (*Directory, error) {
	dir, err := Open(path, options...)
	if err != nil {
		return nil, err
	}

	if err := dir.Close(false); err != nil {
		return nil, newCannotOpenError(dir.Path, err)
	}

	return dir, nil
}

// IsEmptyDirectory reports whether the directory at path has no entries.
// Dot-prefixed entries count.
func IsEmptyDirectory(path string, options ...Option) (bool, error) {
	dir, err := Open(path, options...)
	if err != nil {
		return false, err
	}
	defer dir.Close(true)

	var entry Entry
	if dir.Next(&entry) {
		return false, nil
	}
	if err := dir.Err(); err != nil {
		return false, err
	}

	return true, nil
}

// IsOpen reports whether the handle still owns a cursor
func (d *Directory) IsOpen() bool {
	return d.cursor != nil
}

// Next advances to the next entry and stores it in entry. It returns false
// when the directory is exhausted or enumeration failed; check Err to tell
// the two apart. On false the content of entry is unspecified.
//
// Next panics if the directory is closed.
func (d *Directory) Next(entry *Entry) bool {
	if d.cursor == nil {
		panic("dirx: Next called on a closed directory")
	}
	if d.err != nil {
		return false
	}

	ok, err := d.cursor.Next(entry)
	if err != nil {
		d.err = newReadDirectoryError(d.Path, err)
		return false
	}

	return ok
}

// Err returns the first error met by Next, if any
func (d *Directory) Err() error {
	return d.err
}

// Close releases the cursor. It is a no-op on a closed directory.
// With releasePath the handle also drops its path.
func (d *Directory) Close(releasePath bool) error {
	var err error
	if d.cursor != nil {
		err = d.cursor.Close()
		d.cursor = nil
	}

	if releasePath {
		d.Path = ""
	}

	return err
}
