//go:build linux

package dirx

// Linux enumeration reads raw dirents (getdents64 via unix.ReadDirent) from
// a directory fd and stats each name relative to that fd. statx supplies the
// birth time; kernels (or sandboxes) without statx fall back to fstatat,
// where the status change time stands in for creation.

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

const direntBufferSize = 8192

type nativeBackend struct{}

type linuxCursor struct {
	fd    int
	path  string
	buf   []byte
	data  []byte
	names []string
	statx bool
}

func (nativeBackend) OpenCursor(path string) (Cursor, Stamp, error) {
	var (
		fd  int
		err error
	)
	for {
		fd, err = unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		break
	}
	if err != nil {
		return nil, Stamp{}, err
	}

	c := &linuxCursor{
		fd:    fd,
		path:  path,
		buf:   make([]byte, direntBufferSize),
		statx: true,
	}

	// Same stat call as entries, so Info and the parent listing agree.
	var self Entry
	if err := c.statAt("", unix.AT_EMPTY_PATH, &self); err != nil {
		_ = unix.Close(fd)
		return nil, Stamp{}, err
	}

	return c, Stamp{
		Created:  self.Created,
		Accessed: self.Accessed,
		Modified: self.Modified,
	}, nil
}

func (c *linuxCursor) Next(entry *Entry) (bool, error) {
	for {
		for len(c.names) > 0 {
			name := c.names[0]
			c.names = c.names[1:]

			ok, err := c.stat(name, entry)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}

		if len(c.data) == 0 {
			n, err := c.readDirent()
			if err != nil {
				return false, err
			}
			if n == 0 {
				return false, nil
			}
			c.data = c.buf[:n]
		}

		consumed, _, names := unix.ParseDirent(c.data, -1, c.names[:0])
		c.data = c.data[consumed:]
		c.names = names
	}
}

func (c *linuxCursor) readDirent() (int, error) {
	for {
		n, err := unix.ReadDirent(c.fd, c.buf)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		return n, err
	}
}

// stat fills entry for name. It returns false without error when the entry
// vanished between readdir and stat.
func (c *linuxCursor) stat(name string, entry *Entry) (bool, error) {
	err := c.statAt(name, 0, entry)
	if errors.Is(err, unix.ENOENT) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	entry.Path = c.path + name
	return true, nil
}

// statAt stats name relative to the cursor fd without following symlinks.
// Path is left empty.
func (c *linuxCursor) statAt(name string, flags int, entry *Entry) error {
	flags |= unix.AT_SYMLINK_NOFOLLOW

	if c.statx {
		var stx unix.Statx_t
		err := unix.Statx(c.fd, name, flags, unix.STATX_BASIC_STATS|unix.STATX_BTIME, &stx)
		switch {
		case err == nil:
			*entry = Entry{
				Created:  statxTimestampToTime(stx.Btime),
				Accessed: statxTimestampToTime(stx.Atime),
				Modified: statxTimestampToTime(stx.Mtime),
				Size:     stx.Size,
				IsDir:    uint32(stx.Mode)&unix.S_IFMT == unix.S_IFDIR,
			}
			if stx.Mask&unix.STATX_BTIME == 0 {
				entry.Created = statxTimestampToTime(stx.Ctime)
			}
			return nil
		case errors.Is(err, unix.ENOSYS), errors.Is(err, unix.EPERM):
			// statx missing or filtered by a seccomp profile
			c.statx = false
		default:
			return err
		}
	}

	var st unix.Stat_t
	if err := unix.Fstatat(c.fd, name, &st, flags); err != nil {
		return err
	}

	*entry = Entry{
		Created:  timespecToTime(st.Ctim),
		Accessed: timespecToTime(st.Atim),
		Modified: timespecToTime(st.Mtim),
		Size:     uint64(st.Size),
		IsDir:    st.Mode&unix.S_IFMT == unix.S_IFDIR,
	}
	return nil
}

func (c *linuxCursor) Close() error {
	if c.fd < 0 {
		return nil
	}

	err := unix.Close(c.fd)
	c.fd = -1
	c.names = nil
	c.data = nil
	return err
}

func timespecToTime(ts unix.Timespec) time.Time {
	return time.Unix(ts.Unix())
}

func statxTimestampToTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}
