package dirx

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// DefaultLineBufferSize is the chunk size ReadLine reads with by default.
// Small chunks keep memory low for typical text files; pass a larger size
// with WithBufferSize for throughput.
const DefaultLineBufferSize = 32

// FileOption represents optional parameters for file operations
type FileOption func(*fileOptions)

type fileOptions struct {
	bufferSize int
}

// defaultFileOptions returns default options for file operations
func defaultFileOptions() *fileOptions {
	return &fileOptions{
		bufferSize: DefaultLineBufferSize,
	}
}

// WithBufferSize sets custom buffer size for operations
func WithBufferSize(size int) FileOption {
	return func(opts *fileOptions) {
		if size > 0 {
			opts.bufferSize = size
		}
	}
}

// ReadLine reads the next line from file, starting at its current position.
//
// Lines end with "\n" or "\r\n"; the terminator is not part of the returned
// line. After a line is found the file position is moved to the first byte
// following the terminator, so the file itself carries all state between
// calls. At end of file ReadLine returns hasMore=false together with the
// final unterminated line, which may be empty.
func ReadLine(file io.ReadSeeker, options ...FileOption) (hasMore bool, line string, err error) {
	opts := defaultFileOptions()
	for _, opt := range options {
		opt(opts)
	}

	buf := make([]byte, opts.bufferSize)
	var acc []byte

	for {
		n, readErr := file.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if i := bytes.IndexByte(chunk, '\n'); i >= 0 {
				acc = append(acc, chunk[:i]...)

				// Rewind over the bytes read past the terminator.
				if rewind := n - (i + 1); rewind > 0 {
					if _, err := file.Seek(-int64(rewind), io.SeekCurrent); err != nil {
						return false, "", newReadLineError(fileName(file), err)
					}
				}

				// A '\r' that ended the previous chunk pairs with this '\n'.
				acc = bytes.TrimSuffix(acc, []byte{'\r'})
				return true, string(acc), nil
			}

			acc = append(acc, chunk...)
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return false, string(acc), nil
			}
			return false, "", newReadLineError(fileName(file), readErr)
		}

		if n == 0 {
			return false, string(acc), nil
		}
	}
}

// ReadFileLines reads file content as slice of lines.
// A trailing empty line after the last terminator is not returned.
func ReadFileLines(path string, options ...FileOption) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, newOpenFileError(path, err)
	}
	defer file.Close()

	var lines []string
	for {
		hasMore, line, err := ReadLine(file, options...)
		if err != nil {
			return nil, err
		}

		if hasMore || line != "" {
			lines = append(lines, line)
		}

		if !hasMore {
			return lines, nil
		}
	}
}

func fileName(file io.ReadSeeker) string {
	if named, ok := file.(interface{ Name() string }); ok {
		return named.Name()
	}

	return ""
}
