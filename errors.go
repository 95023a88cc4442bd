package dirx

import (
	"github.com/boostgo/errorx"
)

var (
	ErrCannotOpen    = errorx.New("dirx.directory.open")
	ErrNotADirectory = errorx.New("dirx.directory.not_directory")
	ErrReadDirectory = errorx.New("dirx.directory.read")
	ErrWalkDirectory = errorx.New("dirx.directory.walk")

	ErrOpenFile = errorx.New("dirx.file.open")
	ErrReadLine = errorx.New("dirx.file.read_line")
)

type pathErrorContext struct {
	Path  string `json:"path"`
	Error error  `json:"error"`
}

func newCannotOpenError(path string, err error) error {
	return ErrCannotOpen.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newNotADirectoryError(path string, err error) error {
	return ErrNotADirectory.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newReadDirectoryError(path string, err error) error {
	return ErrReadDirectory.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newWalkDirectoryError(path string, err error) error {
	return ErrWalkDirectory.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

func newOpenFileError(path string, err error) error {
	return ErrOpenFile.
		SetError(err).
		SetData(pathErrorContext{
			Path:  path,
			Error: err,
		})
}

type readLineErrorContext struct {
	Name  string `json:"name,omitempty"`
	Error error  `json:"error"`
}

func newReadLineError(name string, err error) error {
	return ErrReadLine.
		SetError(err).
		SetData(readLineErrorContext{
			Name:  name,
			Error: err,
		})
}
