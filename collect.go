package dirx

import (
	"errors"
	"io/fs"
)

// WalkFunc is called for each entry during a tree walk. Returning
// fs.SkipDir for a directory skips its contents, for a file it skips the
// remaining entries of the parent directory. Any other error stops the walk.
type WalkFunc func(entry Entry) error

// Collect lists the entries of the directory at path.
//
// Directories whose name starts with a dot are neither listed nor recursed
// into. WithOnlyFiles leaves directories out of the result, WithRecursive
// descends into subdirectories and WithExtensions keeps only files with a
// matching extension.
//
// Entries appear in pre-order: a directory precedes everything collected
// beneath it. Siblings keep the order the platform enumerates them in, which
// is not sorted and may differ between filesystems.
//
// The first error at any depth aborts the traversal; no partial result is
// returned.
func Collect(path string, options ...Option) (Entries, error) {
	opts := applyOptions(options)

	var entries Entries
	err := walk(Normalize(path), opts, func(entry Entry) error {
		if accept(entry, opts) {
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		opts.logger.Debug().Str("path", path).Err(err).Msg("collect aborted")
		return nil, err
	}

	return entries, nil
}

// WalkDirectory walks the tree under root in pre-order, calling walkFn for
// every entry Collect would visit with WithRecursive. Filtering options
// (WithOnlyFiles, WithExtensions) do not apply.
func WalkDirectory(root string, walkFn WalkFunc, options ...Option) error {
	opts := applyOptions(options)
	opts.recursive = true

	return walk(Normalize(root), opts, func(entry Entry) error {
		err := walkFn(entry)
		if err != nil && !errors.Is(err, fs.SkipDir) {
			return newWalkDirectoryError(entry.Path, err)
		}
		return err
	})
}

// CalculateDirectorySize sums the size of every file under path.
// Files inside dot-prefixed directories are not counted.
func CalculateDirectorySize(path string, options ...Option) (uint64, error) {
	entries, err := Collect(path, append(options, WithRecursive(), WithOnlyFiles())...)
	if err != nil {
		return 0, err
	}

	var total uint64
	for _, entry := range entries {
		total += entry.Size
	}

	return total, nil
}

// ListDirectoryByName returns collected entries sorted by filename
func ListDirectoryByName(path string, ascending bool, options ...Option) (Entries, error) {
	entries, err := Collect(path, options...)
	if err != nil {
		return nil, err
	}

	entries.SortByName(ascending)
	return entries, nil
}

// ListDirectoryBySize returns collected entries sorted by size
func ListDirectoryBySize(path string, ascending bool, options ...Option) (Entries, error) {
	entries, err := Collect(path, options...)
	if err != nil {
		return nil, err
	}

	entries.SortBySize(ascending)
	return entries, nil
}

// ListDirectoryByModTime returns collected entries sorted by modification time
func ListDirectoryByModTime(path string, ascending bool, options ...Option) (Entries, error) {
	entries, err := Collect(path, options...)
	if err != nil {
		return nil, err
	}

	entries.SortByModTime(ascending)
	return entries, nil
}

// walk opens path, calls fn for each visible entry and recurses into
// directories when opts.recursive is set. The handle of every level is
// closed before walk returns.
func walk(path string, opts *options, fn WalkFunc) error {
	dir, err := openDirectory(path, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := dir.Close(true); err != nil {
			opts.logger.Warn().Str("path", path).Err(err).Msg("close directory")
		}
	}()

	var entry Entry
	for dir.Next(&entry) {
		if entry.IsDir && isDotName(entry.Filename()) {
			opts.logger.Debug().Str("path", entry.Path).Msg("skip dot directory")
			continue
		}

		if err := fn(entry); err != nil {
			if !errors.Is(err, fs.SkipDir) {
				return err
			}
			if entry.IsDir {
				continue
			}
			return dir.Err()
		}

		if opts.recursive && entry.IsDir {
			if err := walk(Normalize(entry.Path), opts, fn); err != nil {
				return err
			}
		}
	}

	return dir.Err()
}

func accept(entry Entry, opts *options) bool {
	if entry.IsDir {
		return !opts.onlyFiles
	}

	return opts.extensions.Match(entry)
}
