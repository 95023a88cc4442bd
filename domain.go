package dirx

import (
	"sort"
	"strings"
	"time"
)

// Stamp holds the creation, access and modification times of a directory
type Stamp struct {
	Created  time.Time
	Accessed time.Time
	Modified time.Time
}

// Entry represents a file or subdirectory produced by enumeration.
// Path is the normalized directory path joined with the entry name.
type Entry struct {
	Path     string
	Created  time.Time
	Accessed time.Time
	Modified time.Time
	Size     uint64
	IsDir    bool
}

// Filename returns the last element of the entry path
func (e Entry) Filename() string {
	return Filename(e.Path)
}

// BaseName returns the entry filename without its extension.
// Directories keep their full name.
func (e Entry) BaseName() string {
	return baseName(e.Filename(), e.IsDir)
}

// Extension returns the entry extension with its leading dot, or an empty
// string for directories.
func (e Entry) Extension() string {
	return extension(e.Filename(), e.IsDir)
}

// Entries is an ordered list of entries in enumeration pre-order: every
// directory precedes the entries collected beneath it.
type Entries []Entry

// Paths returns the path of every entry, in order
func (list Entries) Paths() []string {
	paths := make([]string, 0, len(list))
	for _, entry := range list {
		paths = append(paths, entry.Path)
	}

	return paths
}

// Files returns only the non-directory entries
func (list Entries) Files() Entries {
	files := make(Entries, 0, len(list))
	for _, entry := range list {
		if !entry.IsDir {
			files = append(files, entry)
		}
	}

	return files
}

// SortByName sorts entries by filename in place. Equal names keep their
// enumeration order.
func (list Entries) SortByName(ascending bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if ascending {
			return list[i].Filename() < list[j].Filename()
		}
		return list[i].Filename() > list[j].Filename()
	})
}

// SortBySize sorts entries by size in place
func (list Entries) SortBySize(ascending bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if ascending {
			return list[i].Size < list[j].Size
		}
		return list[i].Size > list[j].Size
	})
}

// SortByModTime sorts entries by modification time in place
func (list Entries) SortByModTime(ascending bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if ascending {
			return list[i].Modified.Before(list[j].Modified)
		}
		return list[i].Modified.After(list[j].Modified)
	})
}

// ExtensionFilter is a set of file extensions stored without the leading dot.
// A nil or empty filter accepts every file.
type ExtensionFilter map[string]struct{}

// NewExtensionFilter builds a filter from exts. A leading dot is optional.
func NewExtensionFilter(exts ...string) ExtensionFilter {
	filter := make(ExtensionFilter, len(exts))
	filter.Add(exts...)
	return filter
}

// Add inserts exts into the filter
func (f ExtensionFilter) Add(exts ...string) {
	for _, ext := range exts {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		f[ext] = struct{}{}
	}
}

// Match reports whether entry passes the filter. Directories always pass.
func (f ExtensionFilter) Match(entry Entry) bool {
	if entry.IsDir || len(f) == 0 {
		return true
	}

	ext := strings.TrimPrefix(entry.Extension(), ".")
	if ext == "" {
		return false
	}

	_, ok := f[ext]
	return ok
}
