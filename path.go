package dirx

import "strings"

const separator = '/'

// Normalize converts path to forward slashes and ends it with exactly one
// separator. An empty path means the current directory ("./").
func Normalize(path string) string {
	if path == "" {
		return "./"
	}

	path = strings.ReplaceAll(path, `\`, "/")
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}

	return trimmed + "/"
}

// Filename returns the last element of path, ignoring one trailing separator
func Filename(path string) string {
	path = strings.TrimSuffix(path, "/")
	return path[strings.LastIndexByte(path, separator)+1:]
}

// BaseName returns the filename of path without its extension.
// Directory paths (trailing separator) keep dots in their name.
func BaseName(path string) string {
	return baseName(Filename(path), isDirPath(path))
}

// Extension returns the extension of path including its leading dot,
// or an empty string for directories and names without one.
func Extension(path string) string {
	return extension(Filename(path), isDirPath(path))
}

func isDirPath(path string) bool {
	return strings.HasSuffix(path, "/")
}

// extensionIndex reports where the extension of name starts.
// A dot at index 0 belongs to the name (".gitignore" has no extension).
func extensionIndex(name string) int {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return -1
	}

	return i
}

func baseName(name string, isDir bool) string {
	if isDir {
		return name
	}

	i := extensionIndex(name)
	if i < 0 {
		return name
	}

	return name[:i]
}

func extension(name string, isDir bool) string {
	if isDir {
		return ""
	}

	i := extensionIndex(name)
	if i < 0 {
		return ""
	}

	return name[i:]
}

func isDotName(name string) bool {
	return strings.HasPrefix(name, ".")
}
