package dirx

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFS() fstest.MapFS {
	return fstest.MapFS{
		"a.txt":            {Data: []byte("a")},
		"b.md":             {Data: []byte("b")},
		"sub/c.log":        {Data: []byte("c")},
		"sub/.hidden":      {Data: []byte("h")},
		"sub/.git/head":    {Data: []byte("ref")},
		"sub/deep/d.txt":   {Data: []byte("d")},
		"sub/deep/e.TXT":   {Data: []byte("e")},
		"z/.cache.txt":     {Data: []byte("z")},
		"z/release.v1":     {Mode: fs.ModeDir},
		"z/release.v1/f.c": {Data: []byte("f")},
	}
}

func TestCollect(t *testing.T) {
	backend := WithBackend(FSBackend(sampleFS()))

	t.Run("OnlyFilesRecursiveWithExtensions", func(t *testing.T) {
		entries, err := Collect(".", backend, WithOnlyFiles(), WithRecursive(), WithExtensions("txt", "log"))
		require.NoError(t, err)

		assert.Equal(t, []string{
			"./a.txt",
			"./sub/c.log",
			"./sub/deep/d.txt",
			"./z/.cache.txt",
		}, entries.Paths())
	})

	t.Run("EverythingRecursive", func(t *testing.T) {
		entries, err := Collect(".", backend, WithRecursive())
		require.NoError(t, err)

		assert.Equal(t, []string{
			"./a.txt",
			"./b.md",
			"./sub",
			"./sub/.hidden",
			"./sub/c.log",
			"./sub/deep",
			"./sub/deep/d.txt",
			"./sub/deep/e.TXT",
			"./z",
			"./z/.cache.txt",
			"./z/release.v1",
			"./z/release.v1/f.c",
		}, entries.Paths())
	})

	t.Run("NotRecursive", func(t *testing.T) {
		entries, err := Collect(".", backend)
		require.NoError(t, err)
		assert.Equal(t, []string{"./a.txt", "./b.md", "./sub", "./z"}, entries.Paths())

		entries, err = Collect(".", backend, WithExtensions("log"))
		require.NoError(t, err)
		assert.Equal(t, []string{"./sub", "./z"}, entries.Paths(), "sub/c.log lives below the first level")
	})

	t.Run("DirectoriesIgnoreExtensions", func(t *testing.T) {
		entries, err := Collect("z", backend, WithExtensions("c"))
		require.NoError(t, err)

		require.Len(t, entries, 1)
		assert.Equal(t, "z/release.v1", entries[0].Path)
		assert.True(t, entries[0].IsDir)
		assert.Empty(t, entries[0].Extension())
	})

	t.Run("ExtensionsAreCaseSensitive", func(t *testing.T) {
		entries, err := Collect("sub/deep", backend, WithExtensions(".TXT"))
		require.NoError(t, err)
		assert.Equal(t, []string{"sub/deep/e.TXT"}, entries.Paths())
	})

	t.Run("DotDirectoriesNeverVisited", func(t *testing.T) {
		entries, err := Collect("sub", backend, WithRecursive())
		require.NoError(t, err)

		for _, path := range entries.Paths() {
			assert.NotContains(t, path, ".git")
		}
		assert.Contains(t, entries.Paths(), "sub/.hidden", "dot-prefixed files are still listed")
	})

	t.Run("EmptyResult", func(t *testing.T) {
		entries, err := Collect(".", backend, WithOnlyFiles(), WithExtensions("png"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := Collect("missing", backend)
		assertErrorKind(t, err, ErrCannotOpen)

		_, err = Collect("a.txt", backend)
		assertErrorKind(t, err, ErrNotADirectory)
	})
}

func TestCollectAbortsOnNestedError(t *testing.T) {
	counting := newCountingBackend(FSBackend(sampleFS()))
	counting.failOn["./sub/deep/"] = fs.ErrPermission

	entries, err := Collect(".", WithBackend(counting), WithRecursive())

	assert.Nil(t, entries, "no partial result")
	assertErrorKind(t, err, ErrCannotOpen)
	assert.Positive(t, counting.opened)
	assert.Zero(t, counting.open(), "every opened cursor must be closed")
}

func TestCollectAbortsOnEnumerationError(t *testing.T) {
	entries, err := Collect("broken", WithBackend(brokenBackend{names: []string{"a.txt", "b.txt"}}))

	assert.Nil(t, entries)
	assertErrorKind(t, err, ErrReadDirectory)
}

func TestCollectClosesEveryLevel(t *testing.T) {
	counting := newCountingBackend(FSBackend(sampleFS()))

	_, err := Collect(".", WithBackend(counting), WithRecursive())
	require.NoError(t, err)

	// root, sub, sub/deep, z, z/release.v1
	assert.Equal(t, 5, counting.opened)
	assert.Zero(t, counting.open())
}

func TestCollectLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := Collect("sub", WithBackend(FSBackend(sampleFS())), WithRecursive(), WithLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "directory opened")
	assert.Contains(t, buf.String(), "skip dot directory")
	assert.Contains(t, buf.String(), `"path":"sub/deep/"`)
}

func TestCollectNative(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"a.txt":             "a",
		"b.md":              "b",
		"sub/c.log":         "c",
		"sub/.hidden/x.txt": "x",
	})

	t.Run("OnlyFilesRecursiveWithExtensions", func(t *testing.T) {
		entries, err := Collect(tmpDir, WithOnlyFiles(), WithRecursive(), WithExtensions("txt", "log"))
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{
			slashJoin(tmpDir, "a.txt"),
			slashJoin(tmpDir, "sub", "c.log"),
		}, entries.Paths())
		for _, entry := range entries {
			assert.False(t, entry.IsDir)
			assert.Equal(t, uint64(1), entry.Size)
		}
	})

	t.Run("PreOrder", func(t *testing.T) {
		entries, err := Collect(tmpDir, WithRecursive())
		require.NoError(t, err)

		paths := entries.Paths()
		require.Len(t, paths, 4)

		subIndex := indexOf(paths, slashJoin(tmpDir, "sub"))
		logIndex := indexOf(paths, slashJoin(tmpDir, "sub", "c.log"))
		require.GreaterOrEqual(t, subIndex, 0)
		assert.Equal(t, subIndex+1, logIndex, "sub's only visible child follows it directly")
		assert.Len(t, entries.Files(), 3)
	})

	t.Run("NotRecursive", func(t *testing.T) {
		entries, err := Collect(filepath.Join(tmpDir, "sub"))
		require.NoError(t, err)
		assert.Equal(t, []string{slashJoin(tmpDir, "sub", "c.log")}, entries.Paths())
	})
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}
