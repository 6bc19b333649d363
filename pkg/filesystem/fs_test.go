// pkg/filesystem/fs_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), afero MemMapFs
// PURPOSE: Test the host filesystem boundary on both implementations

package filesystem_test

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/typedisk/pkg/filesystem"
)

type fsCase struct {
	name string
	fs   filesystem.FS
	root string
}

func implementations(t *testing.T) []fsCase {
	t.Helper()
	return []fsCase{
		{name: "os", fs: filesystem.NewOS(), root: t.TempDir()},
		{name: "memory", fs: filesystem.NewMemory(), root: filepath.Join(string(filepath.Separator), "mem")},
	}
}

func writeFile(t *testing.T, fsys filesystem.FS, path, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	f, err := fsys.CreateExclusive(path, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func readFile(t *testing.T, fsys filesystem.FS, path string) string {
	t.Helper()
	f, err := fsys.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

func TestBasicOperations(t *testing.T) {
	for _, tc := range implementations(t) {
		t.Run(tc.name, func(t *testing.T) {
			file := filepath.Join(tc.root, "a", "b.txt")
			writeFile(t, tc.fs, file, "hello")

			exists, err := tc.fs.Exists(file)
			require.NoError(t, err)
			assert.True(t, exists)

			info, err := tc.fs.Stat(file)
			require.NoError(t, err)
			assert.Equal(t, int64(5), info.Size())

			entries, err := tc.fs.ReadDir(filepath.Join(tc.root, "a"))
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "b.txt", entries[0].Name())

			var walked []string
			err = tc.fs.Walk(tc.root, func(path string, info fs.FileInfo, err error) error {
				if err != nil {
					return err
				}
				walked = append(walked, path)
				return nil
			})
			require.NoError(t, err)
			assert.Contains(t, walked, file)

			require.NoError(t, tc.fs.RemoveAll(filepath.Join(tc.root, "a")))
			exists, err = tc.fs.Exists(file)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestCreateExclusive(t *testing.T) {
	for _, tc := range implementations(t) {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.fs.MkdirAll(tc.root, 0o755))
			path := filepath.Join(tc.root, "claimed")

			f, err := tc.fs.CreateExclusive(path, 0o644)
			require.NoError(t, err)
			require.NoError(t, f.Close())

			_, err = tc.fs.CreateExclusive(path, 0o644)
			require.Error(t, err)
			assert.ErrorIs(t, err, fs.ErrExist)
		})
	}
}

func TestRenameOverwrites(t *testing.T) {
	for _, tc := range implementations(t) {
		t.Run(tc.name, func(t *testing.T) {
			src := filepath.Join(tc.root, "src.txt")
			dst := filepath.Join(tc.root, "dst.txt")
			writeFile(t, tc.fs, src, "new")
			writeFile(t, tc.fs, dst, "old")

			require.NoError(t, tc.fs.Rename(src, dst))
			assert.Equal(t, "new", readFile(t, tc.fs, dst))

			exists, err := tc.fs.Exists(src)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

// scriptedRenameFs answers successive Rename calls from errs. A nil entry,
// or running past the end, delegates to the wrapped filesystem.
type scriptedRenameFs struct {
	afero.Fs
	errs  []error
	calls int
}

func (f *scriptedRenameFs) Rename(oldname, newname string) error {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: f.errs[i]}
	}
	return f.Fs.Rename(oldname, newname)
}

func names(t *testing.T, fsys filesystem.FS, dir string) []string {
	t.Helper()
	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func TestRename_HostRefusals(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "w")
	src := filepath.Join(root, "a.txt-tmp")
	dst := filepath.Join(root, "a.txt")

	setup := func(t *testing.T, errs ...error) (filesystem.FS, *scriptedRenameFs) {
		t.Helper()
		scripted := &scriptedRenameFs{Fs: afero.NewMemMapFs(), errs: errs}
		fsys := filesystem.NewAfero(scripted)
		writeFile(t, fsys, dst, "original")
		writeFile(t, fsys, src, "replacement")
		return fsys, scripted
	}

	t.Run("busy_target_is_left_alone", func(t *testing.T) {
		fsys, scripted := setup(t, syscall.EBUSY, syscall.EBUSY, syscall.EBUSY)

		err := fsys.Rename(src, dst)
		require.Error(t, err)
		assert.ErrorIs(t, err, syscall.EBUSY)
		assert.Equal(t, 1, scripted.calls, "no fallback for errors other than an existing target")
		assert.Equal(t, "original", readFile(t, fsys, dst))
		assert.Equal(t, "replacement", readFile(t, fsys, src))
	})

	t.Run("existing_target_is_replaced", func(t *testing.T) {
		fsys, _ := setup(t, fs.ErrExist)

		require.NoError(t, fsys.Rename(src, dst))
		assert.Equal(t, "replacement", readFile(t, fsys, dst))
		assert.Equal(t, []string{"a.txt"}, names(t, fsys, root))
	})

	t.Run("failed_replace_restores_target", func(t *testing.T) {
		fsys, _ := setup(t, fs.ErrExist, nil, syscall.EBUSY)

		err := fsys.Rename(src, dst)
		require.Error(t, err)
		assert.ErrorIs(t, err, syscall.EBUSY)
		assert.Equal(t, "original", readFile(t, fsys, dst))
		assert.Equal(t, "replacement", readFile(t, fsys, src))
		assert.ElementsMatch(t, []string{"a.txt", "a.txt-tmp"}, names(t, fsys, root))
	})
}

func TestCopyFile_SameFile(t *testing.T) {
	root := t.TempDir()
	fsys := filesystem.NewOS()
	file := filepath.Join(root, "a.txt")
	writeFile(t, fsys, file, "hello")

	err := fsys.CopyFile(file, file)
	require.Error(t, err)
	assert.ErrorIs(t, err, filesystem.ErrSameFile)
	assert.Equal(t, "hello", readFile(t, fsys, file))

	link := filepath.Join(root, "hard.txt")
	if err := os.Link(file, link); err != nil {
		t.Skipf("hard links unavailable: %v", err)
	}
	err = fsys.CopyFile(file, link)
	assert.ErrorIs(t, err, filesystem.ErrSameFile)
	assert.Equal(t, "hello", readFile(t, fsys, file))
}

func TestCopyFile(t *testing.T) {
	for _, tc := range implementations(t) {
		t.Run(tc.name, func(t *testing.T) {
			src := filepath.Join(tc.root, "src.txt")
			dst := filepath.Join(tc.root, "dst.txt")
			writeFile(t, tc.fs, src, "payload")
			writeFile(t, tc.fs, dst, "a much longer previous payload")
			require.NoError(t, tc.fs.Chmod(src, 0o640))

			require.NoError(t, tc.fs.CopyFile(src, dst))
			assert.Equal(t, "payload", readFile(t, tc.fs, dst))

			info, err := tc.fs.Stat(dst)
			require.NoError(t, err)
			assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())

			err = tc.fs.CopyFile(tc.root, dst)
			assert.Error(t, err)
		})
	}
}

func TestAttributes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission mapping")
	}

	for _, tc := range implementations(t) {
		t.Run(tc.name, func(t *testing.T) {
			file := filepath.Join(tc.root, "ro.txt")
			writeFile(t, tc.fs, file, "x")

			attrs, err := tc.fs.Attributes(file)
			require.NoError(t, err)
			assert.True(t, attrs.IsNormal())

			require.NoError(t, tc.fs.SetAttributes(file, filesystem.AttrReadOnly))
			attrs, err = tc.fs.Attributes(file)
			require.NoError(t, err)
			assert.True(t, attrs.Has(filesystem.AttrReadOnly))
			assert.False(t, attrs.Has(filesystem.AttrEncrypted))

			info, err := tc.fs.Stat(file)
			require.NoError(t, err)
			assert.Equal(t, fs.FileMode(0o444), info.Mode().Perm())

			require.NoError(t, tc.fs.SetAttributes(file, filesystem.AttrNormal))
			attrs, err = tc.fs.Attributes(file)
			require.NoError(t, err)
			assert.True(t, attrs.IsNormal())

			dir := filepath.Join(tc.root, "rodir")
			require.NoError(t, tc.fs.MkdirAll(dir, 0o555))
			require.NoError(t, tc.fs.Chmod(dir, 0o555))
			require.NoError(t, tc.fs.SetAttributes(dir, filesystem.AttrNormal))
			info, err = tc.fs.Stat(dir)
			require.NoError(t, err)
			assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())
		})
	}
}

func TestAttributesString(t *testing.T) {
	assert.Equal(t, "normal", filesystem.AttrNormal.String())
	assert.Equal(t, "readonly", filesystem.AttrReadOnly.String())
	assert.Equal(t, "readonly|encrypted", (filesystem.AttrReadOnly | filesystem.AttrEncrypted).String())
	assert.False(t, filesystem.AttrNormal.Has(filesystem.AttrNormal))
}

func TestChtimes(t *testing.T) {
	for _, tc := range implementations(t) {
		t.Run(tc.name, func(t *testing.T) {
			file := filepath.Join(tc.root, "t.txt")
			writeFile(t, tc.fs, file, "x")

			when := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
			require.NoError(t, tc.fs.Chtimes(file, when, when))

			info, err := tc.fs.Stat(file)
			require.NoError(t, err)
			assert.True(t, info.ModTime().Equal(when))
		})
	}
}
