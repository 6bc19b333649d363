// pkg/disk/delete_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), FaultFS, MockFS
// PURPOSE: Test the retrying and forcing recursive delete policies and file delete

package disk_test

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/typedisk/pkg/disk"
	"github.com/arthur-debert/typedisk/pkg/errors"
	"github.com/arthur-debert/typedisk/pkg/filesystem"
	"github.com/arthur-debert/typedisk/pkg/paths"
	"github.com/arthur-debert/typedisk/pkg/retry"
	"github.com/arthur-debert/typedisk/pkg/testutil"
)

func makeTree(t *testing.T, root paths.AbsDir) paths.AbsDir {
	t.Helper()
	dir := dirIn(t, root, "tree")
	testutil.CreateFile(t, dir.String(), "a.txt", "a")
	testutil.CreateFile(t, dir.String(), "sub/b.txt", "b")
	testutil.CreateFile(t, dir.String(), "sub/deeper/c.txt", "c")
	testutil.CreateDir(t, dir.String(), "empty")
	return dir
}

func TestDeleteDir(t *testing.T) {
	root := testutil.TempDir(t)
	d := newDisk(t)

	t.Run("removes_tree", func(t *testing.T) {
		dir := makeTree(t, root)
		require.NoError(t, d.DeleteDir(dir))
		testutil.AssertNoFile(t, dir.String())
	})

	t.Run("missing_is_success", func(t *testing.T) {
		require.NoError(t, d.DeleteDir(dirIn(t, root, "never-existed")))
	})

	t.Run("file_is_rejected", func(t *testing.T) {
		path := testutil.CreateFile(t, root.String(), "plain.txt", "x")
		err := d.DeleteDir(testutil.AbsDir(t, path))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotADirectory))
		assert.True(t, testutil.FileExists(t, path), "nothing is touched")
	})
}

func TestDeleteDir_RetriesTransientFailures(t *testing.T) {
	root := testutil.TempDir(t)
	dir := makeTree(t, root)
	faulty := testutil.NewFaultFS(filesystem.NewOS()).
		Fail(testutil.OpRemoveAll, testutil.BusyError("unlinkat", dir.String()), 3)
	d := newDisk(t, disk.WithFS(faulty))

	require.NoError(t, d.DeleteDir(dir))
	testutil.AssertNoFile(t, dir.String())
	assert.Equal(t, 4, faulty.Calls(testutil.OpRemoveAll))
}

func TestDeleteDir_BoundedGivesUp(t *testing.T) {
	root := testutil.TempDir(t)
	dir := makeTree(t, root)
	faulty := testutil.NewFaultFS(filesystem.NewOS()).
		Fail(testutil.OpRemoveAll, testutil.BusyError("unlinkat", dir.String()), testutil.Always)
	d := newDisk(t,
		disk.WithFS(faulty),
		disk.WithRetryPolicy(fastPolicy(retry.WithMaxAttempts(2))),
	)

	err := d.DeleteDir(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransientIO))
	assert.ErrorIs(t, err, syscall.EBUSY)
	assert.Equal(t, 3, faulty.Calls(testutil.OpRemoveAll), "first attempt plus two retries")
	assert.True(t, testutil.DirExists(t, dir.String()))
}

func TestDeleteDir_ContextCancels(t *testing.T) {
	root := testutil.TempDir(t)
	dir := makeTree(t, root)
	faulty := testutil.NewFaultFS(filesystem.NewOS()).
		Fail(testutil.OpRemoveAll, testutil.BusyError("unlinkat", dir.String()), testutil.Always)
	d := newDisk(t, disk.WithFS(faulty))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := d.DeleteDirContext(ctx, dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransientIO))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, faulty.Calls(testutil.OpRemoveAll), 1)
}

func TestDeleteDir_PermanentFailureStops(t *testing.T) {
	root := testutil.TempDir(t)
	dir := makeTree(t, root)
	faulty := testutil.NewFaultFS(filesystem.NewOS()).
		Fail(testutil.OpRemoveAll, testutil.PermanentError("unlinkat", dir.String()), testutil.Always)
	d := newDisk(t, disk.WithFS(faulty))

	err := d.DeleteDir(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDirDelete))
	assert.Equal(t, 1, faulty.Calls(testutil.OpRemoveAll))
}

func makeReadOnlyTree(t *testing.T, root paths.AbsDir) paths.AbsDir {
	t.Helper()
	dir := makeTree(t, root)
	testutil.Chmod(t, dir.String()+"/a.txt", 0o444)
	testutil.Chmod(t, dir.String()+"/sub/deeper/c.txt", 0o444)
	testutil.Chmod(t, dir.String()+"/sub/deeper", 0o555)
	testutil.Chmod(t, dir.String()+"/sub", 0o555)
	t.Cleanup(func() {
		// Let t.TempDir clean up whatever a failed test left behind.
		_ = os.Chmod(dir.String()+"/sub", 0o755)
		_ = os.Chmod(dir.String()+"/sub/deeper", 0o755)
	})
	return dir
}

func TestDeleteDirReadOnly(t *testing.T) {
	testutil.SkipOnWindows(t)

	t.Run("read_only_tree", func(t *testing.T) {
		root := testutil.TempDir(t)
		dir := makeReadOnlyTree(t, root)
		d := newDisk(t)

		require.NoError(t, d.DeleteDirReadOnly(dir))
		testutil.AssertNoFile(t, dir.String())
	})

	t.Run("depth_first_fallback", func(t *testing.T) {
		root := testutil.TempDir(t)
		dir := makeReadOnlyTree(t, root)
		// The plain recursive delete always fails, forcing the walk.
		faulty := testutil.NewFaultFS(filesystem.NewOS()).
			Fail(testutil.OpRemoveAll, testutil.BusyError("unlinkat", dir.String()), testutil.Always)
		d := newDisk(t, disk.WithFS(faulty))

		require.NoError(t, d.DeleteDirReadOnly(dir))
		testutil.AssertNoFile(t, dir.String())
		assert.Equal(t, 1, faulty.Calls(testutil.OpRemoveAll))
	})

	t.Run("plain_delete_fails_on_read_only_tree", func(t *testing.T) {
		testutil.RequirePermissions(t)
		root := testutil.TempDir(t)
		dir := makeReadOnlyTree(t, root)

		assert.Error(t, os.RemoveAll(dir.String()), "sanity: the host refuses")
		require.NoError(t, newDisk(t).DeleteDirReadOnly(dir))
		testutil.AssertNoFile(t, dir.String())
	})

	t.Run("missing_and_file", func(t *testing.T) {
		root := testutil.TempDir(t)
		d := newDisk(t)
		require.NoError(t, d.DeleteDirReadOnly(dirIn(t, root, "gone")))

		path := testutil.CreateFile(t, root.String(), "f.txt", "x")
		err := d.DeleteDirReadOnly(testutil.AbsDir(t, path))
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotADirectory))
	})
}

func TestDeleteFile(t *testing.T) {
	root := testutil.TempDir(t)

	t.Run("read_only_file", func(t *testing.T) {
		testutil.SkipOnWindows(t)
		path := testutil.CreateFile(t, root.String(), "ro.txt", "x")
		testutil.Chmod(t, path, 0o444)
		require.NoError(t, newDisk(t).DeleteFile(testutil.AbsFile(t, path)))
		testutil.AssertNoFile(t, path)
	})

	t.Run("missing_is_success", func(t *testing.T) {
		require.NoError(t, newDisk(t).DeleteFile(fileIn(t, root, "none.txt")))
	})

	t.Run("one_retry_after_transient_failure", func(t *testing.T) {
		path := testutil.CreateFile(t, root.String(), "busy.txt", "x")
		faulty := testutil.NewFaultFS(filesystem.NewOS()).
			Fail(testutil.OpRemove, testutil.BusyError("remove", path), 1)
		d := newDisk(t, disk.WithFS(faulty))

		require.NoError(t, d.DeleteFile(testutil.AbsFile(t, path)))
		testutil.AssertNoFile(t, path)
		assert.Equal(t, 2, faulty.Calls(testutil.OpRemove))
	})

	t.Run("gives_up_after_one_retry", func(t *testing.T) {
		path := testutil.CreateFile(t, root.String(), "locked.txt", "x")
		faulty := testutil.NewFaultFS(filesystem.NewOS()).
			Fail(testutil.OpRemove, testutil.BusyError("remove", path), testutil.Always)
		d := newDisk(t, disk.WithFS(faulty))

		err := d.DeleteFile(testutil.AbsFile(t, path))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileDelete))
		assert.ErrorIs(t, err, syscall.EBUSY)
		assert.Equal(t, 2, faulty.Calls(testutil.OpRemove))
		assert.True(t, testutil.FileExists(t, path))
	})
}

func TestDeleteFile_PermanentErrorIsNotRetried(t *testing.T) {
	testutil.SkipOnWindows(t)
	path := "/data/a.txt"
	m := &testutil.MockFS{}
	m.On("Stat", path).Return(testutil.FileInfo{FileName: "a.txt", FileMode: 0o644}, nil)
	m.On("Attributes", path).Return(filesystem.AttrNormal, nil)
	m.On("Remove", path).Return(testutil.PermanentError("remove", path)).Once()

	d := newDisk(t, disk.WithFS(m))
	err := d.DeleteFile(testutil.AbsFile(t, path))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileDelete))

	m.AssertExpectations(t)
	m.AssertNumberOfCalls(t, "Remove", 1)
}
