package rcpatch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFS는 권한 오류를 주입할 수 있는 메모리 FileSystem이다.
type fakeFS struct {
	files     map[string]string
	readErr   error
	appendErr error
	appends   int
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: make(map[string]string)}
}

func (f *fakeFS) ReadFile(path string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	content, ok := f.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(content), nil
}

func (f *fakeFS) AppendFile(path string, data []byte) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appends++
	f.files[path] += string(data)
	return nil
}

func newTestPatcher(fsys FileSystem) *Patcher {
	return &Patcher{FS: fsys, Marker: testMarker, Block: testBlock}
}

func writeRC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".bashrc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readRC(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEnsure_ScenarioA_EmptyFile(t *testing.T) {
	path := writeRC(t, "")
	p := &Patcher{Marker: testMarker, Block: testBlock}

	outcome, err := p.Ensure(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, OutcomePatched, outcome)

	content := readRC(t, path)
	assert.Equal(t, testBlock, content)
	assert.True(t, strings.HasPrefix(content, "\n"))
	assert.Equal(t, 1, strings.Count(content, testMarker))
}

func TestEnsure_ScenarioB_AlreadyPatched(t *testing.T) {
	path := writeRC(t, testBlock)
	p := &Patcher{Marker: testMarker, Block: testBlock}

	outcome, err := p.Ensure(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyPresent, outcome)
	assert.Equal(t, testBlock, readRC(t, path))
}

func TestEnsure_ScenarioC_MarkerInUnrelatedComment(t *testing.T) {
	original := "alias ll='ls -l'\n# TODO: look at RPG_CURSOR_HIDE someday\n"
	path := writeRC(t, original)
	p := &Patcher{Marker: testMarker, Block: testBlock}

	outcome, err := p.Ensure(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyPresent, outcome)
	assert.Equal(t, original, readRC(t, path))
	assert.NotContains(t, readRC(t, path), "setterm")
}

func TestEnsure_Idempotent(t *testing.T) {
	path := writeRC(t, "# existing content\n")
	p := &Patcher{Marker: testMarker, Block: testBlock}

	first, err := p.Ensure(context.Background(), path)
	require.NoError(t, err)
	second, err := p.Ensure(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, OutcomePatched, first)
	assert.Equal(t, OutcomeAlreadyPresent, second)
	assert.Equal(t, "# existing content\n"+testBlock, readRC(t, path))
}

func TestEnsure_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bashrc")
	p := &Patcher{Marker: testMarker, Block: testBlock}

	outcome, err := p.Ensure(context.Background(), path)
	assert.Equal(t, OutcomeUnknown, outcome)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEnsure_CreateMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".bashrc")
	p := &Patcher{Marker: testMarker, Block: testBlock, CreateMissing: true}

	outcome, err := p.Ensure(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, OutcomePatched, outcome)
	assert.Equal(t, testBlock, readRC(t, path))
}

func TestEnsure_ReadPermissionDenied_NoWrite(t *testing.T) {
	fsys := newFakeFS()
	fsys.files["/home/u/.bashrc"] = "original\n"
	fsys.readErr = &fs.PathError{Op: "open", Path: "/home/u/.bashrc", Err: fs.ErrPermission}

	outcome, err := newTestPatcher(fsys).Ensure(context.Background(), "/home/u/.bashrc")
	assert.Equal(t, OutcomePermissionDenied, outcome)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "sudo")
	assert.Equal(t, 0, fsys.appends)
	assert.Equal(t, "original\n", fsys.files["/home/u/.bashrc"])
}

func TestEnsure_AppendPermissionDenied(t *testing.T) {
	fsys := newFakeFS()
	fsys.files["/home/u/.bashrc"] = "original\n"
	fsys.appendErr = &fs.PathError{Op: "open", Path: "/home/u/.bashrc", Err: fs.ErrPermission}

	outcome, err := newTestPatcher(fsys).Ensure(context.Background(), "/home/u/.bashrc")
	assert.Equal(t, OutcomePermissionDenied, outcome)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, "original\n", fsys.files["/home/u/.bashrc"])
}

func TestEnsure_OtherAppendErrorPropagates(t *testing.T) {
	fsys := newFakeFS()
	fsys.files["/rc"] = ""
	fsys.appendErr = errors.New("no space left on device")

	outcome, err := newTestPatcher(fsys).Ensure(context.Background(), "/rc")
	assert.Equal(t, OutcomeUnknown, outcome)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPermissionDenied)
}

func TestEnsure_RealPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	path := writeRC(t, "original\n")
	require.NoError(t, os.Chmod(path, 0000))
	t.Cleanup(func() { os.Chmod(path, 0644) })

	p := &Patcher{Marker: testMarker, Block: testBlock}
	outcome, err := p.Ensure(context.Background(), path)
	assert.Equal(t, OutcomePermissionDenied, outcome)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestEnsure_InvalidBlock(t *testing.T) {
	p := &Patcher{FS: newFakeFS(), Marker: testMarker, Block: "no marker here\n"}
	_, err := p.Ensure(context.Background(), "/rc")
	assert.ErrorIs(t, err, ErrInvalidBlock)
}

func TestEnsure_ConcurrentWithLock(t *testing.T) {
	path := writeRC(t, "# shared\n")
	lockPath := filepath.Join(t.TempDir(), "rpg", "patch.lock")

	const workers = 8
	var wg sync.WaitGroup
	outcomes := make([]Outcome, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := &Patcher{Marker: testMarker, Block: testBlock, LockPath: lockPath}
			outcomes[i], errs[i] = p.Ensure(context.Background(), path)
		}(i)
	}
	wg.Wait()

	patched := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if outcomes[i] == OutcomePatched {
			patched++
		}
	}
	assert.Equal(t, 1, patched)
	assert.Equal(t, 1, strings.Count(readRC(t, path), testMarker))
}

func TestEnsure_LockCancelled(t *testing.T) {
	path := writeRC(t, "")
	lockPath := filepath.Join(t.TempDir(), "patch.lock")

	holder := &Patcher{Marker: testMarker, Block: testBlock, LockPath: lockPath}
	unlock, err := holder.lock(context.Background())
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &Patcher{Marker: testMarker, Block: testBlock, LockPath: lockPath}
	outcome, err := p.Ensure(ctx, path)
	assert.Equal(t, OutcomeUnknown, outcome)
	assert.Error(t, err)
	assert.Equal(t, "", readRC(t, path))
}

func TestPreview(t *testing.T) {
	fsys := newFakeFS()
	fsys.files["/rc"] = "a\n"
	p := newTestPatcher(fsys)

	before, after, outcome, err := p.Preview("/rc")
	require.NoError(t, err)
	assert.Equal(t, OutcomePatched, outcome)
	assert.Equal(t, "a\n", string(before))
	assert.Equal(t, "a\n"+testBlock, string(after))
	assert.Equal(t, 0, fsys.appends)
}
