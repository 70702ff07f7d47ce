package fs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/odra/internal/adapters/fs"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "Cargo.toml")

	require.NoError(t, fs.AtomicWriteFile(path, []byte("first")))
	require.NoError(t, fs.AtomicWriteFile(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFileIfAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Flipper_build.rs")

	written, err := fs.WriteFileIfAbsent(path, []byte("generated"))
	require.NoError(t, err)
	assert.True(t, written)

	written, err = fs.WriteFileIfAbsent(path, []byte("replacement"))
	require.NoError(t, err)
	assert.False(t, written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "generated", string(got))
}

func TestWriteFileIfAbsent_MissingDirectory(t *testing.T) {
	_, err := fs.WriteFileIfAbsent(filepath.Join(t.TempDir(), "missing", "file"), nil)
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Flipper.wasm")
	dst := filepath.Join(dir, "wasm", "Flipper.wasm")
	require.NoError(t, os.WriteFile(src, []byte{0x00, 0x61, 0x73, 0x6d}, 0o600))

	require.NoError(t, fs.CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d}, got)

	assert.Error(t, fs.CopyFile(filepath.Join(dir, "missing.wasm"), dst))
}

func TestFileDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Flipper.wasm")
	require.NoError(t, os.WriteFile(path, []byte("wasm"), 0o600))

	got, err := fs.FileDigest(path)
	require.NoError(t, err)
	assert.Len(t, got, 16)
	assert.Equal(t, fmt.Sprintf("%016x", xxhash.Sum64String("wasm")), got)

	_, err = fs.FileDigest(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestExistsAndIsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	assert.True(t, fs.Exists(file))
	assert.False(t, fs.IsDir(file))
	assert.True(t, fs.IsDir(dir))
	assert.False(t, fs.Exists(filepath.Join(dir, "missing")))
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rs")

	require.NoError(t, fs.AppendFile(path, []byte("pub mod flipper;\n")))
	require.NoError(t, fs.AppendFile(path, []byte("pub mod token;\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pub mod flipper;\npub mod token;\n", string(got))

	require.Error(t, fs.AppendFile(filepath.Join(t.TempDir(), "missing", "lib.rs"), []byte("x")))
}
