package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShader(t *testing.T, root, name, src string) {
	t.Helper()
	dir := filepath.Join(root, ShaderDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestLoadShader(t *testing.T) {
	root := t.TempDir()
	writeShader(t, root, "solid.vert", "#version 330 core\n")
	l := NewLoader(root)

	src, err := l.LoadShader("solid.vert")
	require.NoError(t, err)
	assert.Equal(t, "#version 330 core\n\x00", src)

	_, err = l.LoadShader("missing.frag")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = l.LoadShader("../solid.vert")
	assert.Error(t, err)
}

func TestLoadShaderKeepsExistingNul(t *testing.T) {
	root := t.TempDir()
	writeShader(t, root, "a.frag", "void main(){}\x00")
	src, err := NewLoader(root).LoadShader("a.frag")
	require.NoError(t, err)
	assert.Equal(t, "void main(){}\x00", src)
}

func TestNewLoaderDefaultRoot(t *testing.T) {
	assert.Equal(t, "assets", NewLoader("").Root)
}

func TestWatcherReportsEdits(t *testing.T) {
	root := t.TempDir()
	writeShader(t, root, "gradient.frag", "v1")
	l := NewLoader(root)

	w, err := l.Watch()
	require.NoError(t, err)
	defer w.Close()

	writeShader(t, root, "gradient.frag", "v2")
	writeShader(t, root, "notes.txt", "ignored")

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, got, "gradient.frag")
	assert.NotContains(t, got, "notes.txt")
}

func TestWatchMissingDir(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope")).Watch()
	assert.Error(t, err)
}

func TestIsShader(t *testing.T) {
	assert.True(t, isShader("a.vert"))
	assert.True(t, isShader("a.frag"))
	assert.False(t, isShader("a.frag.swp"))
}
