package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askitty/askitty/internal/core/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"plain", "uploads/notes.txt", "uploads/notes.txt"},
		{"spaces and specials", "uploads/my report (final).pdf", "uploads/my_report__final_.pdf"},
		{"empty segments dropped", "uploads//doc.txt", "uploads/doc.txt"},
		{"traversal removed", "../../etc/passwd", "etc/passwd"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeKey(tt.key))
		})
	}
}

func TestNew_RejectsMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "uploads/notes.txt", "hello")

	store, err := New(root)
	require.NoError(t, err)

	data, err := store.Get(context.Background(), "uploads/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestGet_Missing(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "uploads/missing.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_EmptyKey(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "///")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_TraversalStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "etc/passwd", "inside")

	store, err := New(root)
	require.NoError(t, err)

	data, err := store.Get(context.Background(), "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "inside", string(data))
}

func TestKeyFor(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	require.NoError(t, err)

	key, err := store.KeyFor(filepath.Join(root, "uploads", "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "uploads/doc.pdf", key)

	_, err = store.KeyFor(filepath.Join(root, "..", "outside.txt"))
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "uploads/a.txt", "a")
	writeFile(t, root, "uploads/sub/b.pdf", "b")
	writeFile(t, root, "c.md", "c")

	store, err := New(root)
	require.NoError(t, err)

	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c.md", "uploads/a.txt", "uploads/sub/b.pdf"}, keys)
}
