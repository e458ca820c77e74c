package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilename(t *testing.T) {
	name := NewFilename("photo.png")
	assert.Regexp(t, regexp.MustCompile(`^\d+-\d+\.png$`), name)

	assert.True(t, strings.HasSuffix(NewFilename("archive.tar.gz"), ".gz"))
	assert.Regexp(t, regexp.MustCompile(`^\d+-\d+$`), NewFilename("noext"))
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"full url", "https://example.com/uploads/123-456.png", "123-456.png", true},
		{"plain http", "http://localhost:5001/uploads/a.jpg", "a.jpg", true},
		{"outside uploads", "https://example.com/static/a.jpg", "", false},
		{"external host without prefix", "https://cdn.example.com/a.jpg", "", false},
		{"empty", "", "", false},
		{"trailing slash", "https://example.com/uploads/", "", false},
		{"parent traversal", "https://example.com/uploads/..", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FilenameFromURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDiskStoreSave(t *testing.T) {
	ctx := context.Background()
	d, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	name, err := d.Save(ctx, strings.NewReader("pixels"), "photo.png", 6)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	rc, err := d.Open(ctx, name)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestDiskStoreOpenNotFound(t *testing.T) {
	ctx := context.Background()
	d, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = d.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// Plant a file outside the upload root.
	outside := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o644))

	d, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	for _, name := range []string{"../secret.txt", "..", "a/b.png", `..\secret.txt`, ""} {
		_, err := d.Open(ctx, name)
		assert.ErrorIs(t, err, ErrNotFound, "open %q", name)

		assert.Error(t, d.Remove(ctx, name), "remove %q", name)
	}

	// The planted file must survive every attempt.
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestDiskStoreRemove(t *testing.T) {
	ctx := context.Background()
	d, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	name, err := d.Save(ctx, strings.NewReader("x"), "a.jpg", 1)
	require.NoError(t, err)

	require.NoError(t, d.Remove(ctx, name))

	_, err = d.Open(ctx, name)
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing a missing file reports an error; callers decide whether to care.
	assert.Error(t, d.Remove(ctx, name))
}

func TestNewDiskStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewDiskStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
