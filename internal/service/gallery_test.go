package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"siteapi/internal/model"
	"siteapi/internal/store"
	uploadMocks "siteapi/internal/upload/mocks"
)

func newGalleryFixture(t *testing.T) (GalleryService, CollectionService, *uploadMocks.MockStore) {
	t.Helper()
	s, err := store.NewDocumentStore(filepath.Join(t.TempDir(), "database.json"))
	require.NoError(t, err)
	cols := NewCollectionService(s)
	files := new(uploadMocks.MockStore)
	return NewGalleryService(cols, s, files), cols, files
}

func TestGalleryDeleteRemovesImage(t *testing.T) {
	ctx := context.Background()
	gallery, cols, files := newGalleryFixture(t)

	item, err := cols.Create(ctx, Gallery, model.Item{"imageUrl": "https://example.com/uploads/123-456.png"})
	require.NoError(t, err)

	files.On("Remove", ctx, "123-456.png").Return(nil).Once()

	require.NoError(t, gallery.DeleteItem(ctx, item.ID()))

	items, err := cols.List(ctx, Gallery)
	require.NoError(t, err)
	assert.Empty(t, items)
	files.AssertExpectations(t)
}

func TestGalleryDeleteSwallowsFileError(t *testing.T) {
	ctx := context.Background()
	gallery, cols, files := newGalleryFixture(t)

	item, err := cols.Create(ctx, Gallery, model.Item{"imageUrl": "https://example.com/uploads/a.png"})
	require.NoError(t, err)

	files.On("Remove", ctx, "a.png").Return(errors.New("disk on fire")).Once()

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	// File deletion is strictly best-effort; the entry still goes away.
	require.NoError(t, gallery.DeleteItem(ctx, item.ID()))

	items, err := cols.List(ctx, Gallery)
	require.NoError(t, err)
	assert.Empty(t, items)
	files.AssertExpectations(t)

	// The swallowed failure is logged as one JSON object per line.
	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, "gallery_image_delete_failed", logData["msg"])
	assert.Equal(t, item.ID(), logData["gallery_id"])
	assert.Equal(t, "a.png", logData["filename"])
	assert.Contains(t, logData["error"], "disk on fire")
}

func TestGalleryDeleteSkipsForeignURLs(t *testing.T) {
	ctx := context.Background()
	gallery, cols, files := newGalleryFixture(t)

	tests := []struct {
		name string
		item model.Item
	}{
		{"no imageUrl", model.Item{"title": "plain"}},
		{"external url", model.Item{"imageUrl": "https://cdn.example.com/a.jpg"}},
		{"malformed", model.Item{"imageUrl": "::::"}},
		{"non-string", model.Item{"imageUrl": 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := cols.Create(ctx, Gallery, tt.item)
			require.NoError(t, err)

			require.NoError(t, gallery.DeleteItem(ctx, item.ID()))

			items, err := cols.List(ctx, Gallery)
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}

	// No file deletion should ever have been attempted.
	files.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestGalleryDeleteUnknownID(t *testing.T) {
	ctx := context.Background()
	gallery, cols, files := newGalleryFixture(t)

	item, err := cols.Create(ctx, Gallery, model.Item{"imageUrl": "https://example.com/uploads/a.png"})
	require.NoError(t, err)

	require.NoError(t, gallery.DeleteItem(ctx, "gal-unknown"))

	items, err := cols.List(ctx, Gallery)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID(), items[0].ID())
	files.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}
