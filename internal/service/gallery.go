package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"siteapi/internal/store"
	"siteapi/internal/upload"
)

// GalleryService removes gallery entries together with the image files they
// reference.
type GalleryService interface {
	// DeleteItem removes the gallery entry with the given id, after a
	// best-effort deletion of its backing image file. An unknown id and a
	// failed file deletion are both treated as success; only a persistence
	// failure is returned.
	DeleteItem(ctx context.Context, id string) error
}

type galleryService struct {
	cols  CollectionService
	store *store.DocumentStore
	files upload.Store
}

// NewGalleryService constructs the gallery deletion coordinator.
func NewGalleryService(cols CollectionService, s *store.DocumentStore, files upload.Store) GalleryService {
	return &galleryService{cols: cols, store: s, files: files}
}

func (g *galleryService) DeleteItem(ctx context.Context, id string) error {
	doc := g.store.Load()
	for _, it := range doc.Gallery {
		if it.ID() != id {
			continue
		}
		// Only reclaim files served from our own uploads namespace; anything
		// else (external URL, malformed, missing) is left alone.
		if name, ok := upload.FilenameFromURL(it.ImageURL()); ok {
			if err := g.files.Remove(ctx, name); err != nil {
				logImageDeleteFailed(id, name, err)
			}
		}
		break
	}

	return g.cols.Remove(ctx, Gallery, id)
}

// logImageDeleteFailed emits one JSON log line, matching the request
// logger's format.
func logImageDeleteFailed(id, filename string, err error) {
	entry := map[string]any{
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
		"level":      "warn",
		"msg":        "gallery_image_delete_failed",
		"gallery_id": id,
		"filename":   filename,
		"error":      err.Error(),
	}

	if b, jsonErr := json.Marshal(entry); jsonErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
