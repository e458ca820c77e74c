package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"siteapi/internal/model"
	"siteapi/internal/store"
)

// Collection describes one of the persisted collections and its ID policy.
type Collection struct {
	Name     string
	IDPrefix string

	// Timestamped collections get a server-assigned createdAt on create.
	Timestamped bool
}

var (
	Leads    = Collection{Name: model.CollectionLeads, IDPrefix: "L-", Timestamped: true}
	Messages = Collection{Name: model.CollectionMessages, IDPrefix: "M-", Timestamped: true}
	Gallery  = Collection{Name: model.CollectionGallery, IDPrefix: "gal-"}
)

// CollectionService defines the use cases shared by all three collections.
type CollectionService interface {
	// List returns the full collection, most recent first.
	List(ctx context.Context, col Collection) ([]model.Item, error)

	// Create assigns the server fields onto a copy of body, prepends it to
	// the collection, persists, and returns the created item. Server fields
	// win over client-submitted fields of the same name.
	Create(ctx context.Context, col Collection, body model.Item) (model.Item, error)

	// Remove filters out any item with the given id and persists. Removing
	// an id that does not exist is not an error.
	Remove(ctx context.Context, col Collection, id string) error
}

type collectionService struct {
	store *store.DocumentStore
}

// NewCollectionService constructs a CollectionService over the given store.
func NewCollectionService(s *store.DocumentStore) CollectionService {
	return &collectionService{store: s}
}

func (s *collectionService) List(_ context.Context, col Collection) ([]model.Item, error) {
	doc := s.store.Load()
	return doc.Collection(col.Name), nil
}

func (s *collectionService) Create(_ context.Context, col Collection, body model.Item) (model.Item, error) {
	now := time.Now()

	item := body.Clone()
	item["id"] = col.IDPrefix + strconv.FormatInt(now.UnixMilli(), 10)
	if col.Timestamped {
		item["createdAt"] = now.UTC().Format(time.RFC3339)
	}

	_, err := s.store.Update(func(doc *model.Document) {
		doc.SetCollection(col.Name, append([]model.Item{item}, doc.Collection(col.Name)...))
	})
	if err != nil {
		return nil, fmt.Errorf("persist %s: %w", col.Name, err)
	}
	return item, nil
}

func (s *collectionService) Remove(_ context.Context, col Collection, id string) error {
	_, err := s.store.Update(func(doc *model.Document) {
		items := doc.Collection(col.Name)
		kept := make([]model.Item, 0, len(items))
		for _, it := range items {
			if it.ID() != id {
				kept = append(kept, it)
			}
		}
		doc.SetCollection(col.Name, kept)
	})
	if err != nil {
		return fmt.Errorf("persist %s: %w", col.Name, err)
	}
	return nil
}
