package model

// Collection names of the persisted document.
const (
	CollectionLeads    = "leads"
	CollectionMessages = "messages"
	CollectionGallery  = "gallery"
)

// Document is the single persisted aggregate holding all three collections.
// Each collection is ordered most-recent-first. A missing collection in the
// backing file is equivalent to an empty one.
type Document struct {
	Leads    []Item `json:"leads"`
	Messages []Item `json:"messages"`
	Gallery  []Item `json:"gallery"`
}

// NewDocument returns an empty document with all collections initialized,
// so it serializes as {"leads":[],"messages":[],"gallery":[]} rather than nulls.
func NewDocument() Document {
	return Document{
		Leads:    []Item{},
		Messages: []Item{},
		Gallery:  []Item{},
	}
}

// Normalize replaces nil collections with empty ones. Called after
// deserialization so callers never see a nil slice.
func (d *Document) Normalize() {
	if d.Leads == nil {
		d.Leads = []Item{}
	}
	if d.Messages == nil {
		d.Messages = []Item{}
	}
	if d.Gallery == nil {
		d.Gallery = []Item{}
	}
}

// Collection returns the named collection, or nil for an unknown name.
func (d *Document) Collection(name string) []Item {
	switch name {
	case CollectionLeads:
		return d.Leads
	case CollectionMessages:
		return d.Messages
	case CollectionGallery:
		return d.Gallery
	}
	return nil
}

// SetCollection replaces the named collection. Unknown names are ignored.
func (d *Document) SetCollection(name string, items []Item) {
	switch name {
	case CollectionLeads:
		d.Leads = items
	case CollectionMessages:
		d.Messages = items
	case CollectionGallery:
		d.Gallery = items
	}
}
