package model

// Package model contains domain models/data structures.
// Items are schemaless: clients may submit any JSON object and the server
// only adds its own fields on top.

// Item is a single entry of a collection (a lead, a contact message or a
// gallery entry). It carries whatever fields the client submitted plus the
// server-assigned ones ("id", and "createdAt" where applicable).
type Item map[string]any

// ID returns the server-assigned identifier, or "" if absent.
func (it Item) ID() string {
	s, _ := it["id"].(string)
	return s
}

// ImageURL returns the image URL a gallery entry points at, or "" if absent
// or not a string.
func (it Item) ImageURL() string {
	s, _ := it["imageUrl"].(string)
	return s
}

// Clone returns a shallow copy of the item. Mutating the copy's top-level
// keys does not affect the original.
func (it Item) Clone() Item {
	out := make(Item, len(it)+2)
	for k, v := range it {
		out[k] = v
	}
	return out
}
