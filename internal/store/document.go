package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"siteapi/internal/model"
)

// Package store persists the whole document as one pretty-printed JSON file.
// Reads are forgiving: a missing or unreadable file yields an empty document
// so a corrupted store degrades to serving empty collections instead of
// failing requests. Writes rewrite the entire file through a temp-file
// rename so a crash mid-write cannot truncate existing data.

// DocumentStore owns the backing JSON file. All read-modify-write cycles go
// through Update, which serializes them under a single mutex; this removes
// the lost-update race between concurrent writers.
type DocumentStore struct {
	path string

	mu sync.Mutex
}

// NewDocumentStore opens (and if necessary initializes) the store at path.
// A missing file is created holding an empty document.
func NewDocumentStore(path string) (*DocumentStore, error) {
	s := &DocumentStore{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(model.NewDocument()); err != nil {
			return nil, fmt.Errorf("initialize data file: %w", err)
		}
	}
	return s, nil
}

// Load returns the current document. It never fails: a missing file or
// invalid content yields an empty document.
func (s *DocumentStore) Load() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites the backing file with the given document.
func (s *DocumentStore) Save(doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Update runs fn against the current document and persists the result, all
// under the store lock. It returns the document as persisted.
func (s *DocumentStore) Update(fn func(doc *model.Document)) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	fn(&doc)
	doc.Normalize()
	if err := s.save(doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

func (s *DocumentStore) load() model.Document {
	data, err := os.ReadFile(s.path)
	if err != nil || len(data) == 0 {
		return model.NewDocument()
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.NewDocument()
	}
	doc.Normalize()
	return doc
}

func (s *DocumentStore) save(doc model.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
