package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/crucial707/blog-api/internal/metrics"
	"github.com/crucial707/blog-api/internal/models"
)

// StorageError wraps any failure to read, decode, encode or write the document.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ==========================
// Store
// ==========================

// Store keeps the whole dataset as one JSON document on disk. Every call
// reads the file; mutations rewrite it in full. Calls are serialized by mu
// so concurrent Update calls cannot lose each other's writes.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open returns a Store backed by path, creating an empty document if the file does not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := s.Load(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

// Load returns a fresh copy of the document.
func (s *Store) Load(ctx context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save overwrites the document.
func (s *Store) Save(ctx context.Context, doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, doc)
}

// Update runs fn against the current document and persists the result if fn
// returns nil. When fn fails nothing is written and its error is returned as is.
func (s *Store) Update(ctx context.Context, fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(ctx, doc)
}

func (s *Store) load(ctx context.Context) (doc *models.Document, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOp("load", time.Since(start).Seconds(), err) }()

	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		doc = models.NewDocument()
		if err := s.save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}

	doc = &models.Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, &StorageError{Op: "decode", Path: s.path, Err: err}
	}
	normalize(doc)
	return doc, nil
}

// save writes to a temp file in the same directory and renames it over the
// document, so a reader sees either the old or the new file.
func (s *Store) save(ctx context.Context, doc *models.Document) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOp("save", time.Since(start).Seconds(), err) }()

	if err := ctx.Err(); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}

	normalize(doc)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// normalize replaces nil slices so the file always shows [] rather than null.
func normalize(doc *models.Document) {
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Posts == nil {
		doc.Posts = []models.Post{}
	}
	for i := range doc.Posts {
		if doc.Posts[i].Likes == nil {
			doc.Posts[i].Likes = []string{}
		}
		if doc.Posts[i].Comments == nil {
			doc.Posts[i].Comments = []models.Comment{}
		}
	}
}
