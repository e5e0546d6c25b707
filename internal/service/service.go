package service

import (
	"context"

	"github.com/crucial707/blog-api/internal/models"
)

// DocumentStore is the persistence the services need. *store.Store satisfies it.
type DocumentStore interface {
	Load(ctx context.Context) (*models.Document, error)
	Update(ctx context.Context, fn func(doc *models.Document) error) error
}
