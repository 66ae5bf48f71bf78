// Package storage provides explicitly constructed store handles over GORM.
// Handlers receive these interfaces rather than reaching for a process-wide
// database instance.
package storage

import (
	"context"
	"errors"

	"github.com/draftforge/draftforge/src/api/types"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

type Users interface {
	ByID(ctx context.Context, id uint64) (*types.User, error)
	ByUsername(ctx context.Context, username string) (*types.User, error)
	ByGoogleID(ctx context.Context, googleID string) (*types.User, error)
	Create(ctx context.Context, u *types.User) error
}

type APIKeys interface {
	List(ctx context.Context, userID uint64) ([]types.APIKey, error)
	Get(ctx context.Context, userID uint64, provider string) (*types.APIKey, error)
	// Create upserts: a second key for the same (user, provider) replaces
	// the stored secret instead of adding a duplicate row.
	Create(ctx context.Context, userID uint64, provider, secret string) (*types.APIKey, error)
	Delete(ctx context.Context, userID, id uint64) error
}

type Content interface {
	Create(ctx context.Context, item *types.ContentItem) error
	ListByUser(ctx context.Context, userID uint64) ([]types.ContentItem, error)
}

// Store bundles the per-entity handles for wiring in main.
type Store struct {
	Users   Users
	APIKeys APIKeys
	Content Content
}

func New(db *gorm.DB) *Store {
	return &Store{
		Users:   &userStore{db: db},
		APIKeys: &apiKeyStore{db: db},
		Content: &contentStore{db: db},
	}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
