package storage

import (
	"context"

	"github.com/draftforge/draftforge/src/api/types"
	"gorm.io/gorm"
)

type contentStore struct {
	db *gorm.DB
}

func (s *contentStore) Create(ctx context.Context, item *types.ContentItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *contentStore) ListByUser(ctx context.Context, userID uint64) ([]types.ContentItem, error) {
	var items []types.ContentItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error
	return items, err
}
