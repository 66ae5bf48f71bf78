package storage

import (
	"context"

	"github.com/draftforge/draftforge/src/api/types"
	"gorm.io/gorm"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) ByID(ctx context.Context, id uint64) (*types.User, error) {
	var u types.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *userStore) ByUsername(ctx context.Context, username string) (*types.User, error) {
	var u types.User
	if err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *userStore) ByGoogleID(ctx context.Context, googleID string) (*types.User, error) {
	var u types.User
	if err := s.db.WithContext(ctx).First(&u, "google_id = ?", googleID).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *userStore) Create(ctx context.Context, u *types.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}
