package storage

import (
	"context"
	"errors"

	"github.com/draftforge/draftforge/src/api/types"
	"gorm.io/gorm"
)

type apiKeyStore struct {
	db *gorm.DB
}

func (s *apiKeyStore) List(ctx context.Context, userID uint64) ([]types.APIKey, error) {
	var keys []types.APIKey
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&keys).Error
	return keys, err
}

func (s *apiKeyStore) Get(ctx context.Context, userID uint64, provider string) (*types.APIKey, error) {
	var key types.APIKey
	err := s.db.WithContext(ctx).
		First(&key, "user_id = ? AND provider = ?", userID, provider).Error
	if err != nil {
		return nil, translate(err)
	}
	return &key, nil
}

func (s *apiKeyStore) Create(ctx context.Context, userID uint64, provider, secret string) (*types.APIKey, error) {
	db := s.db.WithContext(ctx)

	var existing types.APIKey
	err := db.First(&existing, "user_id = ? AND provider = ?", userID, provider).Error
	switch {
	case err == nil:
		if err := db.Model(&existing).Update("api_key", secret).Error; err != nil {
			return nil, err
		}
		existing.APIKey = secret
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		key := types.APIKey{UserID: userID, Provider: provider, APIKey: secret}
		if err := db.Create(&key).Error; err != nil {
			return nil, err
		}
		return &key, nil
	default:
		return nil, err
	}
}

func (s *apiKeyStore) Delete(ctx context.Context, userID, id uint64) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.APIKey{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
