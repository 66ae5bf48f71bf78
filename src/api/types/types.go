package types

import "time"

// Users. Password is empty for accounts created through Google sign-in.
type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;unique;not null" json:"username"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	Password  string    `gorm:"size:128" json:"-"`
	GoogleID  string    `gorm:"size:64;index" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// Per-user provider credentials. At most one row per (user, provider);
// the store enforces this by upserting on create.
type APIKey struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"index:idx_user_provider,unique;not null" json:"userId"`
	Provider  string    `gorm:"index:idx_user_provider,unique;size:50;not null" json:"provider"`
	APIKey    string    `gorm:"size:255;not null" json:"apiKey"`
	CreatedAt time.Time `json:"createdAt"`
}

// Generated marketing copy. Immutable once created.
type ContentItem struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"userId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Model     string    `gorm:"size:100" json:"model,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
