package model

import (
	"time"
)

// User is the identity record. ID and Username are immutable after creation;
// the only mutation this service performs is login accounting.
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	Username     string     `gorm:"size:64;uniqueIndex;not null"`
	Email        string     `gorm:"size:255;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	Salt         string     `gorm:"size:64;not null"`
	Status       int        `gorm:"not null;default:1"`
	LoginCount   int64      `gorm:"not null;default:0"`
	LastLoginAt  *time.Time `gorm:""`
	LastLoginIP  string     `gorm:"size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	UserDisabled = 0
	UserEnabled  = 1
)

// Session pairs one issued access/refresh token couple with a user. A row is
// valid for request authentication while now < ExpiresAt and for refresh while
// now < RefreshExpiresAt; logout deletes the row by exact access-token match.
type Session struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	UserID           int64  `gorm:"index;not null"`
	Token            string `gorm:"size:512;uniqueIndex;not null"`
	RefreshToken     string `gorm:"size:512;uniqueIndex;not null"`
	ExpiresAt        time.Time
	RefreshExpiresAt time.Time
	IP               string `gorm:"size:64"`
	DeviceInfo       string `gorm:"size:255"`
	CreatedAt        time.Time
}

// Clip is a shared text snippet, addressable by id or by its short URL slug.
// Unlike User it is returned to clients as-is, so it carries JSON tags.
type Clip struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"index;not null" json:"user_id"`
	Title     string     `gorm:"size:255" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	ShortURL  string     `gorm:"size:16;uniqueIndex;not null" json:"short_url"`
	ViewCount int64      `gorm:"not null;default:0" json:"view_count"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PublicUser is the sanitized view of a User. The password digest and salt
// must never leave the service, so responses are built from this type only.
type PublicUser struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Status      int        `json:"status"`
	LoginCount  int64      `json:"login_count"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Status:      u.Status,
		LoginCount:  u.LoginCount,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ClientMeta carries the request attributes recorded on the session row.
type ClientMeta struct {
	IP         string
	DeviceInfo string
}

type LoginResult struct {
	User         PublicUser `json:"user"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
}

type RefreshResult struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}
