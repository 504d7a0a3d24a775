package account

import (
	"context"
	"time"
)

// OwnerID is the reserved first account. It is exempt from every
// lifecycle action in this package.
const OwnerID int64 = 1

type MediaServerType string

const (
	ServerLocal    MediaServerType = "local"
	ServerJellyfin MediaServerType = "jellyfin"
	ServerEmby     MediaServerType = "emby"
)

// External reports whether accounts of this type are backed by a
// separately managed media-server identity.
func (t MediaServerType) External() bool {
	return t == ServerJellyfin || t == ServerEmby
}

type Account struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	// Permissions is a capability bitmask. Zero means the account is
	// disabled; any nonzero value means active.
	Permissions       int64           `json:"permissions"`
	MediaServerType   MediaServerType `json:"media_server_type"`
	MediaServerUserID string          `json:"media_server_user_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (a *Account) IsOwner() bool {
	return a.ID == OwnerID
}

func (a *Account) Disabled() bool {
	return a.Permissions == 0
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	// FindByExpiryRange returns accounts whose expiry date falls in
	// [start, end]. Accounts without an expiry date are never returned.
	FindByExpiryRange(ctx context.Context, start, end time.Time) ([]Account, error)
	// FindByExpiryBefore returns accounts whose expiry date is strictly
	// before t.
	FindByExpiryBefore(ctx context.Context, t time.Time) ([]Account, error)
	Save(ctx context.Context, a *Account) error
}
