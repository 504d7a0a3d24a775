package mediaserver

import (
	"context"

	"membership-system/internal/domain/account"
)

// AdminClient revokes access on an externally managed media-server
// identity. One implementation exists per backend kind; accounts whose
// backend has no configured client simply skip the external call.
type AdminClient interface {
	// DisableUser disables the media-server user addressed by the
	// opaque external id.
	DisableUser(ctx context.Context, externalUserID string) error
}

// Registry maps a backend kind to its configured admin client. Only
// backends with an admin credential get an entry; Lookup returning
// false is the "feature not configured" state, not an error.
type Registry struct {
	clients map[account.MediaServerType]AdminClient
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[account.MediaServerType]AdminClient)}
}

func (r *Registry) Register(t account.MediaServerType, c AdminClient) {
	r.clients[t] = c
}

func (r *Registry) Lookup(t account.MediaServerType) (AdminClient, bool) {
	c, ok := r.clients[t]
	return c, ok
}
