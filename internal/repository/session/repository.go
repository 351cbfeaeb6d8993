package session

import "context"

// KeyPrefix is the fixed storage key every session blob is filed under.
const KeyPrefix = "shop-storage"

// Key returns the storage key for a session.
func Key(sessionID string) string {
	return KeyPrefix + ":" + sessionID
}

// Repository stores one opaque state blob per key. Load returns
// domain.ErrNotFound when nothing has been saved under key.
type Repository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}
