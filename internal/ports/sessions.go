package ports

import (
	"context"

	"github.com/csvchat/csvchat-go/internal/domain"
)

// SessionStore holds the uploaded table for each live session. Sessions
// leave the store only by expiry or by being overwritten.
type SessionStore interface {
	Get(ctx context.Context, id string) (domain.Session, error)
	Put(ctx context.Context, session domain.Session) error
}
