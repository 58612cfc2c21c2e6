package ports

import (
	"context"

	"github.com/loopkey/identity-relay/internal/core/domain"
)

// AdminService exposes the three relayed admin operations plus the token gate
// check used by the authorization middleware.
type AdminService interface {
	VerifyAdminToken(ctx context.Context, token string) (*domain.Identity, error)
	CreateUser(ctx context.Context, email, password string, metadata map[string]any) (*domain.ManagedUser, error)
	ListUsers(ctx context.Context) ([]domain.ManagedUser, error)
	DeleteUser(ctx context.Context, id string) error
}
