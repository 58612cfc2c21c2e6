package ports

import (
	"context"

	"github.com/loopkey/identity-relay/internal/core/domain"
)

// IdentityProvider is the outbound port to the external identity provider's
// admin API. Admin operations use the server-held service-role credential;
// ResolveToken uses the caller's own bearer token.
type IdentityProvider interface {
	ResolveToken(ctx context.Context, token string) (*domain.Identity, error)
	CreateUser(ctx context.Context, input domain.NewUserInput) (*domain.ManagedUser, error)
	ListUsers(ctx context.Context) ([]domain.ManagedUser, error)
	DeleteUser(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
