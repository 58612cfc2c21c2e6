package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/loopkey/identity-relay/internal/core/domain"
	"github.com/loopkey/identity-relay/internal/core/ports"
)

// AdminService relays account-management operations to the identity provider.
// It owns no state beyond the injected provider handle.
type AdminService struct {
	provider ports.IdentityProvider
}

func NewAdminService(provider ports.IdentityProvider) *AdminService {
	return &AdminService{provider: provider}
}

// VerifyAdminToken resolves a caller token through the provider and checks the
// role claim. Provider-reported rejection yields ErrUnauthenticated; a failure
// to reach the provider at all yields ErrVerificationFailed so the transport
// layer can distinguish an infrastructure fault from a bad credential.
func (s *AdminService) VerifyAdminToken(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	identity, err := s.provider.ResolveToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	if !identity.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	return identity, nil
}

// CreateUser validates the input shape locally, then forwards the creation to
// the provider with the email pre-confirmed. Metadata defaults to
// {role: "user"} when omitted.
func (s *AdminService) CreateUser(ctx context.Context, email, password string, metadata map[string]any) (*domain.ManagedUser, error) {
	if email == "" {
		return nil, domain.ErrMissingEmail
	}
	if password == "" {
		return nil, domain.ErrMissingPassword
	}

	if metadata == nil {
		metadata = map[string]any{domain.RoleClaim: domain.RoleUser}
	}

	return s.provider.CreateUser(ctx, domain.NewUserInput{
		Email:    email,
		Password: password,
		Metadata: metadata,
	})
}

// ListUsers forwards to the provider's list operation verbatim. No pagination
// parameters are applied; callers receive the provider's default page.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	return s.provider.ListUsers(ctx)
}

// DeleteUser forwards a deletion by identifier. No existence pre-check is
// performed; an already-deleted id surfaces whatever the provider reports.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrMissingUserID
	}
	return s.provider.DeleteUser(ctx, id)
}
