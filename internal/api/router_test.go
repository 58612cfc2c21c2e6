package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/loopkey/identity-relay/internal/core/domain"
)

// fakeProvider resolves a fixed set of tokens and records admin calls,
// standing in for the external identity provider.
type fakeProvider struct {
	identities map[string]*domain.Identity
	resolveErr error

	created []domain.NewUserInput
	deleted []string
}

func (f *fakeProvider) ResolveToken(_ context.Context, token string) (*domain.Identity, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	identity, ok := f.identities[token]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}

func (f *fakeProvider) CreateUser(_ context.Context, input domain.NewUserInput) (*domain.ManagedUser, error) {
	f.created = append(f.created, input)
	return &domain.ManagedUser{ID: "u-new", Email: input.Email, Metadata: input.Metadata}, nil
}

func (f *fakeProvider) ListUsers(_ context.Context) ([]domain.ManagedUser, error) {
	return []domain.ManagedUser{{ID: "u1", Email: "a@b.com"}}, nil
}

func (f *fakeProvider) DeleteUser(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeProvider) Ping(_ context.Context) error { return f.resolveErr }

func newTestProvider() *fakeProvider {
	return &fakeProvider{
		identities: map[string]*domain.Identity{
			"admin-token": {ID: "admin-1", Metadata: map[string]any{"role": "admin"}},
			"user-token":  {ID: "user-1", Metadata: map[string]any{"role": "user"}},
		},
	}
}

func serve(t *testing.T, provider *fakeProvider, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := NewRouter(provider, zerolog.Nop())

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth_NoAuthRequired(t *testing.T) {
	rec := serve(t, newTestProvider(), http.MethodGet, "/admin/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGatedRoutes_MissingToken(t *testing.T) {
	routes := []struct{ method, path string }{
		{http.MethodPost, "/admin/create-user"},
		{http.MethodGet, "/admin/list-users"},
		{http.MethodPost, "/admin/delete-user"},
	}
	for _, r := range routes {
		rec := serve(t, newTestProvider(), r.method, r.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", r.method, r.path, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp["error"] == "" {
			t.Fatalf("%s %s: expected error envelope, got %s", r.method, r.path, rec.Body.String())
		}
	}
}

func TestGatedRoutes_InvalidToken(t *testing.T) {
	rec := serve(t, newTestProvider(), http.MethodGet, "/admin/list-users", "expired-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGatedRoutes_NonAdminRole(t *testing.T) {
	rec := serve(t, newTestProvider(), http.MethodGet, "/admin/list-users", "user-token", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestGatedRoutes_VerificationFault(t *testing.T) {
	provider := newTestProvider()
	provider.resolveErr = errors.New("dial tcp: connection refused")

	rec := serve(t, provider, http.MethodGet, "/admin/list-users", "admin-token", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on infrastructure fault, got %d", rec.Code)
	}
}

func TestCreateUser_EndToEnd(t *testing.T) {
	provider := newTestProvider()
	rec := serve(t, provider, http.MethodPost, "/admin/create-user", "admin-token", `{"email":"a@b.com","password":"x"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(provider.created) != 1 {
		t.Fatalf("expected one provider create call, got %d", len(provider.created))
	}
	if role, _ := provider.created[0].Metadata["role"].(string); role != "user" {
		t.Fatalf("default metadata not forwarded: %v", provider.created[0].Metadata)
	}
}

func TestCreateUser_MissingEmail(t *testing.T) {
	provider := newTestProvider()
	rec := serve(t, provider, http.MethodPost, "/admin/create-user", "admin-token", `{"password":"x"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(provider.created) != 0 {
		t.Fatalf("provider called despite invalid input")
	}
}

func TestListUsers_EndToEnd(t *testing.T) {
	rec := serve(t, newTestProvider(), http.MethodGet, "/admin/list-users", "admin-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"users"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestDeleteUser_EndToEnd(t *testing.T) {
	provider := newTestProvider()
	rec := serve(t, provider, http.MethodPost, "/admin/delete-user", "admin-token", `{"id":"u1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if len(provider.deleted) != 1 || provider.deleted[0] != "u1" {
		t.Fatalf("delete not forwarded: %v", provider.deleted)
	}
}

func TestReadiness_DegradedWhenProviderDown(t *testing.T) {
	provider := newTestProvider()
	provider.resolveErr = errors.New("dial tcp: connection refused")

	rec := serve(t, provider, http.MethodGet, "/admin/health/ready", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "degraded") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
