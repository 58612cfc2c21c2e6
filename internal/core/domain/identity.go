package domain

const (
	// RoleAdmin is the exact role claim value required for privileged operations.
	RoleAdmin = "admin"
	// RoleUser is the default role stamped on accounts created without metadata.
	RoleUser = "user"

	// RoleClaim is the metadata key the provider stores the role under.
	RoleClaim = "role"
)

// Identity is the caller identity the provider resolves a bearer token to.
// This system only reads the role claim; the record is never stored or mutated.
type Identity struct {
	ID       string         `json:"id"`
	Email    string         `json:"email,omitempty"`
	Metadata map[string]any `json:"user_metadata,omitempty"`
}

// Role returns the identity's role claim, or "" when absent or not a string.
func (i *Identity) Role() string {
	if i == nil {
		return ""
	}
	role, _ := i.Metadata[RoleClaim].(string)
	return role
}

// IsAdmin reports whether the role claim is exactly the admin marker.
func (i *Identity) IsAdmin() bool {
	return i.Role() == RoleAdmin
}

// ManagedUser is the provider-owned account record passed through on create
// and list operations. It lives only for the duration of a single request.
type ManagedUser struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Metadata  map[string]any `json:"user_metadata,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// NewUserInput carries the fields forwarded to the provider's create-account
// operation. The email is pre-confirmed; no confirmation mail is sent.
type NewUserInput struct {
	Email    string
	Password string
	Metadata map[string]any
}
