// Package auth is the mocked identity collaborator: a local credential
// check that yields the viewer context consumed by the core. There is no
// real authentication; credentials live in memory.
package auth

import (
	"errors"
	"strings"
	"sync"

	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/signing"
)

// ErrInvalidCredentials is returned when a login attempt fails.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultAdminEmail is the built-in preparer account.
const DefaultAdminEmail = "admin@briefcase.local"

// DefaultAdminPassword pairs with DefaultAdminEmail.
const DefaultAdminPassword = "admin123"

type credential struct {
	password string
	role     signing.Role
}

// Authenticator holds the mock credential table.
type Authenticator struct {
	mu    sync.RWMutex
	users map[string]credential
}

// NewAuthenticator creates an authenticator seeded with the built-in
// admin account.
func NewAuthenticator() *Authenticator {
	return &Authenticator{
		users: map[string]credential{
			DefaultAdminEmail: {password: DefaultAdminPassword, role: signing.RoleAdmin},
		},
	}
}

// Register adds or replaces a credential. Used to enroll recipients as
// signers during preparation.
func (a *Authenticator) Register(email, password string, role signing.Role) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users[normalize(email)] = credential{password: password, role: role}
}

// Login checks credentials and returns the viewer context. Emails compare
// case-insensitively. Unknown emails authenticate as signers with any
// non-empty password, mirroring the mock behavior of the signing surface
// where a recipient only needs their emailed link.
func (a *Authenticator) Login(email, password string) (signing.Viewer, error) {
	a.mu.RLock()
	cred, known := a.users[normalize(email)]
	a.mu.RUnlock()

	if known {
		if cred.password != password {
			return signing.Viewer{}, ErrInvalidCredentials
		}
		return signing.Viewer{Email: email, Role: cred.role}, nil
	}
	if email == "" || password == "" {
		return signing.Viewer{}, ErrInvalidCredentials
	}
	return signing.Viewer{Email: email, Role: signing.RoleSigner}, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
