// Package account keeps a minimal in-memory account registry: email and
// password sign-up, login, roles and the verified flag that feed vote
// weight.
package account

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/p-n-ai/pathfinder/internal/vote"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrCredentialsRequired = errors.New("email and password required")
	ErrPasswordTooShort    = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrNotFound            = errors.New("account not found")
	ErrInvalidRole         = errors.New("invalid role")
)

// Account is a registered user.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Verified     bool      `json:"verified"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Voter returns the account as a vote.Voter.
func (a Account) Voter() vote.Voter {
	return vote.Voter{ID: a.ID, Role: a.Role, Verified: a.Verified}
}

func (a *Account) setPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a *Account) checkPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Registry stores accounts in memory keyed by id and email.
type Registry struct {
	adminEmail string

	mu      sync.RWMutex
	byID    map[string]*Account
	byEmail map[string]string
}

// NewRegistry creates a registry. Accounts registered with adminEmail get
// the admin role.
func NewRegistry(adminEmail string) *Registry {
	return &Registry{
		adminEmail: NormalizeEmail(adminEmail),
		byID:       make(map[string]*Account),
		byEmail:    make(map[string]string),
	}
}

func (r *Registry) roleFor(email string) string {
	if r.adminEmail != "" && email == r.adminEmail {
		return vote.RoleAdmin
	}
	return vote.RoleUser
}

// Register creates an account.
func (r *Registry) Register(email, password string) (Account, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return Account{}, ErrCredentialsRequired
	}
	if len(password) < MinPasswordLength {
		return Account{}, ErrPasswordTooShort
	}

	acct := &Account{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      r.roleFor(email),
		CreatedAt: time.Now(),
	}
	if err := acct.setPassword(password); err != nil {
		return Account{}, fmt.Errorf("hashing password: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return Account{}, ErrEmailTaken
	}
	r.byID[acct.ID] = acct
	r.byEmail[email] = acct.ID

	slog.Info("account registered", "account_id", acct.ID, "role", acct.Role)
	return *acct, nil
}

// Authenticate checks credentials and returns the account.
func (r *Registry) Authenticate(email, password string) (Account, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return Account{}, ErrCredentialsRequired
	}

	r.mu.RLock()
	id, ok := r.byEmail[email]
	var acct Account
	if ok {
		acct = *r.byID[id]
	}
	r.mu.RUnlock()

	if !ok || acct.checkPassword(password) != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

// Get returns an account by id.
func (r *Registry) Get(id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return *acct, nil
}

// SetVerified sets the verified flag.
func (r *Registry) SetVerified(id string, verified bool) error {
	return r.update(id, func(a *Account) error {
		a.Verified = verified
		return nil
	})
}

// SetRole changes an account's role.
func (r *Registry) SetRole(id, role string) error {
	switch role {
	case vote.RoleUser, vote.RoleModerator, vote.RoleAdmin, vote.RoleSuspended:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	return r.update(id, func(a *Account) error {
		a.Role = role
		return nil
	})
}

func (r *Registry) update(id string, fn func(*Account) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	return fn(acct)
}

// Voter resolves an account id to a voter. Unknown or empty ids yield an
// anonymous voter, which carries no weight.
func (r *Registry) Voter(id string) vote.Voter {
	acct, err := r.Get(id)
	if err != nil {
		return vote.Voter{}
	}
	return acct.Voter()
}
