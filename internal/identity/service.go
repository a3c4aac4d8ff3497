// Package identity owns registration, login, the persisted session pointer,
// and profile and credential maintenance for storefront accounts.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sustainsports/storefront-backend/pkg/config"
	pkgerrors "github.com/sustainsports/storefront-backend/pkg/errors"
	"github.com/sustainsports/storefront-backend/pkg/kv"
	"github.com/sustainsports/storefront-backend/pkg/security"
)

// Service exposes the identity operations of the storefront.
type Service interface {
	Register(ctx context.Context, name, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (User, bool, error)
	GetByID(ctx context.Context, userID string) (User, error)
	VerifyEmail(ctx context.Context, userID string) (User, error)
	UpdateProfile(ctx context.Context, userID, newName string) (User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (User, error)
	RequestPasswordReset(ctx context.Context, email string) (ResetToken, error)
	ResetPassword(ctx context.Context, token, newPassword string) (User, error)
}

// ResetToken is a single-use, expiring credential-reset grant.
type ResetToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type service struct {
	store     kv.Store
	keys      kv.Keys
	passwords config.PasswordConfig

	// mu serializes read-modify-write cycles on the registered-users and
	// reset-token lists so duplicate checks stay atomic in-process.
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

// NewService wires the identity service onto the persistence substrate.
func NewService(store kv.Store, keys kv.Keys, passwords config.PasswordConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("identity: store is required")
	}
	return &service{
		store:     store,
		keys:      keys,
		passwords: passwords,
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, "name, email, and password are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := builtinAccounts[email]; ok {
		return User{}, pkgerrors.New(pkgerrors.CodeDuplicateEmail, "email already registered")
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			return User{}, pkgerrors.New(pkgerrors.CodeDuplicateEmail, "email already registered")
		}
	}

	hash, err := security.HashPassword(password, s.passwords)
	if err != nil {
		return User{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := User{
		ID:         "user-" + s.newID(),
		Name:       name,
		Email:      email,
		Password:   hash,
		IsAdmin:    false,
		IsVerified: false,
	}
	users = append(users, user)
	if err := s.saveUsers(ctx, users); err != nil {
		return User{}, err
	}

	// Registration does not start a session; login is a separate step after
	// email verification.
	return user.Sanitized(), nil
}

func (s *service) Login(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)

	if builtin, ok := builtinAccounts[email]; ok {
		if password != builtin.password {
			return User{}, pkgerrors.New(pkgerrors.CodeInvalidCredentials, "invalid credentials")
		}
		if err := s.saveSession(ctx, builtin.user.Sanitized()); err != nil {
			return User{}, err
		}
		return builtin.user.Sanitized(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if normalizeEmail(u.Email) != email {
			continue
		}
		ok, err := security.VerifyPassword(password, u.Password)
		if err != nil || !ok {
			return User{}, pkgerrors.New(pkgerrors.CodeInvalidCredentials, "invalid credentials")
		}
		if !u.IsVerified {
			return User{}, pkgerrors.New(pkgerrors.CodeEmailNotVerified, "email address not verified")
		}
		if err := s.saveSession(ctx, u.Sanitized()); err != nil {
			return User{}, err
		}
		return u.Sanitized(), nil
	}

	return User{}, pkgerrors.New(pkgerrors.CodeInvalidCredentials, "invalid credentials")
}

// Logout clears the session pointer. It is idempotent and never fails on an
// absent session.
func (s *service) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.keys.Session()); err != nil {
		return storageErr("clearing session", err)
	}
	return nil
}

// Current restores the session: the persisted pointer is re-resolved against
// the latest registered record so name and verification edits made since
// login are visible. When no registered record matches (built-ins), the raw
// persisted copy is returned as-is.
func (s *service) Current(ctx context.Context) (User, bool, error) {
	var session User
	if err := s.store.Get(ctx, s.keys.Session(), &session); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return User{}, false, nil
		}
		return User{}, false, storageErr("reading session", err)
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return User{}, false, err
	}
	for _, u := range users {
		if u.ID == session.ID {
			session.Name = u.Name
			session.IsVerified = u.IsVerified
			return session.Sanitized(), true, nil
		}
	}
	return session.Sanitized(), true, nil
}

func (s *service) GetByID(ctx context.Context, userID string) (User, error) {
	for _, builtin := range builtinAccounts {
		if builtin.user.ID == userID {
			return builtin.user.Sanitized(), nil
		}
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.ID == userID {
			return u.Sanitized(), nil
		}
	}
	return User{}, pkgerrors.New(pkgerrors.CodeUserNotFound, "user not found")
}

// VerifyEmail flips the verification flag. The flip is one-way; verifying an
// already-verified user is a no-op that still succeeds.
func (s *service) VerifyEmail(ctx context.Context, userID string) (User, error) {
	return s.updateUser(ctx, userID, func(u *User) error {
		u.IsVerified = true
		return nil
	})
}

func (s *service) UpdateProfile(ctx context.Context, userID, newName string) (User, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return s.updateUser(ctx, userID, func(u *User) error {
		u.Name = newName
		return nil
	})
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (User, error) {
	if newPassword == "" {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, "new password is required")
	}
	return s.updateUser(ctx, userID, func(u *User) error {
		ok, err := security.VerifyPassword(currentPassword, u.Password)
		if err != nil || !ok {
			return pkgerrors.New(pkgerrors.CodeIncorrectPassword, "incorrect current password")
		}
		hash, err := security.HashPassword(newPassword, s.passwords)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
		}
		u.Password = hash
		return nil
	})
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) (ResetToken, error) {
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return ResetToken{}, err
	}

	var userID string
	for _, u := range users {
		if normalizeEmail(u.Email) == email {
			userID = u.ID
			break
		}
	}
	if userID == "" {
		return ResetToken{}, pkgerrors.New(pkgerrors.CodeUserNotFound, "no account for that email")
	}

	tokens, err := s.loadResets(ctx)
	if err != nil {
		return ResetToken{}, err
	}
	tokens = pruneExpired(tokens, s.now())

	token := ResetToken{
		Token:     s.newID(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.passwords.ResetTokenTTL),
	}
	tokens = append(tokens, token)
	if err := s.saveResets(ctx, tokens); err != nil {
		return ResetToken{}, err
	}
	return token, nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) (User, error) {
	if newPassword == "" {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, "new password is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.loadResets(ctx)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	idx := -1
	for i, t := range tokens {
		if t.Token == token && t.ExpiresAt.After(now) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return User{}, pkgerrors.New(pkgerrors.CodeNotFound, "reset token is invalid or expired")
	}
	grant := tokens[idx]

	// Tokens are single use: consume before touching the credential.
	tokens = append(tokens[:idx], tokens[idx+1:]...)
	tokens = pruneExpired(tokens, now)
	if err := s.saveResets(ctx, tokens); err != nil {
		return User{}, err
	}

	hash, err := security.HashPassword(newPassword, s.passwords)
	if err != nil {
		return User{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}
	return s.updateUserLocked(ctx, grant.UserID, func(u *User) error {
		u.Password = hash
		return nil
	})
}

// updateUser applies mutate to the registered record with the given id and
// refreshes the session copy when the session user is the one edited.
// Built-in accounts have no registered record and report USER_NOT_FOUND.
func (s *service) updateUser(ctx context.Context, userID string, mutate func(*User) error) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUserLocked(ctx, userID, mutate)
}

func (s *service) updateUserLocked(ctx context.Context, userID string, mutate func(*User) error) (User, error) {
	users, err := s.loadUsers(ctx)
	if err != nil {
		return User{}, err
	}

	for i := range users {
		if users[i].ID != userID {
			continue
		}
		if err := mutate(&users[i]); err != nil {
			return User{}, err
		}
		if err := s.saveUsers(ctx, users); err != nil {
			return User{}, err
		}
		if err := s.refreshSession(ctx, users[i]); err != nil {
			return User{}, err
		}
		return users[i].Sanitized(), nil
	}
	return User{}, pkgerrors.New(pkgerrors.CodeUserNotFound, "user not found")
}

func (s *service) refreshSession(ctx context.Context, updated User) error {
	var session User
	if err := s.store.Get(ctx, s.keys.Session(), &session); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil
		}
		return storageErr("reading session", err)
	}
	if session.ID != updated.ID {
		return nil
	}
	return s.saveSession(ctx, updated.Sanitized())
}

func (s *service) loadUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.store.Get(ctx, s.keys.RegisteredUsers(), &users); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, storageErr("reading registered users", err)
	}
	return users, nil
}

func (s *service) saveUsers(ctx context.Context, users []User) error {
	if err := s.store.Put(ctx, s.keys.RegisteredUsers(), users); err != nil {
		return storageErr("writing registered users", err)
	}
	return nil
}

func (s *service) saveSession(ctx context.Context, user User) error {
	if err := s.store.Put(ctx, s.keys.Session(), user); err != nil {
		return storageErr("writing session", err)
	}
	return nil
}

func (s *service) loadResets(ctx context.Context) ([]ResetToken, error) {
	var tokens []ResetToken
	if err := s.store.Get(ctx, s.keys.PasswordResets(), &tokens); err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, storageErr("reading reset tokens", err)
	}
	return tokens, nil
}

func (s *service) saveResets(ctx context.Context, tokens []ResetToken) error {
	if err := s.store.Put(ctx, s.keys.PasswordResets(), tokens); err != nil {
		return storageErr("writing reset tokens", err)
	}
	return nil
}

func pruneExpired(tokens []ResetToken, now time.Time) []ResetToken {
	kept := tokens[:0]
	for _, t := range tokens {
		if t.ExpiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	return kept
}

func storageErr(action string, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, action)
}
