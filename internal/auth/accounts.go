package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mdobak/go-xerrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoEmail    = "example@mail.com"
	DemoUsername = "johndoe"
	DemoPassword = "password123"
)

type Options struct {
	Secret       []byte
	TokenTTL     time.Duration
	PasswordCost int
}

// Accounts is the demo account registry. It knows a single account; register
// and update merge onto that account without replacing it, and every call
// that returns a user issues a fresh signed token.
type Accounts struct {
	log     *slog.Logger
	options Options
	demo    User
}

func NewAccounts(log *slog.Logger, options Options) (*Accounts, error) {
	if len(options.Secret) == 0 {
		return nil, xerrors.New("token secret must not be empty")
	}
	if options.TokenTTL <= 0 {
		options.TokenTTL = 24 * time.Hour
	}
	if options.PasswordCost == 0 {
		options.PasswordCost = DefaultPasswordCost
	}

	demo := User{
		Email:    DemoEmail,
		Username: DemoUsername,
		Bio:      "A brief biography",
		Image:    "https://example.com/avatar.jpg",
	}
	if err := demo.SetPassword(DemoPassword, options.PasswordCost); err != nil {
		return nil, err
	}

	return &Accounts{
		log:     log,
		options: options,
		demo:    demo,
	}, nil
}

// Login checks the credentials against the demo account and returns
// ErrInvalidCredentials on any mismatch.
func (a *Accounts) Login(ctx context.Context, credentials Credentials) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	user := a.demo

	if !strings.EqualFold(strings.TrimSpace(credentials.Email), user.Email) {
		return nil, xerrors.New(ErrInvalidCredentials)
	}
	match, err := user.IsPasswordMatch(credentials.Password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, xerrors.New(ErrInvalidCredentials)
	}

	a.log.Info("User logged in", "username", user.Username)
	return a.issue(user)
}

// Register merges the registration onto the demo account.
func (a *Accounts) Register(ctx context.Context, registration Registration) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	user := a.demo

	if registration.Username != "" {
		user.Username = registration.Username
	}
	if registration.Email != "" {
		user.Email = registration.Email
	}
	if registration.Password != "" {
		if err := user.SetPassword(registration.Password, a.options.PasswordCost); err != nil {
			return nil, err
		}
	}

	a.log.Info("User registered", "username", user.Username, "email", user.Email)
	return a.issue(user)
}

// Update merges patch onto the demo account.
func (a *Accounts) Update(ctx context.Context, patch UserPatch) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	user := a.demo

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Image != nil {
		user.Image = *patch.Image
	}
	if patch.Password != nil {
		if err := user.SetPassword(*patch.Password, a.options.PasswordCost); err != nil {
			return nil, err
		}
	}

	a.log.Info("User updated Successfully", "username", user.Username, "email", user.Email)
	return a.issue(user)
}

// CurrentUser resolves a token issued by this registry back to its user.
func (a *Accounts) CurrentUser(ctx context.Context, token string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	claim, err := ParseToken(token, a.options.Secret)
	if err != nil {
		return nil, err
	}

	return &User{
		Email:    claim.Email,
		Token:    token,
		Username: claim.Username,
		Bio:      claim.Bio,
		Image:    claim.Image,
	}, nil
}

func (a *Accounts) issue(user User) (*User, error) {
	token, err := user.GenerateToken(a.options.Secret, a.options.TokenTTL)
	if err != nil {
		return nil, err
	}
	user.Token = token
	return &user, nil
}

const (
	DefaultPasswordCost = 12
	// MinPasswordCost is the cheapest bcrypt cost, for tests.
	MinPasswordCost = bcrypt.MinCost
)
